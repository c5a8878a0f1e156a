package state

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore keeps entries in process memory. Used for local runs and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]ContextEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]ContextEntry)}
}

func (m *MemoryStore) Load(_ context.Context, userID string) (*ContextEntry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidUser
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[userID]
	if !ok {
		return nil, ErrEntryNotFound
	}
	return &entry, nil
}

func (m *MemoryStore) Save(_ context.Context, entry *ContextEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.UserID] = *entry
	return nil
}
