package state

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestRememberAndLastOrderID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	got, err := LastOrderID(ctx, store, "u1")
	if err != nil {
		t.Fatalf("LastOrderID() error = %v", err)
	}
	if got != "" {
		t.Fatalf("LastOrderID() = %q, want empty", got)
	}

	if err := Remember(ctx, store, "u1", "1234567", now); err != nil {
		t.Fatalf("Remember() error = %v", err)
	}
	if err := Remember(ctx, store, "u1", "7654321", now.Add(time.Minute)); err != nil {
		t.Fatalf("Remember() error = %v", err)
	}

	entry, err := store.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if entry.LastOrderID != "7654321" {
		t.Fatalf("LastOrderID = %q, want overwrite to 7654321", entry.LastOrderID)
	}
	if !entry.UpdatedAt.Equal(now.Add(time.Minute)) {
		t.Fatalf("UpdatedAt = %v", entry.UpdatedAt)
	}
}

func TestRememberIgnoresBlankAndRejectsInvalid(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()

	if err := Remember(ctx, store, "", "1234567", time.Now()); err != nil {
		t.Fatalf("Remember(blank user) error = %v", err)
	}
	if err := Remember(ctx, store, "u1", "  ", time.Now()); err != nil {
		t.Fatalf("Remember(blank order) error = %v", err)
	}
	if _, err := store.Load(ctx, "u1"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("Load() error = %v, want ErrEntryNotFound", err)
	}

	if err := Remember(ctx, store, "u1", "abc", time.Now()); !errors.Is(err, ErrInvalidOrderID) {
		t.Fatalf("Remember(invalid) error = %v, want ErrInvalidOrderID", err)
	}
}

func TestMemoryStoreConcurrentLastWriteWins(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()
	ids := []string{"1000001", "1000002", "1000003", "1000004"}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_ = Remember(ctx, store, "u1", id, time.Now())
		}(id)
	}
	wg.Wait()

	got, err := LastOrderID(ctx, store, "u1")
	if err != nil {
		t.Fatalf("LastOrderID() error = %v", err)
	}
	found := false
	for _, id := range ids {
		if got == id {
			found = true
		}
	}
	if !found {
		t.Fatalf("LastOrderID() = %q, want one of %v", got, ids)
	}
}
