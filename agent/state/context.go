package state

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tanpawarit/Chative-Food-Delivery-Support/agent/orderid"
)

var (
	ErrEntryNotFound  = errors.New("context entry not found")
	ErrNilEntry       = errors.New("context entry is nil")
	ErrInvalidUser    = errors.New("user id is empty")
	ErrInvalidOrderID = errors.New("order id must be 7 to 10 digits")
)

// ContextEntry is the per-user conversational memory: the last order the user
// referred to. Entries are overwritten on every new reference and never deleted.
type ContextEntry struct {
	UserID      string    `json:"user_id"`
	LastOrderID string    `json:"last_order_id"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (e *ContextEntry) Validate() error {
	if e == nil {
		return ErrNilEntry
	}
	if strings.TrimSpace(e.UserID) == "" {
		return ErrInvalidUser
	}
	if !orderid.Valid(e.LastOrderID) {
		return fmt.Errorf("%w: got %q", ErrInvalidOrderID, e.LastOrderID)
	}
	return nil
}

// Store is an upsert-by-key store with last-write-wins semantics.
type Store interface {
	Load(ctx context.Context, userID string) (*ContextEntry, error)
	Save(ctx context.Context, entry *ContextEntry) error
}

// LastOrderID returns "" when the user has no entry yet.
func LastOrderID(ctx context.Context, s Store, userID string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", nil
	}
	entry, err := s.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return "", nil
		}
		return "", err
	}
	return entry.LastOrderID, nil
}

// Remember overwrites the user's entry. Blank user or order ids are ignored.
func Remember(ctx context.Context, s Store, userID string, orderID string, now time.Time) error {
	userID = strings.TrimSpace(userID)
	orderID = strings.TrimSpace(orderID)
	if userID == "" || orderID == "" {
		return nil
	}
	entry := &ContextEntry{
		UserID:      userID,
		LastOrderID: orderID,
		UpdatedAt:   now.UTC(),
	}
	if err := entry.Validate(); err != nil {
		return err
	}
	return s.Save(ctx, entry)
}
