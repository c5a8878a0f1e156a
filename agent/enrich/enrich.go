package enrich

import (
	"context"
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
	"github.com/tanpawarit/Chative-Food-Delivery-Support/agent/orderid"
	"github.com/tanpawarit/Chative-Food-Delivery-Support/agent/state"
)

const (
	explicitHint  = "\n\n[CTX] Use ORDER_ID=%s if needed."
	inheritedHint = "\n\n[CTX] If the user refers to 'this order' without an ID, assume ORDER_ID=%s."
)

var _ contractx.Enricher = (*Enricher)(nil)

// Enricher appends order-id hints to a query. The original text is always
// kept in front of the hint.
type Enricher struct {
	store state.Store
	now   func() time.Time
}

func New(store state.Store) *Enricher {
	return &Enricher{store: store, now: time.Now}
}

// WithClock overrides the timestamp source for stored entries.
func (e *Enricher) WithClock(now func() time.Time) *Enricher {
	e.now = now
	return e
}

func (e *Enricher) Enrich(ctx context.Context, query string, userID string) (string, error) {
	if id, ok := orderid.Find(query); ok {
		if err := state.Remember(ctx, e.store, userID, id, e.now()); err != nil {
			return "", fmt.Errorf("%w: remember order id: %v", contractx.ErrStore, err)
		}
		return query + fmt.Sprintf(explicitHint, id), nil
	}

	last, err := state.LastOrderID(ctx, e.store, userID)
	if err != nil {
		return "", fmt.Errorf("%w: load context: %v", contractx.ErrStore, err)
	}
	if strings.TrimSpace(last) != "" {
		return query + fmt.Sprintf(inheritedHint, last), nil
	}
	return query, nil
}
