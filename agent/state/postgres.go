package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

type contextRow struct {
	bun.BaseModel `bun:"table:chat_state,alias:cs"`

	UserID      string    `bun:"user_id,pk"`
	LastOrderID string    `bun:"last_order_id,notnull"`
	UpdatedAt   time.Time `bun:"updated_at,notnull"`
}

// PostgresStore keeps ContextEntry rows in the chat_state table.
type PostgresStore struct {
	db *bun.DB
}

func NewPostgresStore(db *bun.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// CreateTable creates chat_state when it does not exist yet.
func (p *PostgresStore) CreateTable(ctx context.Context) error {
	_, err := p.db.NewCreateTable().Model((*contextRow)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return fmt.Errorf("create chat_state: %w", err)
	}
	return nil
}

func (p *PostgresStore) Load(ctx context.Context, userID string) (*ContextEntry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidUser
	}
	var row contextRow
	if err := p.selectQuery(&row, userID).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("load chat_state user=%s: %w", userID, err)
	}
	return &ContextEntry{
		UserID:      row.UserID,
		LastOrderID: row.LastOrderID,
		UpdatedAt:   row.UpdatedAt.UTC(),
	}, nil
}

func (p *PostgresStore) Save(ctx context.Context, entry *ContextEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	row := &contextRow{
		UserID:      entry.UserID,
		LastOrderID: entry.LastOrderID,
		UpdatedAt:   entry.UpdatedAt.UTC(),
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = time.Now().UTC()
	}
	if _, err := p.upsertQuery(row).Exec(ctx); err != nil {
		return fmt.Errorf("upsert chat_state user=%s: %w", entry.UserID, err)
	}
	return nil
}

func (p *PostgresStore) selectQuery(row *contextRow, userID string) *bun.SelectQuery {
	return p.db.NewSelect().
		Model(row).
		Where("user_id = ?", userID).
		Limit(1)
}

func (p *PostgresStore) upsertQuery(row *contextRow) *bun.InsertQuery {
	return p.db.NewInsert().
		Model(row).
		On("CONFLICT (user_id) DO UPDATE").
		Set("last_order_id = EXCLUDED.last_order_id").
		Set("updated_at = EXCLUDED.updated_at")
}
