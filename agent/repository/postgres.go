package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
)

type Config struct {
	DSN          string        `envconfig:"DSN" required:"true"`
	DialTimeout  time.Duration `split_words:"true" default:"5s"`
	ReadTimeout  time.Duration `split_words:"true" default:"10s"`
	WriteTimeout time.Duration `split_words:"true" default:"10s"`
}

var _ contractx.OrderRepository = (*Postgres)(nil)

// Postgres is the document-store collaborator backed by bun + pgdriver.
type Postgres struct {
	db *bun.DB
}

// Open creates the bun DB. No connection is made until the first query.
func Open(cfg Config) (*bun.DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, fmt.Errorf("%w: postgres dsn is required", contractx.ErrValidation)
	}
	connector := pgdriver.NewConnector(
		pgdriver.WithDSN(dsn),
		pgdriver.WithDialTimeout(cfg.DialTimeout),
		pgdriver.WithReadTimeout(cfg.ReadTimeout),
		pgdriver.WithWriteTimeout(cfg.WriteTimeout),
	)
	return bun.NewDB(sql.OpenDB(connector), pgdialect.New()), nil
}

func NewPostgres(db *bun.DB) *Postgres {
	return &Postgres{db: db}
}

// Migrate creates the tables this service reads and writes.
func (p *Postgres) Migrate(ctx context.Context) error {
	models := []any{
		(*orderRow)(nil),
		(*productRow)(nil),
		(*userRow)(nil),
		(*ticketRow)(nil),
	}
	for _, m := range models {
		if _, err := p.db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("%w: create table: %v", contractx.ErrStore, err)
		}
	}
	return nil
}

func (p *Postgres) GetOrder(ctx context.Context, orderID string) (*contractx.Order, error) {
	var row orderRow
	if err := p.orderByIDQuery(&row, orderID).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get order=%s: %v", contractx.ErrStore, orderID, err)
	}
	o := row.toOrder()
	return &o, nil
}

func (p *Postgres) UpdateOrderStatus(ctx context.Context, orderID string, status string) error {
	if _, err := p.updateOrderQuery(orderID, "order_status", status).Exec(ctx); err != nil {
		return fmt.Errorf("%w: update order status=%s: %v", contractx.ErrStore, orderID, err)
	}
	return nil
}

func (p *Postgres) UpdateDeliveryIssue(ctx context.Context, orderID string, issue string) error {
	if _, err := p.updateOrderQuery(orderID, "delivery_issue", issue).Exec(ctx); err != nil {
		return fmt.Errorf("%w: update delivery issue=%s: %v", contractx.ErrStore, orderID, err)
	}
	return nil
}

func (p *Postgres) GetOrdersByUser(ctx context.Context, userID string, limit int) ([]contractx.Order, error) {
	var rows []orderRow
	if err := p.ordersByUserQuery(&rows, userID, limit).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: orders by user=%s: %v", contractx.ErrStore, userID, err)
	}
	out := make([]contractx.Order, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toOrder())
	}
	return out, nil
}

func (p *Postgres) GetAvailableAgent(ctx context.Context) (*contractx.AgentRef, error) {
	var row userRow
	err := p.db.NewSelect().Model(&row).Where("available = TRUE").Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: available agent: %v", contractx.ErrStore, err)
	}
	return &contractx.AgentRef{ID: row.ID, Name: row.Name}, nil
}

func (p *Postgres) InsertSupportTicket(ctx context.Context, ticket contractx.SupportTicket) error {
	if _, err := p.db.NewInsert().Model(newTicketRow(ticket)).Exec(ctx); err != nil {
		return fmt.Errorf("%w: insert ticket kind=%s: %v", contractx.ErrStore, ticket.Kind, err)
	}
	return nil
}

func (p *Postgres) SearchProduct(ctx context.Context, nameSubstring string, caseInsensitive bool) (*contractx.Product, error) {
	var row productRow
	if err := p.productSearchQuery(&row, nameSubstring, caseInsensitive).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: search product: %v", contractx.ErrStore, err)
	}
	prod := row.toProduct()
	return &prod, nil
}

func (p *Postgres) FindProductsByNames(ctx context.Context, names []string) ([]contractx.Product, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var rows []productRow
	if err := p.db.NewSelect().Model(&rows).Where("item_name IN (?)", bun.In(names)).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: products by names: %v", contractx.ErrStore, err)
	}
	out := make([]contractx.Product, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toProduct())
	}
	return out, nil
}

func (p *Postgres) FindOrdersByUserAndItems(ctx context.Context, userID string, itemIDs []string) ([]string, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var ids []string
	if err := p.ordersByItemsQuery(userID, itemIDs).Scan(ctx, &ids); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: orders by items user=%s: %v", contractx.ErrStore, userID, err)
	}
	return ids, nil
}

func (p *Postgres) orderByIDQuery(row *orderRow, orderID string) *bun.SelectQuery {
	return p.db.NewSelect().Model(row).Where("order_id = ?", orderID).Limit(1)
}

func (p *Postgres) updateOrderQuery(orderID string, column string, value string) *bun.UpdateQuery {
	return p.db.NewUpdate().
		Model((*orderRow)(nil)).
		Set("? = ?", bun.Ident(column), value).
		Where("order_id = ?", orderID)
}

func (p *Postgres) ordersByUserQuery(rows *[]orderRow, userID string, limit int) *bun.SelectQuery {
	q := p.db.NewSelect().Model(rows).Where("customer_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q
}

func (p *Postgres) productSearchQuery(row *productRow, name string, caseInsensitive bool) *bun.SelectQuery {
	op := "LIKE"
	if caseInsensitive {
		op = "ILIKE"
	}
	return p.db.NewSelect().
		Model(row).
		Where("item_name "+op+" ?", "%"+escapeLike(strings.TrimSpace(name))+"%").
		OrderExpr("length(item_name) ASC").
		Limit(1)
}

func (p *Postgres) ordersByItemsQuery(userID string, itemIDs []string) *bun.SelectQuery {
	return p.db.NewSelect().
		Model((*orderRow)(nil)).
		Column("order_id").
		Where("customer_id = ?", userID).
		Where("EXISTS (SELECT 1 FROM jsonb_array_elements(o.cart) AS c WHERE c->>'item_id' IN (?))", bun.In(itemIDs)).
		Order("created_at DESC")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
