package repository

import (
	"time"

	"github.com/uptrace/bun"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
)

type orderRow struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	OrderID        string               `bun:"order_id,pk"`
	CustomerID     string               `bun:"customer_id,notnull"`
	OrderStatus    string               `bun:"order_status,notnull"`
	VendorStatus   string               `bun:"vendor_status"`
	DeliveryStatus string               `bun:"delivery_status"`
	DeliveryIssue  string               `bun:"delivery_issue,nullzero"`
	Cart           []contractx.CartItem `bun:"cart,type:jsonb"`
	TotalPrice     float64              `bun:"total_price"`
	CreatedAt      time.Time            `bun:"created_at,notnull"`
	DeliveryDate   time.Time            `bun:"delivery_date,nullzero"`
}

func (r *orderRow) toOrder() contractx.Order {
	o := contractx.Order{
		OrderID:        r.OrderID,
		CustomerID:     r.CustomerID,
		OrderStatus:    r.OrderStatus,
		VendorStatus:   r.VendorStatus,
		DeliveryStatus: r.DeliveryStatus,
		DeliveryIssue:  r.DeliveryIssue,
		Cart:           r.Cart,
		TotalPrice:     r.TotalPrice,
		CreatedAt:      r.CreatedAt.UTC(),
	}
	if !r.DeliveryDate.IsZero() {
		d := r.DeliveryDate.UTC()
		o.DeliveryDate = &d
	}
	return o
}

type productRow struct {
	bun.BaseModel `bun:"table:items,alias:i"`

	ItemID          string  `bun:"item_id,pk"`
	ItemName        string  `bun:"item_name,notnull"`
	Description     string  `bun:"description,nullzero"`
	Price           float64 `bun:"price"`
	DiscountedPrice float64 `bun:"discounted_price"`
	PackingPrice    float64 `bun:"packing_price"`
	ImageURL        string  `bun:"image_url,nullzero"`
	IsVeg           bool    `bun:"is_veg"`
	IsOutOfStock    bool    `bun:"is_out_of_stock"`
}

func (r *productRow) toProduct() contractx.Product {
	return contractx.Product{
		ItemID:          r.ItemID,
		ItemName:        r.ItemName,
		Description:     r.Description,
		Price:           r.Price,
		DiscountedPrice: r.DiscountedPrice,
		PackingPrice:    r.PackingPrice,
		ImageURL:        r.ImageURL,
		IsVeg:           r.IsVeg,
		IsOutOfStock:    r.IsOutOfStock,
	}
}

type userRow struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        string `bun:"id,pk"`
	Name      string `bun:"name,notnull"`
	Available bool   `bun:"available"`
}

type ticketRow struct {
	bun.BaseModel `bun:"table:support_tickets,alias:t"`

	ID            string    `bun:"id,pk"`
	Kind          string    `bun:"kind,notnull"`
	UserID        string    `bun:"user_id,nullzero"`
	OrderID       string    `bun:"order_id,nullzero"`
	TransactionID string    `bun:"transaction_id,nullzero"`
	Issue         string    `bun:"issue,nullzero"`
	NewAddress    string    `bun:"new_address,nullzero"`
	CreatedAt     time.Time `bun:"created_at,notnull"`
}

func newTicketRow(t contractx.SupportTicket) *ticketRow {
	return &ticketRow{
		ID:            t.ID,
		Kind:          t.Kind,
		UserID:        t.UserID,
		OrderID:       t.OrderID,
		TransactionID: t.TransactionID,
		Issue:         t.Issue,
		NewAddress:    t.NewAddress,
		CreatedAt:     t.CreatedAt.UTC(),
	}
}
