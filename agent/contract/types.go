package contract

import "time"

type AgentType string

const (
	AgentTypeClassifier AgentType = "classifier"
	AgentTypeChat       AgentType = "chat"
	AgentTypeSupport    AgentType = "support"
	AgentTypeSummarizer AgentType = "summarizer"
)

// Intent is the coarse routing decision for an incoming query.
type Intent string

const (
	IntentChat Intent = "chat"
	IntentTool Intent = "tool"
)

type DispatchRequest struct {
	UserID        string `json:"user_id"`
	RawQuery      string `json:"raw_query"`
	EnrichedQuery string `json:"enriched_query"`
}

// TranscriptStep is one (thought, tool, input, output) record of a dispatch.
type TranscriptStep struct {
	Thought    string `json:"thought,omitempty"`
	Tool       string `json:"tool"`
	ToolInput  string `json:"tool_input"`
	ToolOutput string `json:"tool_output"`
}

// AgentInvocation is the per-request dispatch record. It is never persisted.
type AgentInvocation struct {
	UserID        string           `json:"user_id"`
	EnrichedQuery string           `json:"enriched_query"`
	Transcript    []TranscriptStep `json:"transcript,omitempty"`
	FinalOutput   string           `json:"final_output"`
	ToolUsed      bool             `json:"tool_used"`
	Terminal      bool             `json:"terminal"`
	Iterations    int              `json:"iterations"`
	BoundReached  bool             `json:"bound_reached"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type CartItem struct {
	ItemID   string  `json:"item_id"`
	ItemName string  `json:"item_name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type Order struct {
	OrderID        string     `json:"order_id"`
	CustomerID     string     `json:"customer_id"`
	OrderStatus    string     `json:"order_status"`
	VendorStatus   string     `json:"vendor_status"`
	DeliveryStatus string     `json:"delivery_status"`
	DeliveryIssue  string     `json:"delivery_issue,omitempty"`
	Cart           []CartItem `json:"cart"`
	TotalPrice     float64    `json:"total_price"`
	CreatedAt      time.Time  `json:"created_at"`
	DeliveryDate   *time.Time `json:"delivery_date,omitempty"`
}

type Product struct {
	ItemID          string  `json:"item_id"`
	ItemName        string  `json:"item_name"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price"`
	DiscountedPrice float64 `json:"discounted_price"`
	PackingPrice    float64 `json:"packing_price"`
	ImageURL        string  `json:"image_url,omitempty"`
	IsVeg           bool    `json:"is_veg"`
	IsOutOfStock    bool    `json:"is_out_of_stock"`
}

// AgentRef identifies a human support agent.
type AgentRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SupportTicket is append-only from the core's point of view.
type SupportTicket struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	UserID        string    `json:"user_id,omitempty"`
	OrderID       string    `json:"order_id,omitempty"`
	TransactionID string    `json:"transaction_id,omitempty"`
	Issue         string    `json:"issue,omitempty"`
	NewAddress    string    `json:"new_address,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

const (
	TicketNotReceived   = "not_received"
	TicketWrongItems    = "wrong_or_missing_items"
	TicketPayment       = "payment_issue"
	TicketAddressChange = "address_change"
	TicketLoginSignup   = "login_signup"
)
