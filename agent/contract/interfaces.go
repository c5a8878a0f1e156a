package contract

import "context"

// Completer is a single-shot text model (system + user -> text).
type Completer interface {
	Complete(ctx context.Context, system string, user string) (string, error)
}

type Classifier interface {
	Classify(ctx context.Context, query string) (Intent, error)
}

type Enricher interface {
	Enrich(ctx context.Context, query string, userID string) (string, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, req DispatchRequest) (AgentInvocation, error)
}

type ChatResponder interface {
	Reply(ctx context.Context, query string) (string, error)
}

type Normalizer interface {
	Normalize(ctx context.Context, raw string, toolUsed bool, userQuery string) (string, error)
	NormalizeDirect(raw string) string
}

// OrderRepository is the order/product/support collaborator. Lookups return
// (nil, nil) when the record is absent.
type OrderRepository interface {
	GetOrder(ctx context.Context, orderID string) (*Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status string) error
	UpdateDeliveryIssue(ctx context.Context, orderID string, issue string) error
	GetOrdersByUser(ctx context.Context, userID string, limit int) ([]Order, error)
	GetAvailableAgent(ctx context.Context) (*AgentRef, error)
	InsertSupportTicket(ctx context.Context, ticket SupportTicket) error
	SearchProduct(ctx context.Context, nameSubstring string, caseInsensitive bool) (*Product, error)
	FindProductsByNames(ctx context.Context, names []string) ([]Product, error)
	FindOrdersByUserAndItems(ctx context.Context, userID string, itemIDs []string) ([]string, error)
}
