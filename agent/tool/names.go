package tool

// Name is the closed set of tools the support agent may call.
type Name string

const (
	CheckOrderDeliveryStatus Name = "check_order_delivery_status"
	CheckRefundEligibility   Name = "check_refund_eligibility"
	CancelOrder              Name = "cancel_order"
	GetOrderByID             Name = "get_order_by_id"
	CheckOrderStatus         Name = "check_order_status"
	GetExpectedDeliveryTime  Name = "get_expected_delivery_time"
	GetOrders                Name = "get_orders"
	GetOrdersByItemNames     Name = "get_orders_by_item_names"
	SearchProducts           Name = "search_products"
	ReportDeliveryIssue      Name = "report_delivery_issue"
	ReportOrderNotReceived   Name = "report_order_not_received"
	ReportWrongOrMissing     Name = "report_wrong_or_missing_items"
	ReportPaymentIssue       Name = "report_payment_issue"
	RequestAddressChange     Name = "request_address_change"
	SupportLoginSignup       Name = "support_login_signup"
	ExplainCapabilities      Name = "explain_capabilities"
	EscalateToHuman          Name = "escalate_to_human"
	AskForOrderID            Name = "ask_for_order_id"
	OrderNotFound            Name = "order_not_found"
)

// InputKind is the structural contract of a tool's single input.
type InputKind int

const (
	// InputNone tools ignore their input.
	InputNone InputKind = iota
	// InputOrderID is a bare order id.
	InputOrderID
	// InputComposite is a '|' delimited string, one segment per field.
	InputComposite
	// InputRecord is a JSON object with string fields.
	InputRecord
	// InputText is free text passed through unchanged.
	InputText
)

// Field describes one segment of a composite input or one key of a record.
type Field struct {
	Name     string
	Desc     string
	Required bool
}

// Spec is the immutable description of a tool.
type Spec struct {
	Name        Name
	Description string
	Input       InputKind
	Fields      []Field
	Terminal    bool
}

// DefaultTerminal lists tools whose output ends the dispatch unchanged.
var DefaultTerminal = []Name{ExplainCapabilities, EscalateToHuman}

var catalog = []Spec{
	{
		Name:        AskForOrderID,
		Description: "Use ONLY when no order id is present in the message AND there is no [CTX] ORDER_ID in the input.",
		Input:       InputNone,
	},
	{
		Name:        CheckOrderDeliveryStatus,
		Description: "Check the delivery status of an order using its ID.",
		Input:       InputOrderID,
	},
	{
		Name:        ExplainCapabilities,
		Description: "Use when the user asks what you can do, how you can help, or for an overview of your support capabilities.",
		Input:       InputNone,
	},
	{
		Name:        CheckRefundEligibility,
		Description: "Check if an order is eligible for a refund.",
		Input:       InputOrderID,
	},
	{
		Name:        CancelOrder,
		Description: "Cancel an order based on its ID.",
		Input:       InputOrderID,
	},
	{
		Name:        EscalateToHuman,
		Description: "Escalate the issue to a human support agent when the user has complaints or needs human help.",
		Input:       InputText,
		Fields:      []Field{{Name: "query", Desc: "The user's complaint in their words"}},
	},
	{
		Name:        ReportDeliveryIssue,
		Description: "Report an issue with the delivery person for an order.",
		Input:       InputRecord,
		Fields: []Field{
			{Name: "order_id", Desc: "Order id", Required: true},
			{Name: "issue", Desc: "What went wrong", Required: true},
		},
	},
	{
		Name:        GetExpectedDeliveryTime,
		Description: "Get the expected delivery time for a specific order.",
		Input:       InputOrderID,
	},
	{
		Name:        ReportWrongOrMissing,
		Description: "Report wrong or missing items in the order.",
		Input:       InputRecord,
		Fields: []Field{
			{Name: "order_id", Desc: "Order id", Required: true},
			{Name: "user_id", Desc: "User id, defaults to the current user"},
			{Name: "issue", Desc: "Which items were wrong or missing", Required: true},
		},
	},
	{
		Name:        ReportPaymentIssue,
		Description: "Report any issues related to payment such as a failure or a duplicate charge.",
		Input:       InputRecord,
		Fields: []Field{
			{Name: "transaction_id", Desc: "Payment transaction id", Required: true},
			{Name: "user_id", Desc: "User id, defaults to the current user"},
			{Name: "issue_type", Desc: "Kind of payment problem", Required: true},
		},
	},
	{
		Name:        RequestAddressChange,
		Description: "Request a delivery address change for an order.",
		Input:       InputRecord,
		Fields: []Field{
			{Name: "order_id", Desc: "Order id", Required: true},
			{Name: "user_id", Desc: "User id, defaults to the current user"},
			{Name: "new_address", Desc: "The new delivery address", Required: true},
		},
	},
	{
		Name:        SupportLoginSignup,
		Description: "Help with login or signup issues.",
		Input:       InputRecord,
		Fields: []Field{
			{Name: "user_id", Desc: "User id, defaults to the current user"},
			{Name: "issue", Desc: "The login or signup problem", Required: true},
		},
	},
	{
		Name:        ReportOrderNotReceived,
		Description: "Report that the order has not been received.",
		Input:       InputRecord,
		Fields: []Field{
			{Name: "order_id", Desc: "Order id", Required: true},
			{Name: "user_id", Desc: "User id, defaults to the current user"},
		},
	},
	{
		Name:        OrderNotFound,
		Description: "Handle cases when an order ID is not found.",
		Input:       InputOrderID,
	},
	{
		Name:        GetOrderByID,
		Description: "Get order details using order ID.",
		Input:       InputOrderID,
	},
	{
		Name:        SearchProducts,
		Description: "Search for products using product names.",
		Input:       InputText,
		Fields:      []Field{{Name: "query", Desc: "Product name or part of it", Required: true}},
	},
	{
		Name:        CheckOrderStatus,
		Description: "Check the current status of a specific order. Input format: order_id|user_id",
		Input:       InputComposite,
		Fields: []Field{
			{Name: "order_id", Desc: "Order id", Required: true},
			{Name: "user_id", Desc: "User id, defaults to the current user"},
		},
	},
	{
		Name:        GetOrders,
		Description: "List the latest orders placed by the current user.",
		Input:       InputNone,
	},
	{
		Name:        GetOrdersByItemNames,
		Description: "Find the current user's orders that contain the given items.",
		Input:       InputRecord,
		Fields: []Field{
			{Name: "item_names", Desc: "Comma separated item names", Required: true},
			{Name: "user_id", Desc: "User id, defaults to the current user"},
		},
	},
}

// ParseName resolves s by exact match against the closed tool set.
func ParseName(s string) (Name, bool) {
	for _, spec := range catalog {
		if string(spec.Name) == s {
			return spec.Name, true
		}
	}
	return "", false
}

// Names returns every tool name in catalog order.
func Names() []Name {
	out := make([]Name, 0, len(catalog))
	for _, spec := range catalog {
		out = append(out, spec.Name)
	}
	return out
}
