package tool

import (
	"context"
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
)

const (
	msgOrderNotFound        = "Order not found."
	msgOrderNotFoundRetry   = "Order not found. Please provide a valid order ID."
	msgOrderNotFoundForUser = "Order not found for this user."
	recentOrdersLimit       = 10
)

const (
	statusCancelled = "cancelled"
	statusDelivered = "delivered"
	statusCompleted = "completed"
)

func statusIs(status string, want ...string) bool {
	status = strings.TrimSpace(status)
	for _, w := range want {
		if strings.EqualFold(status, w) {
			return true
		}
	}
	return false
}

func checkOrderDeliveryStatus(ctx context.Context, r *Registry, call Call) (Result, error) {
	id, err := parseOrderID(call.Input)
	if err != nil {
		return Result{}, err
	}
	order, err := r.repo.GetOrder(ctx, id)
	if err != nil {
		return Result{}, err
	}
	if order == nil {
		return Result{Output: msgOrderNotFound}, nil
	}

	res := Result{OrderID: id}
	switch {
	case statusIs(order.OrderStatus, statusDelivered):
		res.Output = fmt.Sprintf("Your order %s was delivered on %s.", id, formatDate(order.DeliveryDate))
	case statusIs(order.OrderStatus, statusCancelled):
		res.Output = fmt.Sprintf("Your order %s was cancelled and will not be delivered.", id)
	default:
		res.Output = fmt.Sprintf("Your order %s is currently %s.", id, orUnknown(order.DeliveryStatus))
	}
	return res, nil
}

func checkRefundEligibility(ctx context.Context, r *Registry, call Call) (Result, error) {
	id, err := parseOrderID(call.Input)
	if err != nil {
		return Result{}, err
	}
	order, err := r.repo.GetOrder(ctx, id)
	if err != nil {
		return Result{}, err
	}
	if order == nil {
		return Result{Output: msgOrderNotFound}, nil
	}

	res := Result{OrderID: id}
	switch {
	case statusIs(order.VendorStatus, statusCancelled):
		res.Output = "Your refund request is eligible and will be processed shortly."
	case statusIs(order.OrderStatus, statusDelivered):
		res.Output = "Since the order was delivered, it is not eligible for a refund."
	default:
		res.Output = "Please wait for vendor confirmation to process refund."
	}
	return res, nil
}

// cancelOrder never mutates an order that already reached a terminal state.
func cancelOrder(ctx context.Context, r *Registry, call Call) (Result, error) {
	id, err := parseOrderID(call.Input)
	if err != nil {
		return Result{}, err
	}
	order, err := r.repo.GetOrder(ctx, id)
	if err != nil {
		return Result{}, err
	}
	if order == nil {
		return Result{Output: msgOrderNotFound}, nil
	}

	res := Result{OrderID: id}
	switch {
	case statusIs(order.OrderStatus, statusCancelled):
		res.Output = "This order cannot be canceled as it is already cancelled."
	case statusIs(order.OrderStatus, statusCompleted, statusDelivered):
		res.Output = "This order cannot be canceled as it is already delivered."
	default:
		if err := r.repo.UpdateOrderStatus(ctx, id, statusCancelled); err != nil {
			return Result{}, err
		}
		res.Output = fmt.Sprintf("Order %s has been canceled successfully.", id)
	}
	return res, nil
}

func getOrderByID(ctx context.Context, r *Registry, call Call) (Result, error) {
	id, err := parseOrderID(call.Input)
	if err != nil {
		return Result{}, err
	}
	order, err := r.repo.GetOrder(ctx, id)
	if err != nil {
		return Result{}, err
	}
	if order == nil {
		return Result{Output: msgOrderNotFound}, nil
	}
	return Result{Output: formatOrderDetail(*order), OrderID: id}, nil
}

// checkOrderStatus only reports orders that belong to the caller. A user id
// in the input must name the caller too.
func checkOrderStatus(ctx context.Context, r *Registry, call Call) (Result, error) {
	spec := r.byName[CheckOrderStatus]
	values, err := parseComposite(call.Input, spec.Fields)
	if err != nil {
		return Result{}, err
	}
	id, err := parseOrderID(values[0])
	if err != nil {
		return Result{}, err
	}
	owner := callerOr(call, values[1])
	if values[1] != "" && values[1] != owner {
		return Result{Output: msgOrderNotFoundForUser}, nil
	}

	order, err := r.repo.GetOrder(ctx, id)
	if err != nil {
		return Result{}, err
	}
	if order == nil || order.CustomerID != owner {
		return Result{Output: msgOrderNotFoundForUser}, nil
	}
	return Result{
		Output: fmt.Sprintf("Order %s status: %s. Vendor status: %s. Delivery status: %s.",
			id, orUnknown(order.OrderStatus), orUnknown(order.VendorStatus), orUnknown(order.DeliveryStatus)),
		OrderID: id,
	}, nil
}

func getExpectedDeliveryTime(ctx context.Context, r *Registry, call Call) (Result, error) {
	id, err := parseOrderID(call.Input)
	if err != nil {
		return Result{}, err
	}
	ok, err := r.orderExists(ctx, id)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{Output: msgOrderNotFoundRetry}, nil
	}
	return Result{
		Output:  fmt.Sprintf("Expected delivery time for order %s takes around 2 - 3 hours.", id),
		OrderID: id,
	}, nil
}

// getOrders always lists the caller's own orders.
func getOrders(ctx context.Context, r *Registry, call Call) (Result, error) {
	userID := strings.TrimSpace(call.UserID)
	if userID == "" {
		return Result{Output: "Please provide a valid user ID."}, nil
	}
	orders, err := r.repo.GetOrdersByUser(ctx, userID, recentOrdersLimit)
	if err != nil {
		return Result{}, err
	}
	if len(orders) == 0 {
		return Result{Output: "No orders found for your account."}, nil
	}

	blocks := make([]string, 0, len(orders))
	for _, o := range orders {
		blocks = append(blocks, formatOrderSummary(o))
	}
	return Result{Output: strings.Join(blocks, "\n---\n")}, nil
}

func getOrdersByItemNames(ctx context.Context, r *Registry, call Call) (Result, error) {
	spec := r.byName[GetOrdersByItemNames]
	in, err := decodeRecord[itemNamesInput](call.Input, spec.Fields, call.UserID)
	if err != nil {
		return Result{}, err
	}

	var names []string
	for _, n := range strings.Split(strings.ReplaceAll(in.ItemNames, "'", ""), ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return Result{}, malformed("item_names is required")
	}

	products, err := r.repo.FindProductsByNames(ctx, names)
	if err != nil {
		return Result{}, err
	}
	found := make(map[string]string, len(products))
	for _, p := range products {
		found[p.ItemName] = p.ItemID
	}

	var missing []string
	itemIDs := make([]string, 0, len(products))
	for _, n := range names {
		id, ok := found[n]
		if !ok {
			missing = append(missing, n)
			continue
		}
		itemIDs = append(itemIDs, id)
	}
	if len(missing) > 0 {
		return Result{Output: fmt.Sprintf("Some items not found: %s. Please verify the item names.", strings.Join(missing, ", "))}, nil
	}

	ids, err := r.repo.FindOrdersByUserAndItems(ctx, callerOr(call, in.UserID), itemIDs)
	if err != nil {
		return Result{}, err
	}
	if len(ids) == 0 {
		return Result{Output: "No matching orders found."}, nil
	}
	return Result{Output: "Matching order IDs: " + strings.Join(ids, ", ")}, nil
}

func searchProducts(ctx context.Context, r *Registry, call Call) (Result, error) {
	name := trimValue(call.Input)
	if name == "" {
		return Result{}, malformed("a product name is required")
	}
	product, err := r.repo.SearchProduct(ctx, name, true)
	if err != nil {
		return Result{}, err
	}
	if product == nil {
		return Result{Output: "Product not found."}, nil
	}
	return Result{Output: formatProduct(*product)}, nil
}

func formatOrderDetail(o contractx.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order ID: %s\n", o.OrderID)
	fmt.Fprintf(&b, "Order Date: %s\n", formatDate(&o.CreatedAt))
	fmt.Fprintf(&b, "Order Status: %s\n", orUnknown(o.OrderStatus))
	fmt.Fprintf(&b, "Vendor Status: %s\n", orUnknown(o.VendorStatus))
	fmt.Fprintf(&b, "Delivery Status: %s\n", orUnknown(o.DeliveryStatus))
	if o.DeliveryDate != nil {
		fmt.Fprintf(&b, "Delivered On: %s\n", formatDate(o.DeliveryDate))
	}
	if o.DeliveryIssue != "" {
		fmt.Fprintf(&b, "Reported Issue: %s\n", o.DeliveryIssue)
	}
	b.WriteString("Items:\n")
	b.WriteString(formatCart(o.Cart))
	fmt.Fprintf(&b, "Total: $%.2f", o.TotalPrice)
	return b.String()
}

func formatOrderSummary(o contractx.Order) string {
	return fmt.Sprintf("Order Id: %s Order Date: %s,\nOrder Items:\n%sTotal: $%.2f",
		o.OrderID, formatDate(&o.CreatedAt), formatCart(o.Cart), o.TotalPrice)
}

func formatCart(items []contractx.CartItem) string {
	if len(items) == 0 {
		return "- no items\n"
	}
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "- %s x%d ($%.2f)\n", item.ItemName, item.Quantity, item.Price)
	}
	return b.String()
}

func formatProduct(p contractx.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Item: %s\n", p.ItemName)
	if p.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", p.Description)
	}
	fmt.Fprintf(&b, "Price: $%.2f\n", p.Price)
	if p.DiscountedPrice > 0 && p.DiscountedPrice < p.Price {
		fmt.Fprintf(&b, "Discounted Price: $%.2f\n", p.DiscountedPrice)
	}
	if p.PackingPrice > 0 {
		fmt.Fprintf(&b, "Packing Charge: $%.2f\n", p.PackingPrice)
	}
	veg := "No"
	if p.IsVeg {
		veg = "Yes"
	}
	stock := "In stock"
	if p.IsOutOfStock {
		stock = "Out of stock"
	}
	fmt.Fprintf(&b, "Vegetarian: %s\nAvailability: %s", veg, stock)
	return b.String()
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "an unknown date"
	}
	return t.UTC().Format("2006-01-02 15:04 MST")
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return "unknown"
}

// callerOr returns the calling user, or supplied when the call carries none.
func callerOr(call Call, supplied string) string {
	if id := strings.TrimSpace(call.UserID); id != "" {
		return id
	}
	return strings.TrimSpace(supplied)
}
