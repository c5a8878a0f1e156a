package tool

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
)

// Ticket tools append a record and never read it back. Filing the same
// ticket twice is accepted.

func reportOrderNotReceived(ctx context.Context, r *Registry, call Call) (Result, error) {
	in, err := decodeRecord[notReceivedInput](call.Input, r.byName[ReportOrderNotReceived].Fields, call.UserID)
	if err != nil {
		return Result{}, err
	}
	id, err := parseOrderID(in.OrderID)
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

	t := r.newTicket(contractx.TicketNotReceived)
	t.UserID, t.OrderID, t.Issue = callerOr(call, in.UserID), id, "not received"
	if err := r.repo.InsertSupportTicket(ctx, t); err != nil {
		return Result{}, err
	}
	return Result{
		Output:  fmt.Sprintf("Order %s has been flagged for 'not received'. Our support team will investigate and reach out shortly.", id),
		OrderID: id,
	}, nil
}

func reportWrongOrMissing(ctx context.Context, r *Registry, call Call) (Result, error) {
	in, err := decodeRecord[wrongItemsInput](call.Input, r.byName[ReportWrongOrMissing].Fields, call.UserID)
	if err != nil {
		return Result{}, err
	}
	id, err := parseOrderID(in.OrderID)
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

	t := r.newTicket(contractx.TicketWrongItems)
	t.UserID, t.OrderID, t.Issue = callerOr(call, in.UserID), id, in.Issue
	if err := r.repo.InsertSupportTicket(ctx, t); err != nil {
		return Result{}, err
	}
	return Result{
		Output:  fmt.Sprintf("Issue reported for order %s: %s. Our team will verify and respond shortly.", id, in.Issue),
		OrderID: id,
	}, nil
}

func reportPaymentIssue(ctx context.Context, r *Registry, call Call) (Result, error) {
	in, err := decodeRecord[paymentIssueInput](call.Input, r.byName[ReportPaymentIssue].Fields, call.UserID)
	if err != nil {
		return Result{}, err
	}

	t := r.newTicket(contractx.TicketPayment)
	t.UserID, t.TransactionID, t.Issue = callerOr(call, in.UserID), in.TransactionID, in.IssueType
	if err := r.repo.InsertSupportTicket(ctx, t); err != nil {
		return Result{}, err
	}
	return Result{
		Output: fmt.Sprintf("Payment issue '%s' for transaction %s has been reported. Our finance team will look into it.", in.IssueType, in.TransactionID),
	}, nil
}

func requestAddressChange(ctx context.Context, r *Registry, call Call) (Result, error) {
	in, err := decodeRecord[addressChangeInput](call.Input, r.byName[RequestAddressChange].Fields, call.UserID)
	if err != nil {
		return Result{}, err
	}
	id, err := parseOrderID(in.OrderID)
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

	t := r.newTicket(contractx.TicketAddressChange)
	t.UserID, t.OrderID, t.NewAddress = callerOr(call, in.UserID), id, in.NewAddress
	if err := r.repo.InsertSupportTicket(ctx, t); err != nil {
		return Result{}, err
	}
	return Result{
		Output:  fmt.Sprintf("Request received to change delivery address for order %s. We'll update you once it's processed.", id),
		OrderID: id,
	}, nil
}

func supportLoginSignup(ctx context.Context, r *Registry, call Call) (Result, error) {
	in, err := decodeRecord[loginSignupInput](call.Input, r.byName[SupportLoginSignup].Fields, call.UserID)
	if err != nil {
		return Result{}, err
	}

	t := r.newTicket(contractx.TicketLoginSignup)
	t.UserID, t.Issue = callerOr(call, in.UserID), in.Issue
	if err := r.repo.InsertSupportTicket(ctx, t); err != nil {
		return Result{}, err
	}
	return Result{
		Output: fmt.Sprintf("Our support team will assist you with: %s. Please check your email or phone for verification links if applicable.", in.Issue),
	}, nil
}

// reportDeliveryIssue records the issue on the order itself. Cancelled
// orders are rejected.
func reportDeliveryIssue(ctx context.Context, r *Registry, call Call) (Result, error) {
	in, err := decodeRecord[deliveryIssueInput](call.Input, r.byName[ReportDeliveryIssue].Fields, call.UserID)
	if err != nil {
		return Result{}, err
	}
	id, err := parseOrderID(in.OrderID)
	if err != nil {
		return Result{}, err
	}
	order, err := r.repo.GetOrder(ctx, id)
	if err != nil {
		return Result{}, err
	}
	if order == nil {
		return Result{Output: msgOrderNotFoundRetry}, nil
	}
	if statusIs(order.OrderStatus, statusCancelled) {
		return Result{
			Output:  fmt.Sprintf("Order %s was cancelled, so a delivery issue cannot be logged for it.", id),
			OrderID: id,
		}, nil
	}

	if err := r.repo.UpdateDeliveryIssue(ctx, id, in.Issue); err != nil {
		return Result{}, err
	}
	return Result{
		Output:  fmt.Sprintf("We're sorry to hear that. Your issue for order %s has been logged: %s. Our support team will take immediate action.", id, in.Issue),
		OrderID: id,
	}, nil
}
