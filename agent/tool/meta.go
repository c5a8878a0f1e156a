package tool

import (
	"context"
	"fmt"
)

const capabilities = `Here is what I can help you with:
- Track an order and check its delivery status or expected delivery time
- Show order details or your recent orders
- Cancel an order that has not been delivered yet
- Check whether an order is eligible for a refund
- Report wrong or missing items, an order that never arrived, or a delivery problem
- Report a payment issue such as a failed or duplicate charge
- Request a delivery address change
- Help with login or signup problems
- Search our menu for a product
- Connect you with a human support agent`

func explainCapabilities(context.Context, *Registry, Call) (Result, error) {
	return Result{Output: capabilities}, nil
}

func escalateToHuman(ctx context.Context, r *Registry, _ Call) (Result, error) {
	agent, err := r.repo.GetAvailableAgent(ctx)
	if err != nil {
		return Result{}, err
	}
	if agent == nil {
		return Result{Output: "No support agents are available at the moment. Please try again later."}, nil
	}
	return Result{Output: fmt.Sprintf("Your query is being assigned to our support agent %s.", agent.Name)}, nil
}

func askForOrderID(context.Context, *Registry, Call) (Result, error) {
	return Result{Output: "Could you please share your order ID? It is the 7 to 10 digit number in your order confirmation."}, nil
}

func orderNotFound(context.Context, *Registry, Call) (Result, error) {
	return Result{Output: msgOrderNotFound}, nil
}
