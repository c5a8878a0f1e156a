package orchestratornode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
)

func DispatchAgent(ctx context.Context, in *GraphState, dispatcher contractx.Dispatcher) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	inv, err := dispatcher.Dispatch(ctx, contractx.DispatchRequest{
		UserID:        in.UserID,
		RawQuery:      in.Query,
		EnrichedQuery: in.EnrichedQuery,
	})
	if err != nil {
		return nil, err
	}
	in.Invocation = inv
	return in, nil
}
