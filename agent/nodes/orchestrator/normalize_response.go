package orchestratornode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
)

// NormalizeResponse returns terminal tool output unchanged apart from
// scaffolding removal; everything else is cleaned and maybe summarized.
func NormalizeResponse(ctx context.Context, in *GraphState, normalizer contractx.Normalizer) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	inv := in.Invocation
	if inv.Terminal {
		in.Message = normalizer.NormalizeDirect(inv.FinalOutput)
		return in, nil
	}

	msg, err := normalizer.Normalize(ctx, inv.FinalOutput, inv.ToolUsed, in.Query)
	if err != nil {
		return nil, err
	}
	in.Message = msg
	return in, nil
}
