package orchestratornode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
)

// ChatReply answers without tools. The reply still goes through scaffolding
// removal.
func ChatReply(ctx context.Context, in *GraphState, chat contractx.ChatResponder, normalizer contractx.Normalizer) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	reply, err := chat.Reply(ctx, in.Query)
	if err != nil {
		return nil, err
	}
	in.Message = normalizer.NormalizeDirect(reply)
	return in, nil
}
