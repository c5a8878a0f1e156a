package orchestratornode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
)

// Branch targets chosen after classification.
const (
	NodeChatReply  = "chat_reply"
	NodeEnrichTool = "enrich_query"
)

func ClassifyIntent(ctx context.Context, in *GraphState, classifier contractx.Classifier) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	intent, err := classifier.Classify(ctx, in.Query)
	if err != nil {
		return nil, err
	}
	in.Intent = intent
	return in, nil
}

// Route picks the next node for a classified request.
func Route(in *GraphState) (string, error) {
	if in == nil {
		return "", fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.Intent == contractx.IntentTool {
		return NodeEnrichTool, nil
	}
	return NodeChatReply, nil
}
