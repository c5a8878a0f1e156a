package orchestratornode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
)

func EnrichQuery(ctx context.Context, in *GraphState, enricher contractx.Enricher) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	enriched, err := enricher.Enrich(ctx, in.Query, in.UserID)
	if err != nil {
		return nil, err
	}
	in.EnrichedQuery = enriched
	return in, nil
}
