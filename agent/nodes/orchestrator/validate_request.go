package orchestratornode

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
)

var (
	ErrInvalidMessage = fmt.Errorf("%w: user query is empty", contractx.ErrValidation)
	ErrInvalidUser    = fmt.Errorf("%w: user id is empty", contractx.ErrValidation)
)

type GraphInput struct {
	UserID string
	Query  string
}

type GraphOutput struct {
	Reply string
}

// GraphState flows through every node of one chat request.
type GraphState struct {
	UserID string
	Query  string
	Now    time.Time

	Intent        contractx.Intent
	EnrichedQuery string
	Invocation    contractx.AgentInvocation

	Message string
}

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return nil, ErrInvalidUser
	}

	query := strings.TrimSpace(in.Query)
	if query == "" {
		return nil, ErrInvalidMessage
	}

	return &GraphState{
		UserID: userID,
		Query:  query,
		Now:    nowFn().UTC(),
	}, nil
}
