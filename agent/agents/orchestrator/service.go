package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
	nodex "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/nodes/orchestrator"
)

var (
	ErrInvalidMessage = nodex.ErrInvalidMessage
	ErrInvalidUser    = nodex.ErrInvalidUser
)

// Deps are the pipeline components. All are required.
type Deps struct {
	Classifier contractx.Classifier
	Chat       contractx.ChatResponder
	Enricher   contractx.Enricher
	Dispatcher contractx.Dispatcher
	Normalizer contractx.Normalizer
}

func (d Deps) validate() error {
	switch {
	case d.Classifier == nil:
		return errors.New("intent classifier is required")
	case d.Chat == nil:
		return errors.New("chat responder is required")
	case d.Enricher == nil:
		return errors.New("query enricher is required")
	case d.Dispatcher == nil:
		return errors.New("agent dispatcher is required")
	case d.Normalizer == nil:
		return errors.New("response normalizer is required")
	}
	return nil
}

// Service is the chat entry point: classify, then either chat directly or
// enrich, dispatch and normalize.
type Service struct {
	deps        Deps
	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]
	now         func() time.Time
	log         zerolog.Logger
}

func New(deps Deps) (*Service, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	s := &Service{
		deps: deps,
		now:  time.Now,
		log:  log.With().Str("component", "orchestrator").Logger(),
	}

	graphRunner, err := s.compileHandleChatGraph(context.Background())
	if err != nil {
		return nil, err
	}
	s.graphRunner = graphRunner

	return s, nil
}

// HandleChat answers one user query. Errors keep their cause for logging;
// callers must not show them to the user.
func (s *Service) HandleChat(ctx context.Context, userID string, query string) (contractx.ChatResponse, error) {
	out, err := s.graphRunner.Invoke(ctx, nodex.GraphInput{
		UserID: userID,
		Query:  query,
	})
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("handle chat failed")
		return contractx.ChatResponse{}, err
	}
	return contractx.ChatResponse{Response: out.Reply}, nil
}
