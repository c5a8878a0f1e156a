package repository

import (
	"context"

	"github.com/rs/zerolog"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
	qstashx "github.com/tanpawarit/Chative-Food-Delivery-Support/pkg/qstash"
)

// Publisher is the subset of the QStash client used to fan tickets out.
type Publisher interface {
	PublishJSON(ctx context.Context, destination string, payload any) (qstashx.PublishResponse, error)
}

// NotifyingTickets publishes every inserted support ticket to a webhook after
// the underlying insert succeeds. Publish failures are logged, never returned.
type NotifyingTickets struct {
	contractx.OrderRepository

	publisher   Publisher
	destination string
	log         zerolog.Logger
}

func NewNotifyingTickets(repo contractx.OrderRepository, publisher Publisher, destination string, log zerolog.Logger) *NotifyingTickets {
	return &NotifyingTickets{
		OrderRepository: repo,
		publisher:       publisher,
		destination:     destination,
		log:             log,
	}
}

func (n *NotifyingTickets) InsertSupportTicket(ctx context.Context, ticket contractx.SupportTicket) error {
	if err := n.OrderRepository.InsertSupportTicket(ctx, ticket); err != nil {
		return err
	}
	if n.publisher == nil || n.destination == "" {
		return nil
	}

	resp, err := n.publisher.PublishJSON(ctx, n.destination, ticket)
	if err != nil {
		n.log.Warn().Err(err).
			Str("ticket_id", ticket.ID).
			Str("kind", ticket.Kind).
			Msg("ticket webhook publish failed")
		return nil
	}
	n.log.Debug().
		Str("ticket_id", ticket.ID).
		Str("message_id", resp.MessageID).
		Msg("ticket published")
	return nil
}
