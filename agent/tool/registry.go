package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
	"github.com/tanpawarit/Chative-Food-Delivery-Support/agent/metrics"
)

// Call is one tool invocation requested by the agent.
type Call struct {
	Name   string
	Input  string
	UserID string
}

// Result is what the agent observes. OrderID is the order the tool acted
// on, when it had one.
type Result struct {
	Tool     Name
	Output   string
	OrderID  string
	Terminal bool
}

type handler func(ctx context.Context, r *Registry, call Call) (Result, error)

// Registry is the process-wide, read-only tool catalog bound to its
// collaborators.
type Registry struct {
	specs    []Spec
	byName   map[Name]Spec
	handlers map[Name]handler
	repo     contractx.OrderRepository
	now      func() time.Time
	newID    func() string
	log      zerolog.Logger
}

type Option func(*Registry)

func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(r *Registry) { r.newID = newID }
}

func WithLogger(l zerolog.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// NewRegistry binds the catalog to repo. terminal lists the tools whose
// output is returned as the final answer; nil means DefaultTerminal.
func NewRegistry(repo contractx.OrderRepository, terminal []string, opts ...Option) (*Registry, error) {
	if repo == nil {
		return nil, fmt.Errorf("%w: order repository is required", contractx.ErrValidation)
	}

	terminalSet := make(map[Name]bool)
	if terminal == nil {
		for _, n := range DefaultTerminal {
			terminalSet[n] = true
		}
	}
	for _, raw := range terminal {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		name, ok := ParseName(raw)
		if !ok {
			return nil, fmt.Errorf("%w: terminal tool %q", contractx.ErrUnknownTool, raw)
		}
		terminalSet[name] = true
	}

	r := &Registry{
		byName:   make(map[Name]Spec, len(catalog)),
		handlers: make(map[Name]handler, len(catalog)),
		repo:     repo,
		now:      time.Now,
		newID:    uuid.NewString,
		log:      log.With().Str("component", "tool_registry").Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, spec := range catalog {
		spec.Terminal = terminalSet[spec.Name]
		h := handlerFor(spec.Name)
		if h == nil {
			return nil, fmt.Errorf("%w: no handler for %s", contractx.ErrUnknownTool, spec.Name)
		}
		r.specs = append(r.specs, spec)
		r.byName[spec.Name] = spec
		r.handlers[spec.Name] = h
	}
	return r, nil
}

func handlerFor(name Name) handler {
	switch name {
	case CheckOrderDeliveryStatus:
		return checkOrderDeliveryStatus
	case CheckRefundEligibility:
		return checkRefundEligibility
	case CancelOrder:
		return cancelOrder
	case GetOrderByID:
		return getOrderByID
	case CheckOrderStatus:
		return checkOrderStatus
	case GetExpectedDeliveryTime:
		return getExpectedDeliveryTime
	case GetOrders:
		return getOrders
	case GetOrdersByItemNames:
		return getOrdersByItemNames
	case SearchProducts:
		return searchProducts
	case ReportDeliveryIssue:
		return reportDeliveryIssue
	case ReportOrderNotReceived:
		return reportOrderNotReceived
	case ReportWrongOrMissing:
		return reportWrongOrMissing
	case ReportPaymentIssue:
		return reportPaymentIssue
	case RequestAddressChange:
		return requestAddressChange
	case SupportLoginSignup:
		return supportLoginSignup
	case ExplainCapabilities:
		return explainCapabilities
	case EscalateToHuman:
		return escalateToHuman
	case AskForOrderID:
		return askForOrderID
	case OrderNotFound:
		return orderNotFound
	default:
		return nil
	}
}

func (r *Registry) Specs() []Spec {
	out := make([]Spec, len(r.specs))
	copy(out, r.specs)
	return out
}

func (r *Registry) Spec(name string) (Spec, bool) {
	n, ok := ParseName(strings.TrimSpace(name))
	if !ok {
		return Spec{}, false
	}
	spec, ok := r.byName[n]
	return spec, ok
}

// Invoke runs a tool. Unknown tools and malformed input come back as a
// corrective observation; only collaborator failures are returned as errors.
func (r *Registry) Invoke(ctx context.Context, call Call) (Result, error) {
	spec, ok := r.Spec(call.Name)
	if !ok {
		metrics.ToolInvocationsTotal.WithLabelValues("unknown", metrics.OutcomeUnknown).Inc()
		return Result{Output: r.unknownToolMessage(call.Name)}, nil
	}

	res, err := r.handlers[spec.Name](ctx, r, call)
	res.Tool = spec.Name
	res.Terminal = spec.Terminal

	switch {
	case errors.Is(err, contractx.ErrMalformedInput):
		metrics.ToolInvocationsTotal.WithLabelValues(string(spec.Name), metrics.OutcomeMalformed).Inc()
		r.log.Debug().Err(err).Str("tool", string(spec.Name)).Msg("malformed tool input")
		return Result{Tool: spec.Name, Output: correctiveMessage(spec, err)}, nil
	case err != nil:
		metrics.ToolInvocationsTotal.WithLabelValues(string(spec.Name), metrics.OutcomeError).Inc()
		return Result{Tool: spec.Name}, fmt.Errorf("tool=%s: %w", spec.Name, err)
	}

	metrics.ToolInvocationsTotal.WithLabelValues(string(spec.Name), metrics.OutcomeOK).Inc()
	r.log.Debug().
		Str("tool", string(spec.Name)).
		Bool("terminal", res.Terminal).
		Int("output_len", len(res.Output)).
		Msg("tool invoked")
	return res, nil
}

func (r *Registry) unknownToolMessage(name string) string {
	return fmt.Sprintf("%s is not a valid tool, try one of [%s].", strings.TrimSpace(name), r.NameList())
}

func correctiveMessage(spec Spec, err error) string {
	detail := strings.TrimPrefix(err.Error(), contractx.ErrMalformedInput.Error()+": ")
	return fmt.Sprintf("Invalid input for %s: %s. Expected %s.", spec.Name, detail, expectedInput(spec))
}

func expectedInput(spec Spec) string {
	switch spec.Input {
	case InputOrderID:
		return "a single order id such as 1234567"
	case InputComposite:
		names := make([]string, 0, len(spec.Fields))
		for _, f := range spec.Fields {
			names = append(names, f.Name)
		}
		return "'" + strings.Join(names, compositeSeparator) + "'"
	case InputRecord:
		keys := make([]string, 0, len(spec.Fields))
		for _, f := range spec.Fields {
			keys = append(keys, fmt.Sprintf("%q: \"...\"", f.Name))
		}
		return "a JSON object like {" + strings.Join(keys, ", ") + "}"
	case InputText:
		return "plain text"
	default:
		return "no input"
	}
}

func (r *Registry) newTicket(kind string) contractx.SupportTicket {
	return contractx.SupportTicket{
		ID:        r.newID(),
		Kind:      kind,
		CreatedAt: r.now().UTC(),
	}
}

// orderExists mirrors a lookup that treats a blank id as absent.
func (r *Registry) orderExists(ctx context.Context, orderID string) (bool, error) {
	if orderID == "" {
		return false, nil
	}
	order, err := r.repo.GetOrder(ctx, orderID)
	if err != nil {
		return false, err
	}
	return order != nil, nil
}
