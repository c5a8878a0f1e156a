package support

import (
	"context"
	"fmt"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
	"github.com/tanpawarit/Chative-Food-Delivery-Support/agent/metrics"
	"github.com/tanpawarit/Chative-Food-Delivery-Support/agent/orderid"
	promptx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/prompt"
	"github.com/tanpawarit/Chative-Food-Delivery-Support/agent/state"
	toolx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/tool"
)

const (
	minIterations = 1
	maxIterations = 7

	// EarlyStopping is returned when the bound is hit before any tool ran.
	EarlyStopping = "Sorry, I could not finish looking into this. Please try again, or ask me to connect you with a support agent."
	// FormatApology is returned when the model ignores the format reminder.
	FormatApology = "Sorry, I had trouble processing that request. Could you please rephrase it?"
)

// Config is loaded with the AGENT prefix.
type Config struct {
	MaxIterations int      `split_words:"true" default:"3"`
	TerminalTools []string `split_words:"true" default:"explain_capabilities,escalate_to_human"`
}

// Bound clamps MaxIterations into the supported range.
func (c Config) Bound() int {
	switch {
	case c.MaxIterations < minIterations:
		return minIterations
	case c.MaxIterations > maxIterations:
		return maxIterations
	default:
		return c.MaxIterations
	}
}

var _ contractx.Dispatcher = (*Dispatcher)(nil)

// Dispatcher runs the bounded reason-act loop over the tool registry.
// Tool calls are strictly sequential.
type Dispatcher struct {
	runner        compose.Runnable[[]*schema.Message, *schema.Message]
	tools         *toolx.Registry
	store         state.Store
	systemPrompt  string
	reminder      string
	maxIterations int
	now           func() time.Time
	log           zerolog.Logger
}

func NewDispatcher(
	ctx context.Context,
	chatModel einomodel.ToolCallingChatModel,
	tools *toolx.Registry,
	store state.Store,
	prompts promptx.PromptSet,
	cfg Config,
) (*Dispatcher, error) {
	if tools == nil || store == nil {
		return nil, fmt.Errorf("%w: dispatcher needs a tool registry and a context store", contractx.ErrValidation)
	}
	if strings.TrimSpace(prompts.Support) == "" {
		return nil, fmt.Errorf("%w: support", contractx.ErrPromptMissing)
	}

	toolModel, err := chatModel.WithTools(tools.Infos())
	if err != nil {
		return nil, fmt.Errorf("%w: bind support tools: %v", contractx.ErrModelInvoke, err)
	}
	runner, err := compileReasoningGraph(ctx, toolModel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}

	return &Dispatcher{
		runner:        runner,
		tools:         tools,
		store:         store,
		systemPrompt:  prompts.Support,
		reminder:      prompts.FormatReminder,
		maxIterations: cfg.Bound(),
		now:           time.Now,
		log:           log.With().Str("component", "dispatcher").Logger(),
	}, nil
}

func (d *Dispatcher) Dispatch(ctx context.Context, req contractx.DispatchRequest) (contractx.AgentInvocation, error) {
	inv := contractx.AgentInvocation{
		UserID:        req.UserID,
		EnrichedQuery: req.EnrichedQuery,
	}

	messages := []*schema.Message{
		schema.SystemMessage(promptx.Render(d.systemPrompt, map[string]string{
			"tools":      d.tools.Describe(),
			"tool_names": d.tools.NameList(),
			"user_id":    req.UserID,
		})),
		schema.UserMessage(req.EnrichedQuery),
	}

	reminded := false
	lastObservation := ""

	for inv.Iterations < d.maxIterations {
		if err := ctx.Err(); err != nil {
			return inv, err
		}
		inv.Iterations++

		msg, err := d.runner.Invoke(ctx, messages)
		if err != nil {
			return inv, fmt.Errorf("%w: reasoning step %d: %v", contractx.ErrModelInvoke, inv.Iterations, err)
		}

		st, err := decodeStep(msg)
		if err != nil {
			d.log.Debug().Err(err).Int("iteration", inv.Iterations).Msg("unparsable reasoning output")
			if reminded || d.reminder == "" {
				inv.FinalOutput = fallback(lastObservation, FormatApology)
				return d.finish(inv, "apology"), nil
			}
			reminded = true
			messages = append(messages,
				schema.AssistantMessage(contentOf(msg), nil),
				schema.UserMessage(d.reminder),
			)
			continue
		}

		if st.isFinal() {
			inv.FinalOutput = st.final
			return d.finish(inv, "final"), nil
		}

		messages = append(messages, assistantTurn(msg, st))
		for i, call := range st.calls {
			if i > 0 {
				if err := ctx.Err(); err != nil {
					return inv, err
				}
			}
			res, err := d.invokeTool(ctx, req, call, inv.Iterations)
			if err != nil {
				return inv, err
			}

			inv.Transcript = append(inv.Transcript, contractx.TranscriptStep{
				Thought:    st.thought,
				Tool:       call.name,
				ToolInput:  call.input,
				ToolOutput: res.Output,
			})
			if res.Tool != "" {
				inv.ToolUsed = true
			}
			if res.Terminal {
				inv.Terminal = true
				inv.FinalOutput = res.Output
				return d.finish(inv, "terminal"), nil
			}

			lastObservation = res.Output
			messages = append(messages, observationTurn(st, call, res.Output))
		}
	}

	inv.BoundReached = true
	inv.FinalOutput = fallback(lastObservation, EarlyStopping)
	return d.finish(inv, "bound"), nil
}

// invokeTool runs the tool detached from caller cancellation so a write is
// never abandoned halfway.
func (d *Dispatcher) invokeTool(ctx context.Context, req contractx.DispatchRequest, call toolCall, iteration int) (toolx.Result, error) {
	input := call.input
	if spec, ok := d.tools.Spec(call.name); ok && call.native {
		input = toolx.InputFromArguments(spec, call.input)
	}

	toolCtx := context.WithoutCancel(ctx)
	res, err := d.tools.Invoke(toolCtx, toolx.Call{Name: call.name, Input: input, UserID: req.UserID})
	if err != nil {
		return toolx.Result{}, err
	}
	d.log.Debug().
		Str("tool", call.name).
		Int("iteration", iteration).
		Int("output_len", len(res.Output)).
		Msg("tool observed")

	d.observe(toolCtx, req, res)
	return res, nil
}

// observe remembers an order id the tool touched, but only one the user
// typed in this message.
func (d *Dispatcher) observe(ctx context.Context, req contractx.DispatchRequest, res toolx.Result) {
	candidates := append([]string{res.OrderID}, orderid.FindAll(res.Output)...)
	for _, id := range candidates {
		if !orderid.Verbatim(id, req.RawQuery) {
			continue
		}
		if err := state.Remember(ctx, d.store, req.UserID, id, d.now()); err != nil {
			d.log.Warn().Err(err).Str("user_id", req.UserID).Msg("remember order id from tool failed")
		}
		return
	}
}

func (d *Dispatcher) finish(inv contractx.AgentInvocation, outcome string) contractx.AgentInvocation {
	metrics.DispatchIterations.Observe(float64(inv.Iterations))
	metrics.DispatchOutcomeTotal.WithLabelValues(outcome).Inc()
	d.log.Debug().
		Str("outcome", outcome).
		Int("iterations", inv.Iterations).
		Bool("tool_used", inv.ToolUsed).
		Msg("dispatch finished")
	return inv
}

func assistantTurn(msg *schema.Message, st step) *schema.Message {
	if st.native {
		return msg
	}
	return schema.AssistantMessage(contentOf(msg), nil)
}

func observationTurn(st step, call toolCall, output string) *schema.Message {
	if st.native {
		return schema.ToolMessage(output, call.id)
	}
	return schema.UserMessage(markerObservation + " " + output)
}

func contentOf(msg *schema.Message) string {
	if msg == nil {
		return ""
	}
	return msg.Content
}

func fallback(v, def string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return def
}
