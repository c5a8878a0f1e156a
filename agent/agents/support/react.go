package support

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
)

const (
	markerThought     = "Thought:"
	markerAction      = "Action:"
	markerActionInput = "Action Input:"
	markerObservation = "Observation:"
	markerFinal       = "Final Answer:"
)

var errFormat = errors.New("reasoning output does not follow the expected format")

// step is one decoded model turn: either a final answer or tool calls.
type step struct {
	thought string
	final   string
	calls   []toolCall
	native  bool
}

type toolCall struct {
	id     string
	name   string
	input  string
	native bool
}

func (s step) isFinal() bool {
	return len(s.calls) == 0
}

// decodeStep reads native tool calls first and falls back to the
// Thought / Action / Action Input / Final Answer grammar.
func decodeStep(msg *schema.Message) (step, error) {
	if msg == nil {
		return step{}, fmt.Errorf("%w: %w: empty model message", contractx.ErrSchemaViolation, errFormat)
	}

	if len(msg.ToolCalls) > 0 {
		out := step{thought: strings.TrimSpace(msg.Content), native: true}
		for _, call := range msg.ToolCalls {
			name := strings.TrimSpace(call.Function.Name)
			if name == "" {
				return step{}, fmt.Errorf("%w: %w: tool call name is empty", contractx.ErrSchemaViolation, errFormat)
			}
			out.calls = append(out.calls, toolCall{id: call.ID, name: name, input: call.Function.Arguments, native: true})
		}
		return out, nil
	}

	return parseText(msg.Content)
}

func parseText(content string) (step, error) {
	text := strings.TrimSpace(content)
	if text == "" {
		return step{}, fmt.Errorf("%w: %w: empty content", contractx.ErrSchemaViolation, errFormat)
	}

	finalAt := strings.Index(text, markerFinal)
	actionAt := strings.Index(text, markerAction)
	thought := extractThought(text)

	switch {
	case finalAt >= 0 && actionAt >= 0:
		return step{}, fmt.Errorf("%w: %w: both an action and a final answer", contractx.ErrSchemaViolation, errFormat)
	case finalAt >= 0:
		answer := strings.TrimSpace(text[finalAt+len(markerFinal):])
		if answer == "" {
			return step{}, fmt.Errorf("%w: %w: final answer is empty", contractx.ErrSchemaViolation, errFormat)
		}
		return step{thought: thought, final: answer}, nil
	case actionAt >= 0:
		call, err := parseAction(text[actionAt:])
		if err != nil {
			return step{}, err
		}
		return step{thought: thought, calls: []toolCall{call}}, nil
	case strings.Contains(text, markerThought) || strings.Contains(text, markerActionInput):
		return step{}, fmt.Errorf("%w: %w: no action or final answer", contractx.ErrSchemaViolation, errFormat)
	default:
		// A plain reply from a tool-calling model is its final answer.
		return step{final: text}, nil
	}
}

func parseAction(text string) (toolCall, error) {
	inputAt := strings.Index(text, markerActionInput)
	if inputAt < 0 {
		return toolCall{}, fmt.Errorf("%w: %w: missing %q", contractx.ErrSchemaViolation, errFormat, markerActionInput)
	}

	name := strings.TrimSpace(text[len(markerAction):inputAt])
	name = strings.Trim(name, "[]`\"' ")
	if name == "" {
		return toolCall{}, fmt.Errorf("%w: %w: action name is empty", contractx.ErrSchemaViolation, errFormat)
	}

	input := text[inputAt+len(markerActionInput):]
	if i := strings.Index(input, markerObservation); i >= 0 {
		input = input[:i]
	}
	return toolCall{name: name, input: strings.TrimSpace(input)}, nil
}

func extractThought(text string) string {
	at := strings.Index(text, markerThought)
	if at < 0 {
		return ""
	}
	rest := text[at+len(markerThought):]
	end := len(rest)
	for _, m := range []string{markerAction, markerFinal} {
		if i := strings.Index(rest, m); i >= 0 && i < end {
			end = i
		}
	}
	return strings.TrimSpace(rest[:end])
}
