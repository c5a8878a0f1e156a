package support

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
)

var _ contractx.ChatResponder = (*ChatResponder)(nil)

// ChatResponder answers conversational queries with the fast model and no
// tool access.
type ChatResponder struct {
	model  contractx.Completer
	prompt string
}

func NewChatResponder(model contractx.Completer, systemPrompt string) (*ChatResponder, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: chat model is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: chat", contractx.ErrPromptMissing)
	}
	return &ChatResponder{model: model, prompt: systemPrompt}, nil
}

func (c *ChatResponder) Reply(ctx context.Context, query string) (string, error) {
	out, err := c.model.Complete(ctx, c.prompt, query)
	if err != nil {
		return "", fmt.Errorf("%w: chat reply: %v", contractx.ErrModelInvoke, err)
	}
	out = stripThinking(out)
	if out == "" {
		return "", fmt.Errorf("%w: chat reply is empty", contractx.ErrSchemaViolation)
	}
	return out, nil
}

// stripThinking drops <think> blocks some reasoning models emit.
func stripThinking(s string) string {
	for {
		start := strings.Index(s, "<think>")
		if start < 0 {
			break
		}
		end := strings.Index(s[start:], "</think>")
		if end < 0 {
			s = s[:start]
			break
		}
		s = s[:start] + s[start+end+len("</think>"):]
	}
	return strings.TrimSpace(s)
}
