package support

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
)

// Summarizer rephrases raw tool output with the careful model.
type Summarizer struct {
	runner compose.Runnable[map[string]any, *schema.Message]
}

func NewSummarizer(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*Summarizer, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: summarize", contractx.ErrPromptMissing)
	}
	runner, err := compileSummaryGraph(ctx, chatModel, systemPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}
	return &Summarizer{runner: runner}, nil
}

func (s *Summarizer) Summarize(ctx context.Context, raw string, userQuery string) (string, error) {
	msg, err := s.runner.Invoke(ctx, map[string]any{
		"user_query": userQuery,
		"raw_output": raw,
	})
	if err != nil {
		return "", fmt.Errorf("%w: summarize: %v", contractx.ErrModelInvoke, err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", fmt.Errorf("%w: summary is empty", contractx.ErrSchemaViolation)
	}
	return strings.TrimSpace(msg.Content), nil
}
