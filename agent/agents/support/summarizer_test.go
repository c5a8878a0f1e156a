package support

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
)

func TestSummarizerFillsTemplate(t *testing.T) {
	t.Parallel()

	model := &fakeToolCallingModel{responses: []*schema.Message{text("  Your order is on its way!  ")}}
	s, err := NewSummarizer(context.Background(), model, "summarize prompt")
	if err != nil {
		t.Fatalf("NewSummarizer() error = %v", err)
	}

	out, err := s.Summarize(context.Background(), `Order ID: 1234567 {"raw": true}`, "where is my order")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if out != "Your order is on its way!" {
		t.Fatalf("unexpected summary: %q", out)
	}

	msgs := model.inputs[0]
	if len(msgs) != 2 || msgs[0].Content != "summarize prompt" {
		t.Fatalf("unexpected prompt messages: %+v", msgs)
	}
	if !strings.Contains(msgs[1].Content, "User query: where is my order") || !strings.Contains(msgs[1].Content, `{"raw": true}`) {
		t.Fatalf("unexpected user message: %q", msgs[1].Content)
	}
}

func TestSummarizerEmptyOutput(t *testing.T) {
	t.Parallel()

	s, err := NewSummarizer(context.Background(), &fakeToolCallingModel{responses: []*schema.Message{text(" ")}}, "p")
	if err != nil {
		t.Fatalf("NewSummarizer() error = %v", err)
	}
	if _, err := s.Summarize(context.Background(), "raw", "q"); !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestChatResponder(t *testing.T) {
	t.Parallel()

	c, err := NewChatResponder(&fakeCompleter{out: "<think>greet back</think>\nHi there! How can I help?"}, "chat prompt")
	if err != nil {
		t.Fatalf("NewChatResponder() error = %v", err)
	}
	out, err := c.Reply(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Reply() error = %v", err)
	}
	if out != "Hi there! How can I help?" {
		t.Fatalf("unexpected reply: %q", out)
	}

	c, _ = NewChatResponder(&fakeCompleter{err: errors.New("boom")}, "chat prompt")
	if _, err := c.Reply(context.Background(), "hi"); !errors.Is(err, contractx.ErrModelInvoke) {
		t.Fatalf("expected ErrModelInvoke, got %v", err)
	}

	if _, err := NewChatResponder(nil, "chat prompt"); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
