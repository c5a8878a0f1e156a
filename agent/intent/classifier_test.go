package intent

import (
	"context"
	"errors"
	"testing"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
)

type fakeCompleter struct {
	out   string
	err   error
	calls int
}

func (f *fakeCompleter) Complete(context.Context, string, string) (string, error) {
	f.calls++
	return f.out, f.err
}

func TestClassifyRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  contractx.Intent
	}{
		{name: "order id wins over greeting", query: "hello 1234567", want: contractx.IntentTool},
		{name: "ten digit id", query: "here is the id 7251983047", want: contractx.IntentTool},
		{name: "greeting", query: "  Hello ", want: contractx.IntentChat},
		{name: "thanks with inner spaces", query: "Thank   You", want: contractx.IntentChat},
		{name: "keyword", query: "I want a refund", want: contractx.IntentTool},
		{name: "track keyword", query: "can you TRACK it", want: contractx.IntentTool},
		{name: "short digit run is not an id", query: "hi 123456", want: contractx.IntentChat},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			model := &fakeCompleter{out: "chat"}
			got, err := New(model, "prompt").Classify(context.Background(), tc.query)
			if err != nil {
				t.Fatalf("Classify returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Classify(%q) = %s, want %s", tc.query, got, tc.want)
			}
		})
	}
}

func TestClassifyShortcutsSkipModel(t *testing.T) {
	t.Parallel()

	model := &fakeCompleter{out: "tool"}
	c := New(model, "prompt")
	for _, q := range []string{"order 12345678", "hi", "cancel it"} {
		if _, err := c.Classify(context.Background(), q); err != nil {
			t.Fatalf("Classify returned error: %v", err)
		}
	}
	if model.calls != 0 {
		t.Fatalf("model should not be called, got %d calls", model.calls)
	}
}

func TestClassifyModelFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		out  string
		want contractx.Intent
	}{
		{out: " Tool\n", want: contractx.IntentTool},
		{out: "chat", want: contractx.IntentChat},
		{out: "tool.", want: contractx.IntentChat},
		{out: "I think this is a tool request", want: contractx.IntentChat},
	}
	for _, tc := range tests {
		got, err := New(&fakeCompleter{out: tc.out}, "prompt").Classify(context.Background(), "what can you do?")
		if err != nil {
			t.Fatalf("Classify returned error: %v", err)
		}
		if got != tc.want {
			t.Fatalf("model output %q -> %s, want %s", tc.out, got, tc.want)
		}
	}
}

func TestClassifyModelError(t *testing.T) {
	t.Parallel()

	_, err := New(&fakeCompleter{err: errors.New("timeout")}, "prompt").Classify(context.Background(), "what can you do?")
	if !errors.Is(err, contractx.ErrModelInvoke) {
		t.Fatalf("expected ErrModelInvoke, got %v", err)
	}
}

func TestClassifyWithoutModelDefaultsToChat(t *testing.T) {
	t.Parallel()

	got, err := New(nil, "").Classify(context.Background(), "what can you do?")
	if err != nil || got != contractx.IntentChat {
		t.Fatalf("got %s, %v; want chat", got, err)
	}
}
