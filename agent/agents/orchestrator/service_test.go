package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
)

type fakeClassifier struct {
	intent contractx.Intent
	err    error
	calls  int
}

func (f *fakeClassifier) Classify(ctx context.Context, query string) (contractx.Intent, error) {
	f.calls++
	return f.intent, f.err
}

type fakeChat struct {
	reply string
	err   error
	calls int
}

func (f *fakeChat) Reply(ctx context.Context, query string) (string, error) {
	f.calls++
	return f.reply, f.err
}

type fakeEnricher struct {
	suffix string
	err    error
	calls  int
}

func (f *fakeEnricher) Enrich(ctx context.Context, query string, userID string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return query + f.suffix, nil
}

type fakeDispatcher struct {
	inv  contractx.AgentInvocation
	err  error
	reqs []contractx.DispatchRequest
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, req contractx.DispatchRequest) (contractx.AgentInvocation, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return contractx.AgentInvocation{}, f.err
	}
	inv := f.inv
	inv.UserID = req.UserID
	inv.EnrichedQuery = req.EnrichedQuery
	return inv, nil
}

type fakeNormalizer struct {
	normalizeCalls int
	directCalls    int
	lastToolUsed   bool
}

func (f *fakeNormalizer) Normalize(ctx context.Context, raw string, toolUsed bool, userQuery string) (string, error) {
	f.normalizeCalls++
	f.lastToolUsed = toolUsed
	return strings.TrimSpace(raw), nil
}

func (f *fakeNormalizer) NormalizeDirect(raw string) string {
	f.directCalls++
	return strings.TrimSpace(raw)
}

type fixture struct {
	classifier *fakeClassifier
	chat       *fakeChat
	enricher   *fakeEnricher
	dispatcher *fakeDispatcher
	normalizer *fakeNormalizer
}

func newFixture() *fixture {
	return &fixture{
		classifier: &fakeClassifier{intent: contractx.IntentTool},
		chat:       &fakeChat{reply: "Hello! How can I help?"},
		enricher:   &fakeEnricher{suffix: "\n\n[CTX] Use ORDER_ID=ORD-1 if needed."},
		dispatcher: &fakeDispatcher{inv: contractx.AgentInvocation{FinalOutput: "Order ORD-1 is delivered.", ToolUsed: true}},
		normalizer: &fakeNormalizer{},
	}
}

func (f *fixture) service(t *testing.T) *Service {
	t.Helper()

	svc, err := New(Deps{
		Classifier: f.classifier,
		Chat:       f.chat,
		Enricher:   f.enricher,
		Dispatcher: f.dispatcher,
		Normalizer: f.normalizer,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return svc
}

func TestNewRequiresAllDeps(t *testing.T) {
	t.Parallel()

	if _, err := New(Deps{}); err == nil {
		t.Fatal("expected error for missing deps")
	}
}

func TestHandleChatToolPath(t *testing.T) {
	t.Parallel()

	f := newFixture()
	resp, err := f.service(t).HandleChat(context.Background(), "u1", "where is ORD-1")
	if err != nil {
		t.Fatalf("HandleChat() error = %v", err)
	}

	if resp.Response != "Order ORD-1 is delivered." {
		t.Fatalf("unexpected response %q", resp.Response)
	}
	if f.chat.calls != 0 {
		t.Fatalf("chat responder must not run on tool intent")
	}
	if len(f.dispatcher.reqs) != 1 {
		t.Fatalf("expected one dispatch, got %d", len(f.dispatcher.reqs))
	}
	req := f.dispatcher.reqs[0]
	if req.RawQuery != "where is ORD-1" || !strings.Contains(req.EnrichedQuery, "[CTX]") || req.UserID != "u1" {
		t.Fatalf("unexpected dispatch request %+v", req)
	}
	if f.normalizer.normalizeCalls != 1 || !f.normalizer.lastToolUsed {
		t.Fatalf("expected tool output to be normalized with toolUsed=true")
	}
}

func TestHandleChatChatPath(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.classifier.intent = contractx.IntentChat

	resp, err := f.service(t).HandleChat(context.Background(), "u1", "hello")
	if err != nil {
		t.Fatalf("HandleChat() error = %v", err)
	}
	if resp.Response != "Hello! How can I help?" {
		t.Fatalf("unexpected response %q", resp.Response)
	}
	if f.enricher.calls != 0 || len(f.dispatcher.reqs) != 0 {
		t.Fatalf("chat intent must not enrich or dispatch")
	}
}

func TestHandleChatTerminalToolBypassesSummary(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.dispatcher.inv = contractx.AgentInvocation{
		FinalOutput: "Here is what I can help you with:\n- Track orders",
		ToolUsed:    true,
		Terminal:    true,
	}

	if _, err := f.service(t).HandleChat(context.Background(), "u1", "what can you do"); err != nil {
		t.Fatalf("HandleChat() error = %v", err)
	}
	if f.normalizer.directCalls != 1 || f.normalizer.normalizeCalls != 0 {
		t.Fatalf("terminal output must use direct normalization")
	}
}

func TestHandleChatValidation(t *testing.T) {
	t.Parallel()

	f := newFixture()
	svc := f.service(t)

	_, err := svc.HandleChat(context.Background(), "u1", "   ")
	if !errors.Is(err, ErrInvalidMessage) || !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrInvalidMessage, got %v", err)
	}

	_, err = svc.HandleChat(context.Background(), "", "hello")
	if !errors.Is(err, ErrInvalidUser) {
		t.Fatalf("expected ErrInvalidUser, got %v", err)
	}
	if f.classifier.calls != 0 {
		t.Fatalf("classifier must not run on invalid input")
	}
}

func TestHandleChatPropagatesComponentErrors(t *testing.T) {
	t.Parallel()

	t.Run("classifier", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		f.classifier.err = errors.Join(contractx.ErrModelInvoke, errors.New("boom"))
		if _, err := f.service(t).HandleChat(context.Background(), "u1", "hi"); !errors.Is(err, contractx.ErrModelInvoke) {
			t.Fatalf("expected ErrModelInvoke, got %v", err)
		}
	})

	t.Run("enricher", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		f.enricher.err = contractx.ErrStore
		if _, err := f.service(t).HandleChat(context.Background(), "u1", "where is my order"); !errors.Is(err, contractx.ErrStore) {
			t.Fatalf("expected ErrStore, got %v", err)
		}
	})

	t.Run("dispatcher", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		f.dispatcher.err = contractx.ErrModelInvoke
		if _, err := f.service(t).HandleChat(context.Background(), "u1", "cancel ORD-1"); !errors.Is(err, contractx.ErrModelInvoke) {
			t.Fatalf("expected ErrModelInvoke, got %v", err)
		}
	})
}
