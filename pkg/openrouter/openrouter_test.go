package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if c := NewClient(Config{APIKey: "   "}); c != nil {
		t.Fatal("expected nil client for blank api key")
	}
	if c := NewClient(Config{APIKey: "key", BaseURL: "https://example.test/api/v1/"}); c == nil {
		t.Fatal("expected client")
	}
}

func TestNewCompleterValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewCompleter(Config{Model: "m"}); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := NewCompleter(Config{APIKey: "key", Model: " "}); err == nil {
		t.Fatal("expected error for missing model")
	}
}

func TestCompleterComplete(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"c1","object":"chat.completion","created":1,"model":"fast-model","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"tool"}}]}`)
	}))
	t.Cleanup(server.Close)

	maxTokens := 16
	c, err := NewCompleter(Config{
		BaseURL:            server.URL,
		APIKey:             "secret",
		Model:              "fast-model",
		MaxCompletionToken: &maxTokens,
		Temperature:        0,
		Timeout:            5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewCompleter() error = %v", err)
	}

	out, err := c.Complete(context.Background(), "classify", "where is my food")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if out != "tool" {
		t.Fatalf("Complete() = %q, want %q", out, "tool")
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotBody["model"] != "fast-model" {
		t.Fatalf("model = %v", gotBody["model"])
	}
	msgs, ok := gotBody["messages"].([]any)
	if !ok || len(msgs) != 2 {
		t.Fatalf("unexpected messages: %#v", gotBody["messages"])
	}
}

func TestCompleterEmptyChoices(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"c2","object":"chat.completion","created":1,"model":"m","choices":[]}`)
	}))
	t.Cleanup(server.Close)

	c, err := NewCompleter(Config{BaseURL: server.URL, APIKey: "k", Model: "m"})
	if err != nil {
		t.Fatalf("NewCompleter() error = %v", err)
	}
	_, err = c.Complete(context.Background(), "", "hi")
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Fatalf("Complete() error = %v, want ErrEmptyCompletion", err)
	}
}
