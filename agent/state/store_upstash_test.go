package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestUpstashRedisStoreRedisKey(t *testing.T) {
	t.Parallel()

	store := &UpstashRedisStore{}
	got, err := store.redisKey("u-1")
	if err != nil {
		t.Fatalf("redisKey() error = %v", err)
	}
	if got != "chat_state:u-1" {
		t.Fatalf("redisKey() = %q, want %q", got, "chat_state:u-1")
	}

	if _, err := store.redisKey("   "); !errors.Is(err, ErrInvalidUser) {
		t.Fatalf("redisKey() error = %v, want ErrInvalidUser", err)
	}
}

func TestUpstashRedisStoreSave(t *testing.T) {
	t.Parallel()

	var gotCommand []any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		if err := json.NewDecoder(r.Body).Decode(&gotCommand); err != nil {
			t.Errorf("decode command: %v", err)
		}
		fmt.Fprint(w, `{"result":"OK"}`)
	}))
	t.Cleanup(server.Close)

	store, err := NewUpstashRedisStore(
		UpstashRedisConfig{URL: server.URL, Token: "token"},
		WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewUpstashRedisStore() error = %v", err)
	}

	entry := &ContextEntry{UserID: "u1", LastOrderID: "1234567", UpdatedAt: time.Now()}
	if err := store.Save(context.Background(), entry); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if len(gotCommand) != 3 {
		t.Fatalf("expected SET without expiry, got %#v", gotCommand)
	}
	if gotCommand[0] != "SET" || gotCommand[1] != "chat_state:u1" {
		t.Fatalf("unexpected command: %#v", gotCommand)
	}
	var stored ContextEntry
	if err := json.Unmarshal([]byte(gotCommand[2].(string)), &stored); err != nil {
		t.Fatalf("unmarshal stored payload: %v", err)
	}
	if stored.LastOrderID != "1234567" {
		t.Fatalf("stored LastOrderID = %q", stored.LastOrderID)
	}
}

func TestUpstashRedisStoreSaveWithTTL(t *testing.T) {
	t.Parallel()

	var gotCommand []any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		_ = json.NewDecoder(r.Body).Decode(&gotCommand)
		fmt.Fprint(w, `{"result":"OK"}`)
	}))
	t.Cleanup(server.Close)

	store, err := NewUpstashRedisStore(
		UpstashRedisConfig{URL: server.URL, Token: "token"},
		WithHTTPClient(server.Client()),
		WithTTL(1500*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("NewUpstashRedisStore() error = %v", err)
	}
	if err := store.Save(context.Background(), &ContextEntry{UserID: "u1", LastOrderID: "1234567"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if len(gotCommand) != 5 || gotCommand[3] != "EX" || gotCommand[4] != float64(2) {
		t.Fatalf("unexpected command: %#v", gotCommand)
	}
}

func TestUpstashRedisStoreLoad(t *testing.T) {
	t.Parallel()

	seed := ContextEntry{UserID: "u2", LastOrderID: "7654321", UpdatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	payload, err := json.Marshal(seed)
	if err != nil {
		t.Fatalf("marshal seed: %v", err)
	}
	encoded, err := json.Marshal(string(payload))
	if err != nil {
		t.Fatalf("marshal encoded seed: %v", err)
	}

	var gotCommand []any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		_ = json.NewDecoder(r.Body).Decode(&gotCommand)
		fmt.Fprintf(w, `{"result":%s}`, encoded)
	}))
	t.Cleanup(server.Close)

	store, err := NewUpstashRedisStore(
		UpstashRedisConfig{URL: server.URL, Token: "token"},
		WithHTTPClient(server.Client()),
		WithKeyPrefix("ctx:"),
	)
	if err != nil {
		t.Fatalf("NewUpstashRedisStore() error = %v", err)
	}

	entry, err := store.Load(context.Background(), "u2")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if entry.LastOrderID != "7654321" {
		t.Fatalf("Load().LastOrderID = %q", entry.LastOrderID)
	}
	if gotCommand[0] != "GET" || gotCommand[1] != "ctx:u2" {
		t.Fatalf("unexpected command: %#v", gotCommand)
	}
}

func TestUpstashRedisStoreLoadMissing(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":null}`)
	}))
	t.Cleanup(server.Close)

	store, err := NewUpstashRedisStore(UpstashRedisConfig{URL: server.URL, Token: "token"}, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewUpstashRedisStore() error = %v", err)
	}
	if _, err := store.Load(context.Background(), "nobody"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("Load() error = %v, want ErrEntryNotFound", err)
	}
	got, err := LastOrderID(context.Background(), store, "nobody")
	if err != nil || got != "" {
		t.Fatalf("LastOrderID() = (%q, %v), want empty", got, err)
	}
}

func TestUpstashRedisStoreErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	store, err := NewUpstashRedisStore(UpstashRedisConfig{URL: server.URL, Token: "token"}, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewUpstashRedisStore() error = %v", err)
	}
	if _, err := LastOrderID(context.Background(), store, "u1"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}
