package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestChatClientCompleteReturnsContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if payload["model"] != "qwen2.5-coder:3b" {
			t.Fatalf("model = %v", payload["model"])
		}
		if payload["temperature"].(float64) != 0 {
			t.Fatalf("temperature = %v", payload["temperature"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "SELECT 1"}},
			},
		})
	}))
	defer server.Close()

	client, err := NewChatClient(ChatConfig{BaseURL: server.URL, Model: "qwen2.5-coder:3b"})
	if err != nil {
		t.Fatalf("NewChatClient() error = %v", err)
	}
	got, err := client.Complete(context.Background(), "one row please")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "SELECT 1" {
		t.Fatalf("Complete() = %q", got)
	}
}

func TestChatClientCompleteReturnsErrorOnHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client, err := NewChatClient(ChatConfig{BaseURL: server.URL, Model: "missing"})
	if err != nil {
		t.Fatalf("NewChatClient() error = %v", err)
	}
	if _, err := client.Complete(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for HTTP failure")
	}
}

func TestChatClientCompleteReturnsErrorOnEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	client, err := NewChatClient(ChatConfig{BaseURL: server.URL, Model: "m"})
	if err != nil {
		t.Fatalf("NewChatClient() error = %v", err)
	}
	if _, err := client.Complete(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestChatClientSendsAuthorizationWhenKeySet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Fatalf("Authorization = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "ok"}},
			},
		})
	}))
	defer server.Close()

	client, err := NewChatClient(ChatConfig{BaseURL: server.URL, APIKey: "secret", Model: "m"})
	if err != nil {
		t.Fatalf("NewChatClient() error = %v", err)
	}
	if _, err := client.Complete(context.Background(), "hello"); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
}

func TestNewChatClientRequiresBaseURLAndModel(t *testing.T) {
	if _, err := NewChatClient(ChatConfig{Model: "m"}); err == nil {
		t.Fatal("expected error for missing base URL")
	}
	if _, err := NewChatClient(ChatConfig{BaseURL: "http://localhost:11434"}); err == nil {
		t.Fatal("expected error for missing model")
	}
}
