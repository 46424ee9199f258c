package groq

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientCreateChatCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openai/v1/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Fatalf("unexpected Authorization header: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"c1","object":"chat.completion","created":1,"model":"llama-3.1","choices":[{"index":0,"message":{"role":"assistant","content":"Binary uses two digits."},"finish_reason":"stop"}],"usage":{"prompt_tokens":1,"completion_tokens":2,"total_tokens":3}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", time.Second)
	resp, err := client.CreateChatCompletion(context.Background(), &ChatCompletionRequest{
		Model: "llama-3.1",
		Messages: []ChatMessage{
			{Role: "user", Content: "What is binary?"},
		},
	})
	if err != nil {
		t.Fatalf("CreateChatCompletion failed: %v", err)
	}
	if resp.Content() != "Binary uses two digits." {
		t.Fatalf("unexpected content: %q", resp.Content())
	}
}

func TestClientCreateChatCompletionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"rate limited"}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", time.Second)
	_, err := client.CreateChatCompletion(context.Background(), &ChatCompletionRequest{
		Model:    "llama-3.1",
		Messages: []ChatMessage{{Role: "user", Content: "hello"}},
	})
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if svcErr.Status != http.StatusTooManyRequests {
		t.Fatalf("unexpected status: %d", svcErr.Status)
	}
}

func TestResponseContentForms(t *testing.T) {
	messageForm := &ChatCompletionResponse{
		Choices: []Choice{{Message: &ChatMessage{Role: "assistant", Content: "from message"}}},
	}
	if messageForm.Content() != "from message" {
		t.Fatalf("unexpected content: %q", messageForm.Content())
	}

	textForm := &ChatCompletionResponse{
		Choices: []Choice{{Text: "from text"}},
	}
	if textForm.Content() != "from text" {
		t.Fatalf("unexpected content: %q", textForm.Content())
	}

	empty := &ChatCompletionResponse{}
	if empty.Content() != "" {
		t.Fatalf("expected empty content, got %q", empty.Content())
	}
}
