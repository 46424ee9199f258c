package translate

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

func TestClientTranslate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if key := r.URL.Query().Get("key"); key != "secret" {
			t.Fatalf("unexpected key: %q", key)
		}
		var req translateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request failed: %v", err)
		}
		if req.Q != "Сәлем" || req.Target != "en" || req.Source != "kk" || req.Format != "text" {
			t.Fatalf("unexpected request: %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"translations":[{"translatedText":"Hello"}]}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", time.Second)
	got, err := client.Translate(context.Background(), "Сәлем", "en", "kk")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "Hello" {
		t.Fatalf("unexpected translation: %q", got)
	}
}

func TestClientTranslateWithoutSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]interface{}{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request failed: %v", err)
		}
		if _, ok := body["source"]; ok {
			t.Fatalf("source should be omitted, got %v", body["source"])
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"translations":[{"translatedText":"Hello"}]}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", time.Second)
	if _, err := client.Translate(context.Background(), "Сәлем", "en", ""); err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
}

func TestClientTranslateMissingKey(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient(server.URL, "", time.Second)
	_, err := client.Translate(context.Background(), "Сәлем", "en", "kk")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if called {
		t.Fatalf("expected no network call without a key")
	}
}

func TestClientTranslateUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"message":"quota"}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", time.Second)
	_, err := client.Translate(context.Background(), "Сәлем", "en", "kk")
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if svcErr.Status != http.StatusForbidden {
		t.Fatalf("unexpected status: %d", svcErr.Status)
	}
	if svcErr.Body == "" {
		t.Fatalf("expected upstream body to be carried through")
	}
}

func TestClientTranslateMissingField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", time.Second)
	got, err := client.Translate(context.Background(), "Сәлем", "en", "kk")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty translation for missing field, got %q", got)
	}
}
