package generation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"PostDrafter/internal/config"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(config.GeneratorConfig{
		Endpoint:   server.URL,
		Model:      "test-model",
		APIKey:     "test-key",
		APIVersion: "2023-06-01",
		MaxTokens:  1024,
	})
}

func TestComplete(t *testing.T) {
	t.Parallel()

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Fatalf("missing api key header")
		}
		if r.Header.Get("anthropic-version") != "2023-06-01" {
			t.Fatalf("missing version header")
		}

		var payload struct {
			Model     string `json:"model"`
			MaxTokens int    `json:"max_tokens"`
			System    string `json:"system"`
			Messages  []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if payload.Model != "test-model" || payload.MaxTokens != 1024 {
			t.Fatalf("unexpected request: %+v", payload)
		}
		if payload.System != "sys" || len(payload.Messages) != 1 || payload.Messages[0].Content != "user msg" {
			t.Fatalf("prompt not forwarded: %+v", payload)
		}

		_, _ = w.Write([]byte(`{"content": [{"type": "text", "text": "reply text"}]}`))
	})

	got, err := c.Complete(context.Background(), "sys", "user msg")
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if got != "reply text" {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestCompleteAPIError(t *testing.T) {
	t.Parallel()

	c := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "bad model"}`))
	})

	_, err := c.Complete(context.Background(), "sys", "user")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", apiErr.StatusCode)
	}
}

func TestCompleteEmptyContent(t *testing.T) {
	t.Parallel()

	c := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content": []}`))
	})

	if _, err := c.Complete(context.Background(), "sys", "user"); err == nil {
		t.Fatal("expected error for empty content")
	}
}
