package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAICompat_Invoke(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "two buckets found"}},
			},
		})
	}))
	defer srv.Close()

	p := NewOpenAICompat("test", "secret-key", srv.URL, "test-model")
	out, err := p.Invoke(context.Background(), "you are a cloud engineer", "list s3 buckets")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "two buckets found" {
		t.Errorf("expected model reply, got %q", out)
	}
	if gotAuth != "Bearer secret-key" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotReq.Model != "test-model" {
		t.Errorf("expected model test-model, got %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Errorf("expected system+user messages, got %+v", gotReq.Messages)
	}
}

func TestOpenAICompat_ErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "rate limited upstream"},
		})
	}))
	defer srv.Close()

	p := NewOpenAICompat("test", "", srv.URL, "test-model")
	_, err := p.Invoke(context.Background(), "sys", "prompt")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestOpenAICompat_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	p := NewOpenAICompat("test", "", srv.URL, "test-model")
	if _, err := p.Invoke(context.Background(), "sys", "prompt"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
