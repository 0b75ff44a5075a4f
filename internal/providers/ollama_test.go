package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func ollamaTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Ollama) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, NewOllama("qwen3:4b", srv.URL)
}

func TestOllamaReview(t *testing.T) {
	var captured ollamaChatRequest
	_, provider := ollamaTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Message: ollamaMessage{Role: "assistant", Content: "[]"},
			Done:    true,
		})
	})

	resp, err := provider.Review(context.Background(), ReviewRequest{
		SystemPrompt: "system",
		UserPrompt:   "user",
		Temperature:  0.2,
	})
	if err != nil {
		t.Fatalf("Review() error = %v", err)
	}
	if resp.Content != "[]" || !resp.Done {
		t.Errorf("Review() = %+v, want done with content []", resp)
	}

	if captured.Model != "qwen3:4b" {
		t.Errorf("model = %s, want qwen3:4b", captured.Model)
	}
	if captured.Stream || captured.Think {
		t.Errorf("stream/think should be disabled, got %+v", captured)
	}
	if captured.Options.Temperature != 0.2 {
		t.Errorf("temperature = %v, want 0.2", captured.Options.Temperature)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" || captured.Messages[1].Role != "user" {
		t.Errorf("messages = %+v, want system then user", captured.Messages)
	}
}

func TestOllamaReviewIncomplete(t *testing.T) {
	_, provider := ollamaTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Message:    ollamaMessage{Content: "partial out"},
			Done:       false,
			DoneReason: "length",
		})
	})

	resp, err := provider.Review(context.Background(), ReviewRequest{})
	if err != nil {
		t.Fatalf("Review() error = %v, incomplete generation is not an error", err)
	}
	if resp.Done {
		t.Error("Done = true, want false")
	}
	if resp.Content != "" {
		t.Errorf("Content = %q, want empty for incomplete generation", resp.Content)
	}
}

func TestOllamaReviewServerError(t *testing.T) {
	_, provider := ollamaTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusInternalServerError)
	})

	_, err := provider.Review(context.Background(), ReviewRequest{})
	if err == nil {
		t.Fatal("Review() error = nil, want InferenceError")
	}
	if !IsInferenceError(err) {
		t.Errorf("IsInferenceError(%v) = false", err)
	}
}

func TestOllamaReviewConnectionRefused(t *testing.T) {
	srv, provider := ollamaTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := provider.Review(context.Background(), ReviewRequest{})
	if !IsInferenceError(err) {
		t.Errorf("IsInferenceError(%v) = false, want true for transport failure", err)
	}
}

func TestOllamaReviewGarbageBody(t *testing.T) {
	_, provider := ollamaTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := provider.Review(context.Background(), ReviewRequest{})
	if !IsInferenceError(err) {
		t.Errorf("IsInferenceError(%v) = false, want true for undecodable body", err)
	}
}

func TestOllamaHostNormalization(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"http://myhost:11434", "http://myhost:11434"},
		{"http://myhost:11434/", "http://myhost:11434"},
		{"http://myhost:11434/api/chat", "http://myhost:11434"},
	}
	for _, tt := range tests {
		if got := NewOllama("m", tt.host).baseURL; got != tt.want {
			t.Errorf("NewOllama(%q).baseURL = %q, want %q", tt.host, got, tt.want)
		}
	}
}

func TestOllamaListModels(t *testing.T) {
	_, provider := ollamaTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(ollamaTagsResponse{
			Models: []Model{{Name: "qwen3:4b"}, {Name: "llama3.2:3b"}},
		})
	})

	models, err := provider.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels() error = %v", err)
	}
	if len(models) != 2 || models[0].Name != "qwen3:4b" {
		t.Errorf("ListModels() = %+v", models)
	}
}
