package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultOllamaHost = "http://localhost:11434"

// Ollama implements the Reviewer interface against the native Ollama chat
// API. No API key is required.
type Ollama struct {
	model   string
	baseURL string
	client  *http.Client
}

// NewOllama creates a new Ollama provider. host falls back to OLLAMA_HOST,
// then to the local default.
func NewOllama(model, host string) *Ollama {
	if host == "" {
		host = os.Getenv("OLLAMA_HOST")
	}
	if host == "" {
		host = defaultOllamaHost
	}
	host = strings.TrimRight(host, "/")
	host = strings.TrimSuffix(host, "/api/chat")

	return &Ollama{
		model:   model,
		baseURL: host,
		client:  &http.Client{Timeout: 300 * time.Second},
	}
}

func (o *Ollama) Name() string { return "ollama" }

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Think    bool            `json:"think"`
	Options  ollamaOptions   `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
}

type ollamaChatResponse struct {
	Message    ollamaMessage `json:"message"`
	Done       bool          `json:"done"`
	DoneReason string        `json:"done_reason"`
}

func (o *Ollama) Review(ctx context.Context, req ReviewRequest) (ReviewResponse, error) {
	body := ollamaChatRequest{
		Model: o.model,
		Messages: []ollamaMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		Stream:  false,
		Think:   false,
		Options: ollamaOptions{Temperature: req.Temperature},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return ReviewResponse{}, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return ReviewResponse{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := o.client.Do(httpReq)
	if err != nil {
		return ReviewResponse{}, &InferenceError{Provider: o.Name(), Err: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return ReviewResponse{}, &InferenceError{Provider: o.Name(), Err: fmt.Errorf("reading response: %w", err)}
	}

	if httpResp.StatusCode != http.StatusOK {
		return ReviewResponse{}, &InferenceError{
			Provider: o.Name(),
			Err:      fmt.Errorf("API error (status %d): %s", httpResp.StatusCode, string(respBody)),
		}
	}

	var result ollamaChatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return ReviewResponse{}, &InferenceError{Provider: o.Name(), Err: fmt.Errorf("parsing response: %w", err)}
	}

	// An undone generation means the model was cut off; there is no usable
	// content, but this is not a transport failure.
	if !result.Done {
		return ReviewResponse{Content: "", Done: false}, nil
	}

	return ReviewResponse{Content: result.Message.Content, Done: true}, nil
}

// Model describes one model available on the Ollama server.
type Model struct {
	Name string `json:"name"`
}

type ollamaTagsResponse struct {
	Models []Model `json:"models"`
}

// ListModels returns the models available on the Ollama server.
func (o *Ollama) ListModels(ctx context.Context) ([]Model, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", o.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpResp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, &InferenceError{Provider: o.Name(), Err: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &InferenceError{Provider: o.Name(), Err: fmt.Errorf("reading response: %w", err)}
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, &InferenceError{
			Provider: o.Name(),
			Err:      fmt.Errorf("API error (status %d): %s", httpResp.StatusCode, string(respBody)),
		}
	}

	var result ollamaTagsResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &InferenceError{Provider: o.Name(), Err: fmt.Errorf("parsing response: %w", err)}
	}
	return result.Models, nil
}
