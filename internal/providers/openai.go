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

const defaultOpenAIHost = "http://localhost:11434"

// OpenAI implements the Reviewer interface for local servers exposing an
// OpenAI-compatible chat API (LM Studio, llama.cpp, Ollama's /v1 shim).
type OpenAI struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAI creates a new OpenAI-compatible provider. host falls back to
// OPENAI_BASE_URL, then to the local default. An API key is optional; some
// local servers require one.
func NewOpenAI(model, host string) *OpenAI {
	if host == "" {
		host = os.Getenv("OPENAI_BASE_URL")
	}
	if host == "" {
		host = defaultOpenAIHost
	}
	host = strings.TrimRight(host, "/")
	host = strings.TrimSuffix(host, "/v1/chat/completions")
	host = strings.TrimSuffix(host, "/v1")

	return &OpenAI{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		model:   model,
		baseURL: host + "/v1/chat/completions",
		client:  &http.Client{Timeout: 300 * time.Second},
	}
}

func (o *OpenAI) Name() string { return "openai" }

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiRequest struct {
	Model       string          `json:"model"`
	Messages    []openaiMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

type openaiChoice struct {
	Message      openaiMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type openaiResponse struct {
	Choices []openaiChoice `json:"choices"`
}

func (o *OpenAI) Review(ctx context.Context, req ReviewRequest) (ReviewResponse, error) {
	body := openaiRequest{
		Model: o.model,
		Messages: []openaiMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		Temperature: req.Temperature,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return ReviewResponse{}, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", o.baseURL, bytes.NewReader(payload))
	if err != nil {
		return ReviewResponse{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if o.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	}

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

	var result openaiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return ReviewResponse{}, &InferenceError{Provider: o.Name(), Err: fmt.Errorf("parsing response: %w", err)}
	}

	if len(result.Choices) == 0 {
		return ReviewResponse{}, &InferenceError{Provider: o.Name(), Err: fmt.Errorf("no choices in response")}
	}

	choice := result.Choices[0]
	// Anything other than a clean stop is an incomplete generation.
	if choice.FinishReason != "" && choice.FinishReason != "stop" {
		return ReviewResponse{Content: "", Done: false}, nil
	}

	return ReviewResponse{Content: choice.Message.Content, Done: true}, nil
}
