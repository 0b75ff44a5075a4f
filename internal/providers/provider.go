package providers

import (
	"context"
	"fmt"
)

// ReviewRequest contains the data sent to an LLM for review.
type ReviewRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
}

// ReviewResponse contains the raw response from an LLM. Done is false when
// the backend reports an incomplete generation; Content is empty in that
// case and callers must treat it as "no violations producible", never as a
// parse target.
type ReviewResponse struct {
	Content string
	Done    bool
}

// Reviewer is the provider abstraction interface. One request per call, no
// retries, no streaming.
type Reviewer interface {
	Review(ctx context.Context, req ReviewRequest) (ReviewResponse, error)
	Name() string
}

// New creates a provider by name. host overrides the endpoint address;
// empty means the provider default.
func New(provider, model, host string) (Reviewer, error) {
	switch provider {
	case "ollama", "":
		return NewOllama(model, host), nil
	case "openai", "lmstudio":
		return NewOpenAI(model, host), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
