package providers

import (
	"errors"
	"fmt"
)

// InferenceError wraps any transport or API failure from a provider call.
type InferenceError struct {
	Provider string
	Err      error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("%s inference failed: %v", e.Provider, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// IsInferenceError checks if an error is an InferenceError.
func IsInferenceError(err error) bool {
	var ie *InferenceError
	return errors.As(err, &ie)
}
