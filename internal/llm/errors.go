package llm

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned when the provider answered but produced no text.
var ErrEmptyResponse = errors.New("empty response from LLM")

// ServiceError is an upstream failure reported by the provider, either an
// error status from its API or a failure to reach it at all.
type ServiceError struct {
	Provider   Provider
	StatusCode int // 0 when the provider was unreachable or did not report a status
	Message    string
	Cause      error
}

func (e *ServiceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Provider, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}
