package roasting

import "fmt"

// InputError is returned when there is nothing to analyze.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Message)
}

// APICallError represents a failure talking to the model provider
type APICallError struct {
	Service    string // e.g. "OpenAI Error"
	StatusCode int    // upstream HTTP status, 0 when unknown
	Message    string
	Cause      error
}

func (e *APICallError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API call failed: %s (status %d)", e.PublicMessage(), e.StatusCode)
	}
	return fmt.Sprintf("API call failed: %s", e.PublicMessage())
}

// PublicMessage is the text surfaced to API clients: "<service>: <message>".
func (e *APICallError) PublicMessage() string {
	return fmt.Sprintf("%s: %s", e.Service, e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// EmptyResponseError is returned when the model replied with no content
type EmptyResponseError struct {
	Cause error
}

func (e *EmptyResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("empty model response: %v", e.Cause)
	}
	return "empty model response"
}

func (e *EmptyResponseError) Unwrap() error {
	return e.Cause
}

// ParseError represents a reply that is not JSON of the expected shape.
// Raw keeps the reply for diagnostics.
type ParseError struct {
	Message string
	Raw     string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ValidationError represents a parseable reply with missing or out-of-range metrics
type ValidationError struct {
	Message string
	Field   string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
