// Package server provides the HTTP API and upload page for the resume roaster.
package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-roaster/internal/roasting"
	"github.com/jonathan/resume-roaster/internal/upload"
)

// Client-facing messages. Internal detail never reaches the response body.
const (
	MsgInvalidBody   = "Invalid request body"
	MsgBodyTooLarge  = "Request body too large"
	MsgEmptyResponse = "Failed to get analysis from AI"
	MsgParseFailed   = "Failed to parse analysis results"
	MsgInternal      = "Failed to process request"
	MsgRateLimited   = "Rate limit exceeded. Please try again later."
)

// RequestError is a request the server rejected before any analysis ran.
type RequestError struct {
	Status  int
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// decodeError classifies a failure to read or decode a request body.
func decodeError(err error) *RequestError {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return &RequestError{Status: http.StatusRequestEntityTooLarge, Message: MsgBodyTooLarge, Cause: err}
	}
	return &RequestError{Status: http.StatusBadRequest, Message: MsgInvalidBody, Cause: err}
}

// HTTPStatus returns the status code and client-facing message for an error.
// It is the only place errors are translated for the wire.
func HTTPStatus(err error) (int, string) {
	var (
		reqErr         *RequestError
		inputErr       *roasting.InputError
		unsupportedErr *upload.UnsupportedFileError
		extractErr     *upload.ExtractionError
		emptyErr       *roasting.EmptyResponseError
		parseErr       *roasting.ParseError
		validationErr  *roasting.ValidationError
		apiErr         *roasting.APICallError
	)

	switch {
	case errors.As(err, &reqErr):
		return reqErr.Status, reqErr.Message
	case errors.As(err, &inputErr):
		return http.StatusBadRequest, inputErr.Message
	case errors.As(err, &unsupportedErr):
		return http.StatusBadRequest, upload.MsgUnsupportedFile
	case errors.As(err, &extractErr):
		return http.StatusUnprocessableEntity, upload.MsgExtractionFailed
	case errors.As(err, &emptyErr):
		return http.StatusInternalServerError, MsgEmptyResponse
	case errors.As(err, &parseErr), errors.As(err, &validationErr):
		return http.StatusInternalServerError, MsgParseFailed
	case errors.As(err, &apiErr):
		return upstreamStatus(apiErr.StatusCode), apiErr.PublicMessage()
	default:
		return http.StatusInternalServerError, MsgInternal
	}
}

// upstreamStatus passes provider error statuses through and maps anything
// else (unreachable provider, odd codes) to 500.
func upstreamStatus(code int) int {
	if code >= 400 && code <= 599 {
		return code
	}
	return http.StatusInternalServerError
}
