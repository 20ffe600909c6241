package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// RemoteError is an application-level error reported by the API in an
// `{"error": ..., "stacktrace": ...}` envelope.
type RemoteError struct {
	// StatusCode is the HTTP status the error arrived with, or 0 when the
	// envelope was found in a successful response body.
	StatusCode int
	Message    string
	Stacktrace string
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	}
	return "api error: " + e.Message
}

// NotFoundError is returned when the remote resource does not exist.
type NotFoundError struct {
	URL *url.URL
}

func (e *NotFoundError) Error() string {
	if e.URL == nil {
		return "not found"
	}
	return fmt.Sprintf("not found: %s", e.URL)
}

// StatusError is a non-success response whose body is not an error envelope.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api returned status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Body)
}

// RequestError is a transport or body read failure annotated with the
// operation and the resource it targeted.
type RequestError struct {
	Op     string
	Target string
	Err    error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s '%s': %v", e.Op, e.Target, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// DecodeError is returned when a payload could not be decoded. Context names
// what was being decoded.
type DecodeError struct {
	Context string
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return "failed to decode " + e.Context
	}
	return fmt.Sprintf("failed to decode %s: %v", e.Context, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type errorEnvelope struct {
	Error      *string `json:"error"`
	Stacktrace *string `json:"stacktrace"`
}

// DecodeErrorEnvelope reports whether raw is an API error envelope and, if so,
// returns it as a RemoteError with no status code.
func DecodeErrorEnvelope(raw []byte) (*RemoteError, bool) {
	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Error == nil {
		return nil, false
	}

	remote := &RemoteError{Message: *env.Error}
	if env.Stacktrace != nil {
		remote.Stacktrace = *env.Stacktrace
	}
	return remote, true
}

// ErrorFromResponse builds the error for a non-success response: the error
// envelope when the body holds one, otherwise a StatusError.
func ErrorFromResponse(statusCode int, body []byte) error {
	if remote, ok := DecodeErrorEnvelope(body); ok {
		remote.StatusCode = statusCode
		return remote
	}
	return &StatusError{StatusCode: statusCode, Body: string(body)}
}

// IsSuccess reports whether the status code is 2xx.
func IsSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
