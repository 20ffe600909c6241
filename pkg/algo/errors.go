package algo

import (
	"errors"
	"fmt"
)

// ErrUnsupportedInput is returned by a Handler method that does not accept the
// payload shape it was given. It is the only error that triggers the dispatch
// fallback in Apply.
var ErrUnsupportedInput = errors.New("unsupported input type")

// MismatchedContentTypeError is returned when a payload does not have the
// shape its declared content type requires.
type MismatchedContentTypeError struct {
	Expected string
}

func (e *MismatchedContentTypeError) Error() string {
	return fmt.Sprintf("mismatched content type: expected %s", e.Expected)
}

// UnexpectedContentTypeError is returned when a response cannot be viewed in
// the requested shape.
type UnexpectedContentTypeError struct {
	Expected string
	Actual   string
}

func (e *UnexpectedContentTypeError) Error() string {
	return fmt.Sprintf("expected content type %s, received %s", e.Expected, e.Actual)
}

// InvalidContentTypeError is returned when the API declares a content type
// outside of void, json, text and binary.
type InvalidContentTypeError struct {
	Actual string
}

func (e *InvalidContentTypeError) Error() string {
	return fmt.Sprintf("invalid content type '%s'", e.Actual)
}

// MissingFieldError is returned when a response envelope lacks a required
// field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("response missing field '%s'", e.Field)
}
