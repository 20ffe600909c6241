package algo

import (
	"errors"
)

// Handler is the entry point of an algorithm. Implementations override the
// methods for the payload shapes they accept and embed UnimplementedHandler
// for the rest.
//
//	type reverse struct{ algo.UnimplementedHandler }
//
//	func (reverse) ApplyText(s string) (algo.Payload, error) {
//		r := []rune(s)
//		slices.Reverse(r)
//		return algo.Text(string(r)), nil
//	}
type Handler interface {
	ApplyText(text string) (Payload, error)
	ApplyJSON(value any) (Payload, error)
	ApplyBytes(data []byte) (Payload, error)
}

// UnimplementedHandler rejects every payload shape with ErrUnsupportedInput.
type UnimplementedHandler struct{}

func (UnimplementedHandler) ApplyText(string) (Payload, error)  { return nil, ErrUnsupportedInput }
func (UnimplementedHandler) ApplyJSON(any) (Payload, error)     { return nil, ErrUnsupportedInput }
func (UnimplementedHandler) ApplyBytes([]byte) (Payload, error) { return nil, ErrUnsupportedInput }

// HandlerFuncs adapts plain functions to a Handler. A nil function rejects its
// payload shape with ErrUnsupportedInput.
type HandlerFuncs struct {
	Text  func(string) (Payload, error)
	JSON  func(any) (Payload, error)
	Bytes func([]byte) (Payload, error)
}

var _ Handler = HandlerFuncs{}

func (h HandlerFuncs) ApplyText(text string) (Payload, error) {
	if h.Text == nil {
		return nil, ErrUnsupportedInput
	}
	return h.Text(text)
}

func (h HandlerFuncs) ApplyJSON(value any) (Payload, error) {
	if h.JSON == nil {
		return nil, ErrUnsupportedInput
	}
	return h.JSON(value)
}

func (h HandlerFuncs) ApplyBytes(data []byte) (Payload, error) {
	if h.Bytes == nil {
		return nil, ErrUnsupportedInput
	}
	return h.Bytes(data)
}

// decodedHandler accepts JSON (and, through the Apply fallback, text) and
// decodes it into T before calling fn.
type decodedHandler[T any] struct {
	UnimplementedHandler
	fn func(T) (Payload, error)
}

// Decoded returns a Handler that decodes its input into T and calls fn. Input
// that cannot be decoded into T fails with an *api.DecodeError naming T, not
// with ErrUnsupportedInput, so no fallback is attempted. Binary input is
// unsupported.
func Decoded[T any](fn func(T) (Payload, error)) Handler {
	return decodedHandler[T]{fn: fn}
}

func (h decodedHandler[T]) ApplyJSON(value any) (Payload, error) {
	var input T
	if err := decodeValue(value, &input); err != nil {
		return nil, err
	}
	return h.fn(input)
}

// Apply dispatches input to the handler method matching its shape.
//
// When that method returns ErrUnsupportedInput, one fallback is attempted:
// text is retried as a JSON string, and JSON holding a string is retried as
// text. Binary input is never retried. Any other error is returned as is.
func Apply(h Handler, input Payload) (Payload, error) {
	switch v := input.(type) {
	case Text:
		out, err := h.ApplyText(string(v))
		if !errors.Is(err, ErrUnsupportedInput) {
			return out, err
		}
		value, _ := v.AsJSON()
		return h.ApplyJSON(value)

	case JSON:
		out, err := h.ApplyJSON(v.Value)
		if !errors.Is(err, ErrUnsupportedInput) {
			return out, err
		}
		text, ok := v.AsText()
		if !ok {
			return nil, ErrUnsupportedInput
		}
		return h.ApplyText(text)

	case Binary:
		return h.ApplyBytes([]byte(v))

	default:
		return nil, ErrUnsupportedInput
	}
}
