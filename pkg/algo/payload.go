package algo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/hashicorp-forge/algorithmia/pkg/api"
)

// Content types used on the wire for each payload shape.
const (
	ContentTypeText   = "text/plain"
	ContentTypeJSON   = "application/json"
	ContentTypeBinary = "application/octet-stream"
)

// Payload is the data sent to or returned from an algorithm. It is exactly one
// of Text, Binary or JSON; the set is closed.
//
// Constructing a Payload never converts between shapes. Only the As* methods
// do, following these rules:
//
//   - Text is always viewable as JSON (a JSON string).
//   - JSON is viewable as text only when its value is a string.
//   - Binary is never viewable as text or JSON.
type Payload interface {
	// ContentType returns the MIME type the payload is sent with.
	ContentType() string

	AsText() (string, bool)
	AsJSON() (any, bool)
	AsBytes() ([]byte, bool)

	isPayload()
}

// Text is a payload sent as text/plain.
type Text string

// Binary is a payload sent as application/octet-stream.
type Binary []byte

// JSON is a payload sent as application/json. Value holds a decoded JSON
// tree: nil, bool, json.Number, string, map[string]any or []any. Numbers
// decoded by this package are json.Number so integers survive being sent
// on to another algorithm unchanged.
type JSON struct {
	Value any
}

var (
	_ Payload = Text("")
	_ Payload = Binary(nil)
	_ Payload = JSON{}
)

func (Text) ContentType() string         { return ContentTypeText }
func (t Text) AsText() (string, bool)    { return string(t), true }
func (t Text) AsJSON() (any, bool)       { return string(t), true }
func (Text) AsBytes() ([]byte, bool)     { return nil, false }
func (Text) isPayload()                  {}
func (Binary) ContentType() string       { return ContentTypeBinary }
func (Binary) AsText() (string, bool)    { return "", false }
func (Binary) AsJSON() (any, bool)       { return nil, false }
func (b Binary) AsBytes() ([]byte, bool) { return []byte(b), true }
func (Binary) isPayload()                {}
func (JSON) ContentType() string         { return ContentTypeJSON }
func (j JSON) AsJSON() (any, bool)       { return j.Value, true }
func (JSON) AsBytes() ([]byte, bool)     { return nil, false }
func (JSON) isPayload()                  {}

func (j JSON) AsText() (string, bool) {
	s, ok := j.Value.(string)
	return s, ok
}

// NewJSON encodes any JSON-serializable Go value into a JSON payload.
func NewJSON(v any) (JSON, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return JSON{}, fmt.Errorf("failed to encode %T as json: %w", v, err)
	}

	tree, err := decodeTree(raw)
	if err != nil {
		return JSON{}, &api.DecodeError{Context: "json input", Err: err}
	}
	return JSON{Value: tree}, nil
}

// decodeTree decodes a single JSON document, keeping numbers as json.Number.
func decodeTree(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after json value at offset %d", dec.InputOffset())
	}
	return tree, nil
}

// DecodePayload decodes the JSON view of p into out, which must be a non-nil
// pointer. Binary payloads have no JSON view and fail with a
// MismatchedContentTypeError.
func DecodePayload(p Payload, out any) error {
	value, ok := p.AsJSON()
	if !ok {
		return &MismatchedContentTypeError{Expected: "json"}
	}
	return decodeValue(value, out)
}

// decodeValue decodes a JSON tree into a typed Go value. Struct fields are
// matched by their json tags.
func decodeValue(value any, out any) error {
	target := targetName(out)

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     out,
		DecodeHook: mapstructure.DecodeHookFuncType(stringToTimeHook),
	})
	if err != nil {
		return &api.DecodeError{Context: target, Err: err}
	}

	if err := dec.Decode(value); err != nil {
		return &api.DecodeError{Context: target, Err: err}
	}
	return nil
}

var timeType = reflect.TypeOf(time.Time{})

// stringToTimeHook parses RFC 3339 strings into time.Time fields. It only
// matches real strings; json.Number has a string kind and passes through.
func stringToTimeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	s, ok := data.(string)
	if !ok || to != timeType {
		return data, nil
	}
	return time.Parse(time.RFC3339, s)
}

func targetName(out any) string {
	t := reflect.TypeOf(out)
	if t == nil {
		return "<nil>"
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.String()
}
