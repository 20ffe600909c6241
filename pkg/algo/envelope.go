package algo

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp-forge/algorithmia/pkg/api"
)

// Content types declared in response metadata.
const (
	ResultVoid   = "void"
	ResultJSON   = "json"
	ResultText   = "text"
	ResultBinary = "binary"
)

// Metadata is returned with every successful algorithm call.
type Metadata struct {
	// Duration is the algorithm run time in seconds.
	Duration float64 `json:"duration"`
	// Stdout is only returned to the algorithm owner when requested with
	// WithStdout.
	Stdout      string   `json:"stdout,omitempty"`
	Alerts      []string `json:"alerts,omitempty"`
	ContentType string   `json:"content_type"`
}

// Response is a successful algorithm response.
type Response struct {
	Metadata Metadata
	Result   Payload
}

// Encode serializes a payload for the request body and returns it with its
// Content-Type.
func Encode(p Payload) ([]byte, string, error) {
	switch v := p.(type) {
	case Text:
		return []byte(v), ContentTypeText, nil
	case Binary:
		return []byte(v), ContentTypeBinary, nil
	case JSON:
		raw, err := json.Marshal(v.Value)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode json input: %w", err)
		}
		return raw, ContentTypeJSON, nil
	default:
		return nil, "", fmt.Errorf("unknown payload type %T", p)
	}
}

type rawMetadata struct {
	Duration    *float64 `json:"duration"`
	Stdout      *string  `json:"stdout"`
	Alerts      []string `json:"alerts"`
	ContentType *string  `json:"content_type"`
}

// DecodeResponse decodes an algorithm response body.
//
// An error envelope is checked first and wins even when the body would also
// satisfy the success shape; it is returned as *api.RemoteError.
func DecodeResponse(raw []byte) (*Response, error) {
	if remote, ok := api.DecodeErrorEnvelope(raw); ok {
		return nil, remote
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, &api.DecodeError{Context: "malformed json", Err: err}
	}

	rawMeta, ok := fields["metadata"]
	if !ok {
		return nil, &MissingFieldError{Field: "metadata"}
	}
	metadata, err := decodeMetadata(rawMeta)
	if err != nil {
		return nil, err
	}

	rawResult, hasResult := fields["result"]

	var result Payload
	switch metadata.ContentType {
	case ResultVoid:
		result = JSON{}
	case ResultJSON:
		if !hasResult {
			return nil, &MissingFieldError{Field: "result"}
		}
		value, err := decodeTree(rawResult)
		if err != nil {
			return nil, &api.DecodeError{Context: "json result", Err: err}
		}
		result = JSON{Value: value}
	case ResultText:
		if !hasResult {
			return nil, &MissingFieldError{Field: "result"}
		}
		text, ok := jsonString(rawResult)
		if !ok {
			return nil, &MismatchedContentTypeError{Expected: ResultText}
		}
		result = Text(text)
	case ResultBinary:
		if !hasResult {
			return nil, &MissingFieldError{Field: "result"}
		}
		encoded, ok := jsonString(rawResult)
		if !ok {
			return nil, &MismatchedContentTypeError{Expected: ResultBinary}
		}
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, &api.DecodeError{Context: "binary result", Err: err}
		}
		result = Binary(decoded)
	default:
		return nil, &InvalidContentTypeError{Actual: metadata.ContentType}
	}

	return &Response{
		Metadata: metadata,
		Result:   result,
	}, nil
}

// jsonString returns the value of raw when it is a JSON string. A null is not
// a string.
func jsonString(raw json.RawMessage) (string, bool) {
	value, err := decodeTree(raw)
	if err != nil {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

func decodeMetadata(raw json.RawMessage) (Metadata, error) {
	var meta rawMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return Metadata{}, &api.DecodeError{Context: "algorithm metadata", Err: err}
	}
	if meta.ContentType == nil {
		return Metadata{}, &MissingFieldError{Field: "content_type"}
	}
	if meta.Duration == nil {
		return Metadata{}, &MissingFieldError{Field: "duration"}
	}

	metadata := Metadata{
		Duration:    *meta.Duration,
		Alerts:      meta.Alerts,
		ContentType: *meta.ContentType,
	}
	if meta.Stdout != nil {
		metadata.Stdout = *meta.Stdout
	}
	return metadata, nil
}

// AsText returns the result as text when it is text or a JSON string.
func (r *Response) AsText() (string, bool) {
	return r.Result.AsText()
}

// AsJSON returns the result as a JSON tree when it is JSON or text.
func (r *Response) AsJSON() (any, bool) {
	return r.Result.AsJSON()
}

// AsBytes returns the result when it is binary.
func (r *Response) AsBytes() ([]byte, bool) {
	return r.Result.AsBytes()
}

// Decode decodes the JSON view of the result into out.
func (r *Response) Decode(out any) error {
	value, ok := r.Result.AsJSON()
	if !ok {
		return &UnexpectedContentTypeError{Expected: ResultJSON, Actual: r.Metadata.ContentType}
	}
	return decodeValue(value, out)
}

// String renders the result: text as is, JSON encoded and binary as lossy
// UTF-8.
func (r *Response) String() string {
	switch v := r.Result.(type) {
	case Text:
		return string(v)
	case Binary:
		return strings.ToValidUTF8(string(v), "\uFFFD")
	case JSON:
		raw, err := json.Marshal(v.Value)
		if err != nil {
			return fmt.Sprintf("%v", v.Value)
		}
		return string(raw)
	default:
		return ""
	}
}
