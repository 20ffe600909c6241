package algo

import (
	"bytes"
	"context"
	"io"
	"maps"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hashicorp-forge/algorithmia/pkg/api"
)

const (
	algoScheme   = "algo://"
	algoBasePath = "v1/algo"

	opCall = "calling algorithm"
)

// Version selects an algorithm build: Latest, a semantic version such as
// "1.2.3" or "0.1", or a git hash.
type Version string

// Latest runs the most recently published version.
const Latest Version = ""

// Ref composes an algorithm reference from its name ("user/Algo") and a
// version. Latest leaves the reference unversioned.
func Ref(name string, version Version) string {
	if version == Latest {
		return name
	}
	return name + "/" + string(version)
}

// Options are query parameters sent with every call, such as "timeout".
type Options map[string]string

// Algorithm is a handle on a remote algorithm. It is immutable; the With*
// methods return modified copies.
type Algorithm struct {
	client  *api.Client
	path    string
	options Options
}

// NewAlgorithm returns a handle for the referenced algorithm. The reference
// may carry an "algo://" prefix or a leading slash, for example
// "algo://demo/Hello/0.1.1", "/demo/Hello" or "demo/Hello".
func NewAlgorithm(c *api.Client, ref string) *Algorithm {
	path := ref
	switch {
	case strings.HasPrefix(path, algoScheme):
		path = path[len(algoScheme):]
	case strings.HasPrefix(path, "/"):
		path = path[1:]
	}
	return &Algorithm{
		client: c,
		path:   path,
	}
}

// Path returns the algorithm path without a scheme, e.g. "demo/Hello/0.1.1".
func (a *Algorithm) Path() string {
	return a.path
}

// URI returns the algorithm URI, e.g. "algo://demo/Hello/0.1.1".
func (a *Algorithm) URI() string {
	return algoScheme + a.path
}

// URL returns the API endpoint of the algorithm.
func (a *Algorithm) URL() *url.URL {
	return a.client.URL(algoBasePath+"/"+a.path, a.query())
}

// Options returns a copy of the call options.
func (a *Algorithm) Options() Options {
	return maps.Clone(a.options)
}

// WithOptions returns a copy of a that sends exactly the given options.
func (a *Algorithm) WithOptions(opts Options) *Algorithm {
	b := *a
	b.options = maps.Clone(opts)
	return &b
}

// WithTimeout returns a copy of a with the call timeout set in seconds.
func (a *Algorithm) WithTimeout(seconds uint32) *Algorithm {
	return a.withOption("timeout", strconv.FormatUint(uint64(seconds), 10))
}

// WithStdout returns a copy of a that asks for the algorithm's stdout in the
// response metadata. Only the algorithm owner receives it.
func (a *Algorithm) WithStdout() *Algorithm {
	return a.withOption("stdout", "true")
}

func (a *Algorithm) withOption(key, value string) *Algorithm {
	b := *a
	b.options = maps.Clone(a.options)
	if b.options == nil {
		b.options = Options{}
	}
	b.options[key] = value
	return &b
}

func (a *Algorithm) query() url.Values {
	if len(a.options) == 0 {
		return nil
	}
	q := make(url.Values, len(a.options))
	for k, v := range a.options {
		q.Set(k, v)
	}
	return q
}

// Pipe calls the algorithm with input and decodes the response.
//
// The request content type follows the payload shape. The Result of a
// previous Response can be passed as is to chain algorithms.
func (a *Algorithm) Pipe(ctx context.Context, input Payload) (*Response, error) {
	body, contentType, err := Encode(input)
	if err != nil {
		return nil, err
	}
	return a.call(ctx, body, contentType)
}

// PipeJSON calls the algorithm with already encoded JSON text.
func (a *Algorithm) PipeJSON(ctx context.Context, raw string) (*Response, error) {
	return a.call(ctx, []byte(raw), ContentTypeJSON)
}

// PipeAs calls the algorithm with an arbitrary body and content type and
// returns the raw HTTP response. The caller must close the response body.
func (a *Algorithm) PipeAs(ctx context.Context, body io.Reader, contentType string) (*http.Response, error) {
	return a.client.Do(ctx, a.request(body, contentType))
}

func (a *Algorithm) call(ctx context.Context, body []byte, contentType string) (*Response, error) {
	resp, err := a.client.Send(ctx, a.request(bytes.NewReader(body), contentType))
	if err != nil {
		return nil, err
	}

	if !api.IsSuccess(resp.StatusCode) {
		return nil, api.ErrorFromResponse(resp.StatusCode, resp.Body)
	}
	return DecodeResponse(resp.Body)
}

func (a *Algorithm) request(body io.Reader, contentType string) *api.Request {
	return &api.Request{
		Method:      http.MethodPost,
		Path:        algoBasePath + "/" + a.path,
		Query:       a.query(),
		Body:        body,
		ContentType: contentType,
		Op:          opCall,
		Target:      a.URI(),
	}
}
