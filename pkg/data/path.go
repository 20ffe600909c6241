package data

import (
	"net/url"
	"strings"

	"github.com/hashicorp-forge/algorithmia/pkg/api"
)

const (
	defaultScheme     = "data"
	schemeSeparator   = "://"
	connectorBasePath = "v1/connector"
)

// parseDataURI converts a data URI into its connector path:
//
//	data://.my/foo    -> data/.my/foo
//	dropbox://foo     -> dropbox/foo
//	/.my/foo, .my/foo -> data/.my/foo
//	data://           -> data
func parseDataURI(uri string) string {
	if scheme, rest, ok := strings.Cut(uri, schemeSeparator); ok {
		if rest == "" {
			return scheme
		}
		return scheme + "/" + rest
	}

	rest := strings.TrimPrefix(uri, "/")
	if rest == "" {
		return defaultScheme
	}
	return defaultScheme + "/" + rest
}

// pathURI renders a connector path back as a data URI.
func pathURI(path string) string {
	scheme, rest, ok := strings.Cut(path, "/")
	if !ok {
		return path + schemeSeparator
	}
	return scheme + schemeSeparator + rest
}

// splitPath returns the parent and base name of a connector path. A trailing
// separator is ignored. ok is false for a root such as "data".
func splitPath(path string) (parent, base string, ok bool) {
	trimmed := strings.TrimSuffix(path, "/")
	i := strings.LastIndex(trimmed, "/")
	if i < 0 {
		return "", trimmed, false
	}
	return trimmed[:i], trimmed[i+1:], true
}

// dataPath is the location shared by directories and files.
type dataPath struct {
	client *api.Client
	path   string
}

func newDataPath(c *api.Client, uri string) dataPath {
	return dataPath{client: c, path: parseDataURI(uri)}
}

// Path returns the connector path, e.g. "data/.my/foo".
func (p dataPath) Path() string {
	return p.path
}

// URI returns the data URI, e.g. "data://.my/foo".
func (p dataPath) URI() string {
	return pathURI(p.path)
}

// URL returns the API endpoint of the resource.
func (p dataPath) URL() *url.URL {
	return p.client.URL(p.apiPath(), nil)
}

// Basename returns the last path segment, e.g. "foo" for "data://.my/foo".
// A root such as "data://" has no segment and returns "".
func (p dataPath) Basename() string {
	_, base, ok := splitPath(p.path)
	if !ok {
		return ""
	}
	return base
}

func (p dataPath) apiPath() string {
	return connectorBasePath + "/" + p.path
}

func (p dataPath) parent() (*Dir, bool) {
	parent, _, ok := splitPath(p.path)
	if !ok {
		return nil, false
	}
	return &Dir{dataPath{client: p.client, path: parent}}, true
}

// child composes a data URI below p, adding a separator only when p does not
// already end with one.
func (p dataPath) child(name string) string {
	uri := p.URI()
	if strings.HasSuffix(uri, "/") {
		return uri + name
	}
	return uri + "/" + name
}
