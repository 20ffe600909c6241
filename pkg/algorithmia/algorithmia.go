// Package algorithmia is the entry point of the Algorithmia client library.
//
//	client, err := algorithmia.New(api.ConfigFromEnv())
//	if err != nil {
//		return err
//	}
//	resp, err := client.Algo("demo/Hello").Pipe(ctx, algo.Text("world"))
package algorithmia

import (
	"github.com/hashicorp-forge/algorithmia/pkg/algo"
	"github.com/hashicorp-forge/algorithmia/pkg/api"
	"github.com/hashicorp-forge/algorithmia/pkg/data"
)

// Client creates handles for algorithms and data. All handles share the
// underlying API client.
type Client struct {
	api *api.Client
}

// New returns a client for cfg. A nil cfg uses the public API anonymously.
func New(cfg *api.Config, opts ...api.Option) (*Client, error) {
	c, err := api.NewClient(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{api: c}, nil
}

// NewWithAPIKey returns a client for the public API using apiKey.
func NewWithAPIKey(apiKey string, opts ...api.Option) (*Client, error) {
	cfg := api.DefaultConfig()
	cfg.APIKey = apiKey
	return New(cfg, opts...)
}

// API returns the underlying API client.
func (c *Client) API() *api.Client {
	return c.api
}

// Algo returns a handle for the algorithm ref, e.g. "demo/Hello/0.1.1".
func (c *Client) Algo(ref string) *algo.Algorithm {
	return algo.NewAlgorithm(c.api, ref)
}

// Dir returns a handle for the directory at the data URI.
func (c *Client) Dir(uri string) *data.Dir {
	return data.NewDir(c.api, uri)
}

// File returns a handle for the file at the data URI.
func (c *Client) File(uri string) *data.File {
	return data.NewFile(c.api, uri)
}
