package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hashicorp-forge/algorithmia/internal/version"
)

// Client issues authenticated requests against the Algorithmia API.
//
// A Client is safe for concurrent use; handles built on top of it share it
// without copying.
type Client struct {
	config    Config
	baseURL   *url.URL
	client    *http.Client
	logger    hclog.Logger
	metrics   *metrics
	userAgent string
}

type options struct {
	logger     hclog.Logger
	httpClient *http.Client
	registerer prometheus.Registerer
}

// Option customizes a Client.
type Option func(*options)

// WithLogger sets the logger used for request logging.
func WithLogger(logger hclog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithHTTPClient replaces the HTTP client built from the Config.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithRegisterer enables request metrics on the given registerer.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// NewClient creates a new API client. The configuration is copied; later
// changes to cfg do not affect the client.
func NewClient(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	conf := *cfg
	conf.SetDefaults()

	// Validate configuration
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid API client config: %w", err)
	}

	base, err := url.Parse(conf.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base_url: %w", err)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = hclog.NewNullLogger()
	}
	if o.httpClient == nil {
		o.httpClient = conf.NewHTTPClient()
	}

	c := &Client{
		config:    conf,
		baseURL:   base,
		client:    o.httpClient,
		logger:    o.logger.Named("algorithmia-client"),
		userAgent: conf.UserAgent,
	}
	if c.userAgent == "" {
		c.userAgent = fmt.Sprintf("algorithmia-go/%s (%s)", version.Version, runtime.Version())
	}

	if o.registerer != nil {
		m, err := newMetrics(o.registerer)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		c.metrics = m
	}

	return c, nil
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// URL resolves a path relative to the API base URL and attaches the query
// parameters, if any.
func (c *Client) URL(path string, query url.Values) *url.URL {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return &u
}

// Request describes one API call.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Header      http.Header
	Body        io.Reader
	ContentType string

	// Op and Target describe the call in errors, for example
	// "listing directory" and "data://.my/foo".
	Op     string
	Target string
}

// Response is a fully buffered API response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Do executes the request and returns the unread response. The caller must
// close the response body.
func (c *Client) Do(ctx context.Context, r *Request) (*http.Response, error) {
	endpoint := c.URL(r.Path, r.Query)

	req, err := http.NewRequestWithContext(ctx, r.Method, endpoint.String(), r.Body)
	if err != nil {
		return nil, &RequestError{Op: r.Op, Target: r.Target, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Simple "+c.config.APIKey)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if r.ContentType != "" {
		req.Header.Set("Content-Type", r.ContentType)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	resp, err := c.client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.observe(r.Method, 0, elapsed)
		c.logger.Debug("request failed",
			"method", r.Method,
			"url", endpoint.Redacted(),
			"request_id", requestID,
			"error", err,
		)
		return nil, &RequestError{Op: r.Op, Target: r.Target, Err: err}
	}

	c.metrics.observe(r.Method, resp.StatusCode, elapsed)
	c.logger.Debug("request completed",
		"method", r.Method,
		"url", endpoint.Redacted(),
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration", elapsed,
	)

	return resp, nil
}

// Send executes the request and buffers the whole response body.
func (c *Client) Send(ctx context.Context, r *Request) (*Response, error) {
	resp, err := c.Do(ctx, r)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Op: r.Op, Target: r.Target, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
