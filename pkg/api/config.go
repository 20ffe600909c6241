package api

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	// DefaultBaseURL is the public Algorithmia API endpoint.
	DefaultBaseURL = "https://api.algorithmia.com"

	// EnvAPIKey and EnvBaseURL override the configuration when set.
	EnvAPIKey  = "ALGORITHMIA_API_KEY"
	EnvBaseURL = "ALGORITHMIA_API"
)

// Config contains configuration for the Algorithmia API client.
//
// Example configuration (HCL):
//
//	base_url   = "https://api.algorithmia.com"
//	api_key    = "simXXXXXXXXXXXXXXXXXXXXXXXX"
//	tls_verify = true
type Config struct {
	// BaseURL is the base URL of the Algorithmia API.
	// Default: https://api.algorithmia.com
	BaseURL string `hcl:"base_url,optional" json:"baseUrl"`

	// APIKey authenticates requests. Anonymous requests are sent when empty.
	APIKey string `hcl:"api_key,optional" json:"-"` // Don't marshal api key to JSON

	// TLSVerify controls TLS certificate verification
	// Set to false only for development/testing with self-signed certs
	TLSVerify *bool `hcl:"tls_verify,optional" json:"tlsVerify,omitempty"`

	// Timeout for API requests. Zero disables the client-side timeout, which is
	// what long running algorithm calls usually want.
	Timeout time.Duration `json:"timeout,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `hcl:"user_agent,optional" json:"userAgent,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	tlsVerify := true
	return &Config{
		BaseURL:   DefaultBaseURL,
		TLSVerify: &tlsVerify,
	}
}

// ConfigFromEnv returns the default configuration with the API key and base
// URL taken from the environment.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	if key := os.Getenv(EnvAPIKey); key != "" {
		cfg.APIKey = key
	}
	if base := os.Getenv(EnvBaseURL); base != "" {
		cfg.BaseURL = base
	}
	return cfg
}

// SetDefaults fills in optional fields that were left empty.
func (c *Config) SetDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.TLSVerify == nil {
		tlsVerify := true
		c.TLSVerify = &tlsVerify
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, validation.By(httpURL)),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

func httpURL(value interface{}) error {
	s, _ := value.(string)
	parsedURL, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return errors.New("must use http or https scheme")
	}
	if parsedURL.Host == "" {
		return errors.New("must include a host")
	}
	return nil
}

// NewHTTPClient creates a configured HTTP client for this configuration
func (c *Config) NewHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	// Configure TLS verification
	if c.TLSVerify != nil && !*c.TLSVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return &http.Client{
		Timeout:   c.Timeout,
		Transport: transport,
	}
}
