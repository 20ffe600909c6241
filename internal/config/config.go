package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/hashicorp-forge/algorithmia/pkg/api"
)

const (
	// DefaultProfile is used when no profile is requested.
	DefaultProfile = "default"

	// EnvConfigFile overrides the default config file location.
	EnvConfigFile = "ALGORITHMIA_CONFIG"
)

// Config is the CLI configuration file.
//
// Example:
//
//	profile "default" {
//	  api_key    = "simXXXXXXXXXXXXXXXXXXXXXXXX"
//	  api_server = "https://api.algorithmia.com"
//	  timeout    = "5m"
//	}
type Config struct {
	Profiles []*Profile `hcl:"profile,block" json:"profiles"`
}

// Profile holds the connection settings for one account.
type Profile struct {
	Name      string `hcl:"name,label" json:"name"`
	APIKey    string `hcl:"api_key,optional" json:"-"`
	APIServer string `hcl:"api_server,optional" json:"api_server"`
	// Timeout is a Go duration such as "30s". Empty means no timeout.
	Timeout   string `hcl:"timeout,optional" json:"timeout"`
	TLSVerify *bool  `hcl:"tls_verify,optional" json:"tls_verify"`
}

// DefaultPath returns the config file location: $ALGORITHMIA_CONFIG, or
// ~/.algorithmia/config.hcl.
func DefaultPath() string {
	if path := os.Getenv(EnvConfigFile); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".algorithmia", "config.hcl")
	}
	return filepath.Join(home, ".algorithmia", "config.hcl")
}

// LoadFile parses and validates the config file at path.
func LoadFile(path string) (*Config, error) {
	var cfg Config
	if err := hclsimple.DecodeFile(path, nil, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration file %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks every profile and rejects duplicate names.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Profiles))
	for _, p := range c.Profiles {
		if seen[p.Name] {
			return fmt.Errorf("duplicate profile %q", p.Name)
		}
		seen[p.Name] = true
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Profiles),
	)
}

// Validate checks the profile fields.
func (p *Profile) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.APIServer, is.URL),
		validation.Field(&p.Timeout, validation.By(duration)),
	)
}

func duration(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return errors.New("must be a duration such as 30s or 5m")
	}
	if d < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

// Profile returns the named profile, or nil when it does not exist.
func (c *Config) Profile(name string) *Profile {
	for _, p := range c.Profiles {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Apply copies the profile settings that are set into cfg.
func (p *Profile) Apply(cfg *api.Config) {
	if p.APIKey != "" {
		cfg.APIKey = p.APIKey
	}
	if p.APIServer != "" {
		cfg.BaseURL = p.APIServer
	}
	if p.Timeout != "" {
		// Validated on load.
		cfg.Timeout, _ = time.ParseDuration(p.Timeout)
	}
	if p.TLSVerify != nil {
		verify := *p.TLSVerify
		cfg.TLSVerify = &verify
	}
}

// Load builds the API configuration for profile from the file at path and the
// environment. Settings are applied in order: defaults, the profile, then
// ALGORITHMIA_API_KEY and ALGORITHMIA_API.
//
// A missing file is only an error when a profile other than the default one
// was requested.
func Load(path, profile string) (*api.Config, error) {
	if profile == "" {
		profile = DefaultProfile
	}

	cfg := api.DefaultConfig()

	file, err := LoadFile(path)
	switch {
	case err == nil:
		p := file.Profile(profile)
		if p == nil && profile != DefaultProfile {
			return nil, fmt.Errorf("profile %q not found in %s", profile, path)
		}
		if p != nil {
			p.Apply(cfg)
		}
	case errors.Is(err, os.ErrNotExist) || !fileExists(path):
		if profile != DefaultProfile {
			return nil, fmt.Errorf("profile %q requested but configuration file %s does not exist", profile, path)
		}
	default:
		return nil, err
	}

	if key := os.Getenv(api.EnvAPIKey); key != "" {
		cfg.APIKey = key
	}
	if base := os.Getenv(api.EnvBaseURL); base != "" {
		cfg.BaseURL = base
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
