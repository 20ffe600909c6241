package base

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/algorithmia/internal/config"
	"github.com/hashicorp-forge/algorithmia/pkg/algorithmia"
	"github.com/hashicorp-forge/algorithmia/pkg/api"
)

// Command carries what every subcommand shares.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	// Stdout receives raw command output such as file contents.
	Stdout io.Writer
	// FS is the local filesystem used for uploads and downloads.
	FS afero.Fs

	flagConfig  string
	flagProfile string
	flagVerbose bool
}

// NewCommand returns a Command writing to the process stdout and using the
// OS filesystem.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log:    log,
		UI:     ui,
		Stdout: os.Stdout,
		FS:     afero.NewOsFs(),
	}
}

// ClientFlags registers the flags that select the account to use.
func (c *Command) ClientFlags(f *FlagSet) {
	f.StringVar(
		&c.flagConfig, "config", config.DefaultPath(),
		"Path to the configuration file.",
	)
	f.StringVar(
		&c.flagProfile, "profile", config.DefaultProfile,
		"Configuration profile to use.",
	)
	f.BoolVar(
		&c.flagVerbose, "verbose", false,
		"Log every API request.",
	)
}

// Client builds an API client from the configuration file, the selected
// profile and the environment.
func (c *Command) Client() (*algorithmia.Client, error) {
	cfg, err := config.Load(c.flagConfig, c.flagProfile)
	if err != nil {
		return nil, err
	}

	logger := c.Log
	if c.flagVerbose {
		logger.SetLevel(hclog.Debug)
	}
	logger.Debug("using API server", "url", cfg.BaseURL, "profile", c.flagProfile)

	client, err := algorithmia.New(cfg, api.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("error creating API client: %w", err)
	}
	return client, nil
}
