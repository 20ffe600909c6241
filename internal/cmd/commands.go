package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/algorithmia/internal/cmd/base"
	"github.com/hashicorp-forge/algorithmia/internal/cmd/commands/cat"
	"github.com/hashicorp-forge/algorithmia/internal/cmd/commands/cp"
	"github.com/hashicorp-forge/algorithmia/internal/cmd/commands/ls"
	"github.com/hashicorp-forge/algorithmia/internal/cmd/commands/mkdir"
	"github.com/hashicorp-forge/algorithmia/internal/cmd/commands/rm"
	"github.com/hashicorp-forge/algorithmia/internal/cmd/commands/rmdir"
	"github.com/hashicorp-forge/algorithmia/internal/cmd/commands/run"
	"github.com/hashicorp-forge/algorithmia/internal/cmd/commands/version"
)

// Commands is the mapping of all available commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := base.NewCommand(log, ui)

	Commands = map[string]cli.CommandFactory{
		"run": func() (cli.Command, error) {
			return &run.Command{Command: b}, nil
		},
		"ls": func() (cli.Command, error) {
			return &ls.Command{Command: b}, nil
		},
		"mkdir": func() (cli.Command, error) {
			return &mkdir.Command{Command: b}, nil
		},
		"rmdir": func() (cli.Command, error) {
			return &rmdir.Command{Command: b}, nil
		},
		"rm": func() (cli.Command, error) {
			return &rm.Command{Command: b}, nil
		},
		"cp": func() (cli.Command, error) {
			return &cp.Command{Command: b}, nil
		},
		"cat": func() (cli.Command, error) {
			return &cat.Command{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}
}
