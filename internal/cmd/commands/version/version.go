package version

import (
	"github.com/hashicorp-forge/algorithmia/internal/cmd/base"
	"github.com/hashicorp-forge/algorithmia/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version"
}

func (c *Command) Help() string {
	return `Usage: algo version

  Print the version of the algo CLI.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output(version.Version)
	return 0
}
