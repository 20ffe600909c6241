package cat

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/hashicorp-forge/algorithmia/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the contents of data files"
}

func (c *Command) Help() string {
	return `Usage: algo cat [options] <data uri>...

  Download data files and write their contents to stdout.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("cat", flag.ContinueOnError))
	c.ClientFlags(f)
	return f
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() == 0 {
		ui.Error("expected at least one data uri")
		return 1
	}

	client, err := c.Client()
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	ctx := context.Background()
	for _, uri := range flags.Args() {
		file, err := client.File(uri).Get(ctx)
		if err != nil {
			ui.Error(fmt.Sprintf("error downloading %s: %v", uri, err))
			return 1
		}

		_, err = io.Copy(c.Stdout, file)
		file.Close()
		if err != nil {
			ui.Error(fmt.Sprintf("error reading %s: %v", uri, err))
			return 1
		}
	}
	return 0
}
