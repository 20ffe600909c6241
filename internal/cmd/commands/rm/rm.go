package rm

import (
	"context"
	"flag"
	"fmt"

	"github.com/hashicorp-forge/algorithmia/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Delete data files"
}

func (c *Command) Help() string {
	return `Usage: algo rm [options] <data uri>...

  Delete one or more data files.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("rm", flag.ContinueOnError))
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
	return c.RunEach(flags.Args(), func(uri string) error {
		file := client.File(uri)
		if err := file.Delete(ctx); err != nil {
			return err
		}
		ui.Info(fmt.Sprintf("Deleted file %s", file.URI()))
		return nil
	})
}
