package rmdir

import (
	"context"
	"flag"
	"fmt"

	"github.com/hashicorp-forge/algorithmia/internal/cmd/base"
)

type Command struct {
	*base.Command

	flagForce bool
}

func (c *Command) Synopsis() string {
	return "Delete data directories"
}

func (c *Command) Help() string {
	return `Usage: algo rmdir [options] <data uri>...

  Delete one or more data directories. Directories that still contain files
  are only deleted with -force.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("rmdir", flag.ContinueOnError))

	f.BoolVar(
		&c.flagForce, "force", false,
		"Delete directories together with their contents.",
	)
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
		dir := client.Dir(uri)
		deleted, err := dir.Delete(ctx, c.flagForce)
		if err != nil {
			return err
		}
		ui.Info(fmt.Sprintf("Deleted directory %s (%d files)", dir.URI(), deleted.Deleted))
		return nil
	})
}
