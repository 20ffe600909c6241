package mkdir

import (
	"context"
	"flag"
	"fmt"

	"github.com/hashicorp-forge/algorithmia/internal/cmd/base"
	"github.com/hashicorp-forge/algorithmia/pkg/data"
)

type Command struct {
	*base.Command

	flagACL string
}

func (c *Command) Synopsis() string {
	return "Create data directories"
}

func (c *Command) Help() string {
	return `Usage: algo mkdir [options] <data uri>...

  Create one or more data directories. Parent directories must exist.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("mkdir", flag.ContinueOnError))

	f.StringVar(
		&c.flagACL, "acl", data.MyAlgorithms.String(),
		"Read access: private, my_algos or public.",
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
	acl, err := data.ParseReadACL(c.flagACL)
	if err != nil {
		ui.Error(err.Error())
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
		if err := dir.Create(ctx, acl.ACL()); err != nil {
			return err
		}
		ui.Info(fmt.Sprintf("Created directory %s", dir.URI()))
		return nil
	})
}
