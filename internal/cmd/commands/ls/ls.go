package ls

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/hashicorp-forge/algorithmia/internal/cmd/base"
	"github.com/hashicorp-forge/algorithmia/pkg/data"
)

type Command struct {
	*base.Command

	flagLong   bool
	flagOutput string
}

func (c *Command) Synopsis() string {
	return "List the contents of a data directory"
}

func (c *Command) Help() string {
	return `Usage: algo ls [options] [data uri]

  List the directories and files of a data directory, fetching every page.
  Defaults to data://.my` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("ls", flag.ContinueOnError))

	f.BoolVar(
		&c.flagLong, "l", false,
		"Long listing with size and modification time.",
	)
	f.StringVar(
		&c.flagOutput, "output", base.OutputText,
		"Output format: text, json or yaml.",
	)
	c.ClientFlags(f)

	return f
}

type entry struct {
	Type         string     `json:"type" yaml:"type"`
	Name         string     `json:"name" yaml:"name"`
	URI          string     `json:"uri" yaml:"uri"`
	Size         uint64     `json:"size,omitempty" yaml:"size,omitempty"`
	LastModified *time.Time `json:"last_modified,omitempty" yaml:"last_modified,omitempty"`
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() > 1 {
		ui.Error("expected at most one data uri")
		return 1
	}
	if !base.ValidOutput(c.flagOutput) {
		ui.Error(fmt.Sprintf("invalid output format %q", c.flagOutput))
		return 1
	}
	uri := "data://.my"
	if flags.NArg() == 1 {
		uri = flags.Arg(0)
	}

	client, err := c.Client()
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	dir := client.Dir(uri)
	var entries []entry
	for e, err := range dir.List().All(context.Background()) {
		if err != nil {
			ui.Error(fmt.Sprintf("error listing %s: %v", dir.URI(), err))
			return 1
		}

		switch e := e.(type) {
		case *data.DirEntry:
			entries = append(entries, entry{Type: "dir", Name: e.Basename(), URI: e.URI()})
		case *data.FileEntry:
			modified := e.LastModified
			entries = append(entries, entry{
				Type:         "file",
				Name:         e.Basename(),
				URI:          e.URI(),
				Size:         e.Size,
				LastModified: &modified,
			})
		}
	}

	if c.flagOutput != base.OutputText {
		if err := c.PrintStructured(c.flagOutput, entries); err != nil {
			ui.Error(err.Error())
			return 1
		}
		return 0
	}

	for _, e := range entries {
		name := e.Name
		if e.Type == "dir" {
			name += "/"
		}
		if !c.flagLong {
			ui.Output(name)
			continue
		}

		modified := ""
		if e.LastModified != nil {
			modified = e.LastModified.Format(time.DateTime)
		}
		ui.Output(fmt.Sprintf("%-4s %12d %19s %s", e.Type, e.Size, modified, name))
	}
	return 0
}
