package cp

import (
	"context"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/hashicorp-forge/algorithmia/internal/cmd/base"
	"github.com/hashicorp-forge/algorithmia/pkg/algorithmia"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Copy files to or from a data directory"
}

func (c *Command) Help() string {
	return `Usage: algo cp [options] <source>... <destination>

  Upload local files into a data directory, or download data files into a
  local directory. The direction follows the destination: a data uri such as
  data://.my/photos uploads, a local path downloads.

  Examples:
    algo cp cat.jpg dog.jpg data://.my/photos
    algo cp data://.my/photos/cat.jpg ./downloads` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("cp", flag.ContinueOnError))
	c.ClientFlags(f)
	return f
}

func isDataURI(s string) bool {
	return strings.Contains(s, "://")
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() < 2 {
		ui.Error("expected at least one source and a destination")
		return 1
	}
	sources := flags.Args()[:flags.NArg()-1]
	dest := flags.Arg(flags.NArg() - 1)

	client, err := c.Client()
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	ctx := context.Background()
	if isDataURI(dest) {
		dir := client.Dir(dest)
		return c.RunEach(sources, func(src string) error {
			if err := dir.PutFile(ctx, c.FS, src); err != nil {
				return err
			}
			ui.Info(fmt.Sprintf("Uploaded %s", dir.ChildFile(filepath.Base(src)).URI()))
			return nil
		})
	}

	destIsDir, _ := afero.IsDir(c.FS, dest)
	if len(sources) > 1 && !destIsDir {
		ui.Error(fmt.Sprintf("destination %s must be an existing directory when copying several files", dest))
		return 1
	}

	return c.RunEach(sources, func(src string) error {
		target := dest
		if destIsDir {
			target = filepath.Join(dest, client.File(src).Basename())
		}
		if err := c.download(ctx, client, src, target); err != nil {
			return err
		}
		ui.Info(fmt.Sprintf("Downloaded %s", target))
		return nil
	})
}

func (c *Command) download(ctx context.Context, client *algorithmia.Client, uri, target string) error {
	file, err := client.File(uri).Get(ctx)
	if err != nil {
		return err
	}
	defer file.Close()

	out, err := c.FS.Create(target)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", target, err)
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		return fmt.Errorf("error writing %s: %w", target, err)
	}
	return out.Close()
}
