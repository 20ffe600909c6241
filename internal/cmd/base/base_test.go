package base

import (
	"errors"
	"flag"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand() (*Command, *cli.MockUi) {
	ui := cli.NewMockUi()
	return NewCommand(hclog.NewNullLogger(), ui), ui
}

func TestFlagSet_Help(t *testing.T) {
	c, _ := newTestCommand()
	f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
	c.ClientFlags(f)

	help := f.Help()
	assert.Contains(t, help, "-profile=default")
	assert.Contains(t, help, "-verbose\n      Log every API request.")

	assert.Error(t, f.Parse([]string{"-unknown"}))
}

func TestRunEach(t *testing.T) {
	c, ui := newTestCommand()

	var seen []string
	code := c.RunEach([]string{"a", "b", "c"}, func(target string) error {
		seen = append(seen, target)
		if target == "b" {
			return nil
		}
		return errors.New("failed")
	})

	assert.Equal(t, 1, code)
	assert.Equal(t, []string{"a", "b", "c"}, seen)
	assert.Contains(t, ui.ErrorWriter.String(), "2 errors occurred")
	assert.Contains(t, ui.ErrorWriter.String(), "a: failed")
	assert.Contains(t, ui.ErrorWriter.String(), "c: failed")

	assert.Equal(t, 0, c.RunEach([]string{"x"}, func(string) error { return nil }))
}

func TestPrintStructured(t *testing.T) {
	v := map[string]any{"name": "foo", "size": 3}

	c, ui := newTestCommand()
	require.NoError(t, c.PrintStructured(OutputJSON, v))
	assert.JSONEq(t, `{"name":"foo","size":3}`, ui.OutputWriter.String())

	c, ui = newTestCommand()
	require.NoError(t, c.PrintStructured(OutputYAML, v))
	assert.Equal(t, "name: foo\nsize: 3\n\n", ui.OutputWriter.String())

	assert.Error(t, c.PrintStructured("xml", v))
	assert.False(t, ValidOutput("xml"))
	assert.True(t, ValidOutput(OutputYAML))
}
