package base

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by -output.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// ValidOutput reports whether format is a known output format.
func ValidOutput(format string) bool {
	switch format {
	case OutputText, OutputJSON, OutputYAML:
		return true
	}
	return false
}

// PrintStructured writes v to the UI as indented JSON or YAML.
func (c *Command) PrintStructured(format string, v any) error {
	var (
		out []byte
		err error
	)
	switch format {
	case OutputJSON:
		out, err = json.MarshalIndent(v, "", "  ")
	case OutputYAML:
		out, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("error encoding output: %w", err)
	}

	c.UI.Output(string(out))
	return nil
}

// RunEach calls fn for every target, reporting all failures together. It
// returns the exit code.
func (c *Command) RunEach(targets []string, fn func(target string) error) int {
	var result *multierror.Error
	for _, target := range targets {
		if err := fn(target); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", target, err))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}
