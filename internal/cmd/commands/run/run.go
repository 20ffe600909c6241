package run

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"strconv"

	"github.com/spf13/afero"

	"github.com/hashicorp-forge/algorithmia/internal/cmd/base"
	"github.com/hashicorp-forge/algorithmia/pkg/algo"
)

type Command struct {
	*base.Command

	flagData    string
	flagJSON    string
	flagFile    string
	flagTimeout uint
	flagStdout  bool
	flagOutput  string
}

func (c *Command) Synopsis() string {
	return "Call an algorithm"
}

func (c *Command) Help() string {
	return `Usage: algo run [options] <algorithm>

  Call an algorithm with text, JSON or binary input and print the result.

  Examples:
    algo run -data=world demo/Hello
    algo run -json='[2,3,4]' codeb34v3r/FindMinMax/0.1
    algo run -file=cat.jpg -output=json opencv/SmartThumbnail` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("run", flag.ContinueOnError))

	f.StringVar(
		&c.flagData, "data", "",
		"Text input.",
	)
	f.StringVar(
		&c.flagJSON, "json", "",
		"JSON input, sent as is.",
	)
	f.StringVar(
		&c.flagFile, "file", "",
		"Path of a local file sent as binary input.",
	)
	f.UintVar(
		&c.flagTimeout, "timeout", 0,
		"Algorithm timeout in seconds. Zero uses the server default.",
	)
	f.BoolVar(
		&c.flagStdout, "stdout", false,
		"Print the algorithm stdout (algorithm owners only).",
	)
	f.StringVar(
		&c.flagOutput, "output", base.OutputText,
		"Output format: text, json or yaml.",
	)
	c.ClientFlags(f)

	return f
}

// result is the structured form of a response printed by -output=json|yaml.
type result struct {
	Metadata metadata `json:"metadata" yaml:"metadata"`
	Result   any      `json:"result" yaml:"result"`
}

type metadata struct {
	ContentType string   `json:"content_type" yaml:"content_type"`
	Duration    float64  `json:"duration" yaml:"duration"`
	Stdout      string   `json:"stdout,omitempty" yaml:"stdout,omitempty"`
	Alerts      []string `json:"alerts,omitempty" yaml:"alerts,omitempty"`
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	// Parse flags.
	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	args = flags.Args()
	if len(args) != 1 {
		ui.Error("expected exactly one algorithm")
		return 1
	}
	if !base.ValidOutput(c.flagOutput) {
		ui.Error(fmt.Sprintf("invalid output format %q", c.flagOutput))
		return 1
	}

	client, err := c.Client()
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	a := client.Algo(args[0])
	if c.flagTimeout > 0 {
		a = a.WithTimeout(uint32(c.flagTimeout))
	}
	if c.flagStdout {
		a = a.WithStdout()
	}

	resp, err := c.pipe(context.Background(), a)
	if err != nil {
		ui.Error(fmt.Sprintf("error calling %s: %v", a.URI(), err))
		return 1
	}

	if resp.Metadata.Stdout != "" && c.flagOutput == base.OutputText {
		ui.Info(resp.Metadata.Stdout)
	}
	for _, alert := range resp.Metadata.Alerts {
		ui.Warn(alert)
	}

	if err := c.print(resp); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}

func (c *Command) pipe(ctx context.Context, a *algo.Algorithm) (*algo.Response, error) {
	set := 0
	for _, v := range []string{c.flagData, c.flagJSON, c.flagFile} {
		if v != "" {
			set++
		}
	}
	if set > 1 {
		return nil, errors.New("only one of -data, -json or -file may be set")
	}

	switch {
	case c.flagJSON != "":
		if !json.Valid([]byte(c.flagJSON)) {
			return nil, errors.New("-json is not valid JSON")
		}
		return a.PipeJSON(ctx, c.flagJSON)
	case c.flagFile != "":
		b, err := afero.ReadFile(c.FS, c.flagFile)
		if err != nil {
			return nil, fmt.Errorf("error reading input file: %w", err)
		}
		return a.Pipe(ctx, algo.Binary(b))
	default:
		return a.Pipe(ctx, algo.Text(c.flagData))
	}
}

func (c *Command) print(resp *algo.Response) error {
	if c.flagOutput != base.OutputText {
		value, ok := resp.AsJSON()
		if !ok {
			b, _ := resp.AsBytes()
			value = base64.StdEncoding.EncodeToString(b)
		}
		if c.flagOutput == base.OutputYAML {
			value = yamlNumbers(value)
		}
		return c.PrintStructured(c.flagOutput, result{
			Metadata: metadata{
				ContentType: resp.Metadata.ContentType,
				Duration:    resp.Metadata.Duration,
				Stdout:      resp.Metadata.Stdout,
				Alerts:      resp.Metadata.Alerts,
			},
			Result: value,
		})
	}

	if b, ok := resp.AsBytes(); ok {
		if _, err := c.Stdout.Write(b); err != nil {
			return fmt.Errorf("error writing result: %w", err)
		}
		return nil
	}
	c.UI.Output(resp.String())
	return nil
}

// yamlNumbers replaces json.Number values, which yaml would print as quoted
// strings, with native numbers.
func yamlNumbers(v any) any {
	switch v := v.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if u, err := strconv.ParseUint(v.String(), 10, 64); err == nil {
			return u
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = yamlNumbers(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = yamlNumbers(e)
		}
		return out
	default:
		return v
	}
}
