package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/elskow/seabuild/internal/pipeline"
	"github.com/elskow/seabuild/internal/pipeline/types"
)

var errNoSuccess = errors.New("no platform built successfully")

type BuildCmd struct {
	Main           string   `short:"m" help:"Entry point script." default:"index.js" type:"path"`
	Output         string   `short:"o" help:"Output executable name." default:"app"`
	OutputDir      string   `help:"Directory receiving the executables." default:"." type:"path"`
	Platforms      []string `short:"p" help:"Target platforms (${platforms}). Defaults to the host." sep:","`
	UseSnapshot    bool     `help:"Build a startup snapshot (host platform only)."`
	UseCodeCache   bool     `help:"Embed a V8 code cache (host platform only)."`
	Assets         string   `help:"JSON object mapping asset names to files." placeholder:"JSON"`
	DisableWarning bool     `help:"Suppress the experimental SEA warning at startup."`
}

func (c *BuildCmd) Run(ctx context.Context, root *RootCmd) error {
	opts, err := c.options()
	if err != nil {
		return err
	}

	var p *pipeline.Pipeline
	logger, err := root.newApp(&p)
	if err != nil {
		return err
	}
	defer logger.Sync()

	results, err := p.Run(ctx, opts)
	if err != nil {
		return err
	}

	printReport(os.Stdout, results)

	if pipeline.Succeeded(results) == 0 {
		return errNoSuccess
	}
	return nil
}

func (c *BuildCmd) options() (types.BuildOptions, error) {
	opts := types.BuildOptions{
		Main:           c.Main,
		Output:         c.Output,
		OutputDir:      c.OutputDir,
		DisableWarning: c.DisableWarning,
		UseSnapshot:    c.UseSnapshot,
		UseCodeCache:   c.UseCodeCache,
		Platforms:      c.Platforms,
	}

	if c.Assets != "" {
		if err := json.Unmarshal([]byte(c.Assets), &opts.Assets); err != nil {
			return opts, fmt.Errorf("%w: --assets: %w", types.ErrInvalidOptions, err)
		}
	}

	return opts, nil
}
