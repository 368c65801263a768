package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hexwalk/pkg/errors"
	"github.com/matzehuels/hexwalk/pkg/pipeline"
	"github.com/matzehuels/hexwalk/pkg/sink"
)

const (
	gridFormatDOT = "dot"
	gridFormatSVG = "svg"
)

type gridOpts struct {
	output string
	format string
}

// gridCommand exports the cell adjacency graph of the configured grid.
func (c *CLI) gridCommand() *cobra.Command {
	var opts gridOpts

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Export the hexagonal grid as a Graphviz graph",
		Long: `Write the cell adjacency graph of the configured grid as Graphviz DOT or
render it to SVG. Nodes are pinned to the cell centers, so the graph shows
the tiling the walks move on.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGrid(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout for dot, grid.svg for svg)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", gridFormatDOT, "output format: dot, svg")

	return cmd
}

func (c *CLI) runGrid(ctx context.Context, flags gridOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts, err := c.pipelineOptions(cfg, 0)
	if err != nil {
		return err
	}
	opts.SetGenerateDefaults()
	if err := opts.ValidateForGenerate(); err != nil {
		return err
	}

	g := pipeline.BuildGrid(opts)
	dot := sink.GridDOT(g)
	c.Logger.Debug("built grid", "cells", g.Len(), "links", g.EdgeCount())

	switch flags.format {
	case gridFormatDOT:
		if flags.output == "" {
			fmt.Print(dot)
			return nil
		}
		return writeGrid(flags.output, []byte(dot), g.Len())
	case gridFormatSVG:
		svg, err := sink.RenderDOTSVG(ctx, dot)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "render grid")
		}
		out := flags.output
		if out == "" {
			out = "grid.svg"
		}
		return writeGrid(out, svg, g.Len())
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "invalid grid format %q (must be 'dot' or 'svg')", flags.format)
	}
}

func writeGrid(path string, data []byte, cells int) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write %s", path)
	}
	printSuccess("Grid with %s cells", StyleNumber.Render(fmt.Sprint(cells)))
	printFile(path)
	return nil
}
