package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hexwalk/pkg/errors"
	"github.com/matzehuels/hexwalk/pkg/pipeline"
	"github.com/matzehuels/hexwalk/pkg/sink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string // base path of the outputs; default derives from the input
	formats     string
	limit       int
	strokeWidth float64
	dpi         float64
	compress    bool
}

// renderCommand re-renders an exported JSON drawing.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [drawing.json]",
		Short: "Re-render an exported drawing",
		Long: `Render a drawing exported as JSON (plain or zstd-compressed) to other
formats. --limit renders only the first N instructions, e.g. to plot a
partial drawing or to inspect how the program progresses.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: input without extension)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "svg", "output format(s): svg, pdf, png, json (comma-separated)")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "render only the first N instructions (0 renders all)")
	cmd.Flags().Float64Var(&opts.strokeWidth, "stroke-width", sink.DefaultStrokeWidth, "pen width in millimetres")
	cmd.Flags().Float64Var(&opts.dpi, "dpi", sink.DefaultDPI, "PNG resolution")
	cmd.Flags().BoolVar(&opts.compress, "compress", false, "zstd-compress JSON output")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, flags renderOpts) error {
	doc, err := readDrawing(input)
	if err != nil {
		return err
	}
	c.Logger.Debug("loaded drawing", "id", doc.ID, "number", doc.Number, "instructions", len(doc.Instructions))

	opts := pipeline.Options{
		Formats:     parseFormats(flags.formats),
		StrokeWidth: flags.strokeWidth,
		DPI:         flags.dpi,
		Compress:    flags.compress,
		Limit:       flags.limit,
		Logger:      c.Logger,
	}
	opts.SetRenderDefaults()
	if err := opts.ValidateForRender(); err != nil {
		return err
	}

	// Imported drawings have no drawing key, so nothing is cached.
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	artifacts, err := runner.Render(ctx, doc, "", opts)
	if err != nil {
		return err
	}

	base := basePath(flags.output, input)
	if err := os.MkdirAll(filepath.Dir(base), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "create output directory")
	}
	paths := make([]string, len(opts.Formats))
	for i, format := range opts.Formats {
		paths[i] = base + "." + pipeline.Extension(format, opts)
		if paths[i] == input {
			return errors.New(errors.ErrCodeInvalidPath, "refusing to overwrite the input %s", input)
		}
	}
	for i, format := range opts.Formats {
		if err := os.WriteFile(paths[i], artifacts[format], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeStorage, err, "write %s", paths[i])
		}
	}

	printSuccess("Rendered %s", StyleHighlight.Render(input))
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// readDrawing loads a drawing exported as JSON.
func readDrawing(path string) (sink.Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return sink.Document{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return sink.Document{}, errors.New(errors.ErrCodeFileNotFound, "drawing not found: %s", path)
		}
		return sink.Document{}, errors.Wrap(errors.ErrCodeStorage, err, "read %s", path)
	}
	return sink.ParseJSON(data)
}

// inputExtensions are stripped from input and output paths to derive the
// base path of rendered files.
var inputExtensions = []string{".json.zst", ".json", ".svg", ".pdf", ".png"}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .json.zst, etc.), it strips that.
func basePath(output, input string) string {
	p := output
	if p == "" {
		p = input
	}
	for _, ext := range inputExtensions {
		if strings.HasSuffix(p, ext) {
			return strings.TrimSuffix(p, ext)
		}
	}
	if output == "" {
		return strings.TrimSuffix(p, filepath.Ext(p))
	}
	return p
}
