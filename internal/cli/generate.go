package cli

import (
	"context"
	"math/rand/v2"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hexwalk/pkg/config"
	"github.com/matzehuels/hexwalk/pkg/pipeline"
)

// generateOpts holds the command-line flags of the generate command.
type generateOpts struct {
	seed     uint64
	formats  string
	output   string // output directory override
	noCache  bool
	refresh  bool
	outline  bool
	markers  bool
	unsigned bool
}

// generateCommand creates the generate command: one numbered export.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate, sign and export a new drawing",
		Long: `Generate a new drawing and export it.

The export receives the next number from the archive. The number is used in
the file names (<prefix>_NNN.<ext>) and in the signature stamped in the
bottom right corner. Without --seed a random seed is drawn.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seedSet := cmd.Flags().Changed("seed")
			return c.runGenerate(cmd.Context(), opts, seedSet, cmd.Flags().Changed("outline"), cmd.Flags().Changed("markers"))
		},
	}

	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (default: random)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg, pdf, png, json (comma-separated; default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "regenerate even if the drawing is cached")
	cmd.Flags().BoolVar(&opts.outline, "outline", false, "also draw the hexagon borders")
	cmd.Flags().BoolVar(&opts.markers, "markers", false, "circle walks that cover a single cell")
	cmd.Flags().BoolVar(&opts.unsigned, "unsigned", false, "do not stamp the signature")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, flags generateOpts, seedSet, outlineSet, markersSet bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}
	if formats := parseFormats(flags.formats); formats != nil {
		if err := pipeline.ValidateFormats(formats); err != nil {
			return err
		}
		cfg.Output.Formats = formats
	}
	if outlineSet {
		cfg.Grid.Outline = flags.outline
	}
	if markersSet {
		cfg.Walk.Markers = flags.markers
	}
	if flags.unsigned {
		cfg.Signature.Enabled = false
	}

	seed := flags.seed
	if !seedSet {
		seed = rand.Uint64()
	}

	opts, err := c.pipelineOptions(cfg, seed)
	if err != nil {
		return err
	}
	opts.Refresh = flags.refresh

	store, err := openArchive(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	runner := c.newRunner(ctx, cfg, flags.noCache)
	defer runner.Close()

	done := timer(c.Logger)
	spinner := newSpinner(ctx, "Reserving export number...")
	spinner.Start()
	exp := &exporter{cfg: cfg, runner: runner, store: store, stage: spinner.Update}
	out, err := exp.export(ctx, opts)
	if err != nil {
		spinner.StopWithError("Export failed")
		return err
	}
	spinner.Stop()
	done("exported drawing", "number", out.Record.Number)

	printExport(out, cfg)
	return nil
}

// printExport summarises an export.
func printExport(out *exportResult, cfg config.Config) {
	rec := out.Record
	name := rec.Signature
	if name == "" {
		name = exportName(cfg.Output.Prefix, rec.Number, "*")
	}
	printSuccess("Exported %s", StyleHighlight.Render(name))
	printStats(out.Result.Stats.Cells, rec.Instructions, out.Result.CacheInfo.GenerateHit)
	printDetail("seed %d", rec.Seed)
	for _, f := range rec.Files {
		printFile(f)
	}
	if len(rec.Files) > 0 {
		printNextStep("Re-render", "hexwalk render "+jsonHint(rec.Files))
	}
}

// jsonHint suggests the JSON export, if there is one, for re-rendering.
func jsonHint(files []string) string {
	for _, f := range files {
		if ext := filepath.Ext(f); ext == ".json" || ext == ".zst" {
			return f
		}
	}
	return "<drawing.json>"
}
