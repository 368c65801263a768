package cli

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hexwalk/internal/preview"
	"github.com/matzehuels/hexwalk/pkg/config"
	"github.com/matzehuels/hexwalk/pkg/pipeline"
)

type studioOpts struct {
	seed    uint64
	serve   bool
	noCache bool
}

// studioCommand starts the interactive terminal studio.
func (c *CLI) studioCommand() *cobra.Command {
	var opts studioOpts

	cmd := &cobra.Command{
		Use:   "studio",
		Short: "Interactively generate, watch and export drawings",
		Long: `Open a terminal studio that plots the current drawing progressively.

Keys:
  r  generate a new drawing with a random seed
  p  export the current drawing (numbered, signed, archived)
  s  restart the animation
  q  quit

With --serve the browser preview is kept in sync with the studio.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStudio(cmd.Context(), opts, cmd.Flags().Changed("seed"))
		},
	}

	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed of the first drawing (default: random)")
	cmd.Flags().BoolVar(&opts.serve, "serve", false, "also serve the browser preview")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runStudio(ctx context.Context, flags studioOpts, seedSet bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	// Log lines would tear the full-screen view.
	quiet := log.New(io.Discard)

	opts, err := c.pipelineOptions(cfg, 0)
	if err != nil {
		return err
	}
	opts.Logger = quiet

	store, err := openArchive(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	runner := c.newRunner(ctx, cfg, flags.noCache)
	runner.Logger = quiet
	defer runner.Close()

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newStudioModel(ctx, cfg, opts, &exporter{cfg: cfg, runner: runner, store: store})
	if seedSet {
		m.Seed = flags.seed
	}

	serveErr := make(chan error, 1)
	if flags.serve {
		m.server = preview.New(m.Doc, preview.Options{
			Addr:     cfg.Preview.Addr,
			Batch:    cfg.Preview.Batch,
			Interval: cfg.PreviewInterval(),
			Logger:   quiet,
		})
		go func() { serveErr <- m.server.ListenAndServe(ctx) }()
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	cancel()
	if flags.serve {
		if serr := <-serveErr; serr != nil && err == nil {
			err = serr
		}
	}
	if errors.Is(err, tea.ErrProgramKilled) && parent.Err() != nil {
		return context.Canceled
	}
	return err
}

func newStudioModel(ctx context.Context, cfg config.Config, opts pipeline.Options, exp *exporter) StudioModel {
	interval := cfg.PreviewInterval()
	if interval <= 0 {
		interval = preview.DefaultInterval
	}
	return StudioModel{
		ctx:            ctx,
		opts:           opts,
		runner:         exp.runner,
		exporter:       exp,
		newSeed:        rand.Uint64,
		pointsPerFrame: max(cfg.Preview.Batch, 1),
		interval:       interval,
		Seed:           rand.Uint64(),
		Busy:           true,
	}
}
