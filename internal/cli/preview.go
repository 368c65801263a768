package cli

import (
	"context"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hexwalk/internal/preview"
	"github.com/matzehuels/hexwalk/pkg/glyph"
	"github.com/matzehuels/hexwalk/pkg/sink"
)

type previewOpts struct {
	seed    uint64
	addr    string
	input   string
	noCache bool
}

// previewCommand serves the progressive browser preview.
func (c *CLI) previewCommand() *cobra.Command {
	var opts previewOpts

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Animate a drawing in the browser",
		Long: `Serve a page that draws the instruction program progressively, the way
the plotter will. Without --input a new drawing is generated from the config;
it is signed with the next export number but not recorded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), opts, cmd.Flags().Changed("seed"))
		},
	}

	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (default: random)")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "preview an exported JSON drawing instead")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, flags previewOpts, seedSet bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if flags.addr != "" {
		cfg.Preview.Addr = flags.addr
	}

	var doc sink.Document
	if flags.input != "" {
		if doc, err = readDrawing(flags.input); err != nil {
			return err
		}
	} else {
		seed := flags.seed
		if !seedSet {
			seed = rand.Uint64()
		}
		opts, err := c.pipelineOptions(cfg, seed)
		if err != nil {
			return err
		}
		if cfg.Signature.Enabled {
			store, err := openArchive(ctx, cfg)
			if err != nil {
				return err
			}
			n, err := store.Next(ctx)
			store.Close()
			if err != nil {
				return err
			}
			opts.Signature = glyph.SignatureText(cfg.Signature.Name, n)
		}

		runner := c.newRunner(ctx, cfg, flags.noCache)
		defer runner.Close()
		if doc, err = runner.Generate(ctx, opts); err != nil {
			return err
		}
	}

	srv := preview.New(doc, preview.Options{
		Addr:     cfg.Preview.Addr,
		Batch:    cfg.Preview.Batch,
		Interval: cfg.PreviewInterval(),
		Logger:   c.Logger,
	})
	printInfo("Previewing seed %d (%d instructions)", doc.Seed, len(doc.Instructions))
	printNextStep("Open", StyleLink.Render("http://"+cfg.Preview.Addr))
	return srv.ListenAndServe(ctx)
}
