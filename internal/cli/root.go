package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/hexwalk/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "hexwalk draws random walks across a hexagonal grid for pen plotters",
		Long: `hexwalk generates generative line art: random walks over a hexagonal
tiling, smoothed into curves and exported as plotter-ready SVG, PDF, PNG or
JSON. Every export is numbered, signed and recorded in an archive.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default: hexwalk.toml or hexwalk.yaml in the working directory)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.gridCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.studioCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
