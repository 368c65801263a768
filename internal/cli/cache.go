package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hexwalk/pkg/cache"
	"github.com/matzehuels/hexwalk/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the drawing and artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached drawings and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Cache.Backend == config.BackendNone {
				printInfo("Caching is disabled")
				return nil
			}

			ca := c.newCache(cmd.Context(), cfg, false)
			defer ca.Close()

			cleared, err := cache.Clear(cmd.Context(), ca)
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if !cleared {
				printWarning("The %s cache cannot be cleared", cfg.Cache.Backend)
				return nil
			}
			printSuccess("Cleared the %s cache", cfg.Cache.Backend)
			if dir, ok := cacheLocation(cfg); ok {
				printDetail("Location: %s", dir)
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory or URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			loc, ok := cacheLocation(cfg)
			if !ok {
				return fmt.Errorf("no cache location for backend %q", cfg.Cache.Backend)
			}
			fmt.Println(loc)
			return nil
		},
	}
}

// cacheLocation returns the file cache directory or the redis URL.
func cacheLocation(cfg config.Config) (string, bool) {
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		return cfg.Cache.URL, cfg.Cache.URL != ""
	case config.BackendFile:
		if cfg.Cache.Dir != "" {
			return cfg.Cache.Dir, true
		}
		dir, err := cacheDir()
		return dir, err == nil
	default:
		return "", false
	}
}
