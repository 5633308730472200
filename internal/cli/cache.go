package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the trim and layout cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. It clears the
// local cache directory, or the shared Redis cache when one is configured.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached trims and layouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := newCache(ctx, cacheFlags{url: url})
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				return fmt.Errorf("%T cannot be cleared", store)
			}
			count, err := clearer.Clear(ctx)
			if err != nil {
				return err
			}
			out := newConsole(cmd.OutOrStdout())
			if count == 0 {
				out.info("Cache is empty")
				return nil
			}

			out.success("Cleared %d cached entries", count)
			if fc, ok := store.(*cache.FileCache); ok {
				out.detail("Directory: %s", fc.Dir())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "cache-url", "", "redis URL of a shared cache (env "+cacheURLEnv+")")

	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
