package cli

import (
	"github.com/spf13/cobra"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/cache"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/pipeline"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/server"
)

const (
	defaultAddr = ":8080"

	// serveKeyScope keeps service layouts apart from CLI entries in a shared cache.
	serveKeyScope = "serve:"
)

// serveCommand creates the serve command for the HTTP layout service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		flags cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout engine over HTTP",
		Long: `Serve the layout engine over HTTP.

Clients POST sprite names and sizes to /v1/layout and receive the packed
sheet as JSON. Set --cache-url (or SPRITESHEET_CACHE_URL) to share computed
layouts between instances through Redis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := newCache(ctx, flags)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, serveKeyScope), c.Logger)
			defer runner.Close()

			return server.New(runner, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	flags.register(cmd)

	return cmd
}
