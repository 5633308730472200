package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/buildinfo"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/cache"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/observability"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/pipeline"
)

const (
	// appName is the application name used for directories and display.
	appName = "spritesheet"

	// cacheURLEnv selects a remote cache when --cache-url is not given.
	cacheURLEnv = "SPRITESHEET_CACHE_URL"

	// redisPrefix namespaces every key the CLI stores in Redis.
	redisPrefix = appName + ":"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel changes the level of c.Logger. At debug level the
// pipeline, cache and HTTP hooks are also routed to it.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.NewLogHooks(c.Logger).Register()
	}
}

// RootCommand builds the command tree. Errors are returned, not printed;
// main decides how to report them.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           appName,
		Short:         "Spritesheet packs images into texture atlases",
		Long:          `Spritesheet trims, pads and packs a set of images into a single texture and writes the placement data for game engines.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging, including every stage and cache lookup")

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(
		c.generateCommand(),
		c.inspectCommand(),
		c.serveCommand(),
		c.cacheCommand(),
		c.completionCommand(),
	)

	return root
}

// cacheFlags are the cache selection flags shared by generate and serve.
type cacheFlags struct {
	noCache bool
	url     string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&f.url, "cache-url", "", "redis URL for a shared cache (env "+cacheURLEnv+")")
}

// newRunner creates a pipeline runner over the cache flags select.
func (c *CLI) newRunner(ctx context.Context, flags cacheFlags) (*pipeline.Runner, error) {
	store, err := newCache(ctx, flags)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache picks the backend: none with --no-cache, Redis when a URL is
// given by flag or environment, otherwise the per-user cache directory.
func newCache(ctx context.Context, flags cacheFlags) (cache.Cache, error) {
	if flags.noCache {
		return cache.NewNullCache(), nil
	}
	url := flags.url
	if url == "" {
		url = os.Getenv(cacheURLEnv)
	}
	if url != "" {
		return cache.NewRedisCache(ctx, url, redisPrefix)
	}
	dir, err := cacheDir()
	if err != nil {
		log.Warn("no cache directory; caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns $XDG_CACHE_HOME/spritesheet, or ~/.cache/spritesheet.
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
