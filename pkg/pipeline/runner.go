package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/atlas"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/cache"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete pipeline with caching. A run whose patterns
// match no files logs a warning and returns an empty result.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)
	r.Logger.Debug("options", "layout", fmt.Sprintf("%+v", opts.LayoutOptions()), "format", opts.Format)

	result := &Result{}

	// Stage 1: Discover
	r.Logger.Info("getting file list", "patterns", opts.Inputs)
	entries, err := r.Discover(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	if len(entries) == 0 {
		r.Logger.Warn("no files were found, finishing")
		return result, nil
	}
	r.Logger.Info("got files", "count", len(entries))

	// Stage 2: Load
	loadStart := time.Now()
	sprites, err := r.Load(ctx, entries, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.SpriteCount = len(sprites)
	result.Stats.Loaded = MeasurePixels(sprites)
	r.logPixels(result.Stats.Loaded, nil)

	// Stages 3 and 4: Trim and Layout
	layoutStart := time.Now()
	res, info, err := r.LayoutWithCacheInfo(ctx, sprites, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo = info
	result.Sprites = res.Sprites
	result.Canvas = res.Canvas
	result.Stats.Trimmed = MeasurePixels(res.Sprites)
	result.Stats.Efficiency = atlas.Efficiency(res)
	if opts.Trim {
		r.logPixels(result.Stats.Trimmed, &result.Stats.Loaded)
	}
	r.logCanvas(res.Canvas)
	observability.Pipeline().OnCanvasResolved(ctx, res.Canvas.Width, res.Canvas.Height, result.Stats.Efficiency)

	r.Logger.Info("computed layout",
		"sprites", len(res.Sprites),
		"cached", info.LayoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 5: Compose and Export
	outputStart := time.Now()
	sh, files, err := r.Output(ctx, res, opts)
	if err != nil {
		return nil, err
	}
	result.Sheet = sh
	result.Files = files
	result.Stats.OutputTime = time.Since(outputStart)

	r.Logger.Info("wrote outputs",
		"files", len(files),
		"duration", result.Stats.OutputTime)

	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func (r *Runner) logPixels(st PixelStats, before *PixelStats) {
	if before == nil {
		r.Logger.Info("image stats", "bytes", st.Bytes, "pixels", st.Pixels)
		return
	}
	r.Logger.Info("image stats after trim",
		"bytes", st.Bytes, "bytes_change", PercentChange(before.Bytes, st.Bytes),
		"pixels", st.Pixels, "pixels_change", PercentChange(before.Pixels, st.Pixels))
}

func (r *Runner) logCanvas(c atlas.Canvas) {
	for _, step := range c.Steps {
		r.Logger.Debug("canvas size", "step", step.Reason, "size", fmt.Sprintf("%dx%d", step.Size.Width, step.Size.Height))
	}
	r.Logger.Info("determined final texture size", "size", fmt.Sprintf("%dx%d", c.Width, c.Height))
}

// stage wraps fn with start/complete pipeline hooks.
func stage(ctx context.Context, name string, sprites int, fn func() error) error {
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, name, sprites)
	start := time.Now()
	err := fn()
	hooks.OnStageComplete(ctx, name, sprites, time.Since(start), err)
	return err
}
