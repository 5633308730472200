package pipeline

import (
	"context"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/atlas"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/imageio"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/observability"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/source"
)

// Discover expands the input patterns into image files.
func (r *Runner) Discover(ctx context.Context, opts Options) ([]source.Entry, error) {
	var entries []source.Entry
	err := stage(ctx, observability.StageDiscover, 0, func() error {
		var err error
		entries, err = source.Expand(opts.Inputs)
		return err
	})
	return entries, err
}

// Load decodes every entry, at most opts.Concurrency at a time, and returns
// one sprite per entry in discovery order.
func (r *Runner) Load(ctx context.Context, entries []source.Entry, opts Options) ([]atlas.Sprite, error) {
	r.Logger.Info("reading files into memory", "concurrency", opts.Concurrency)

	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}

	var sprites []atlas.Sprite
	err := stage(ctx, observability.StageLoad, len(entries), func() error {
		bitmaps, err := imageio.LoadAll(ctx, paths, opts.Concurrency)
		if err != nil {
			return err
		}
		sprites = make([]atlas.Sprite, len(entries))
		for i, e := range entries {
			sprites[i] = atlas.FromImage(e.Path, bitmaps[i])
			sprites[i].Pattern = e.Pattern
		}
		return nil
	})
	return sprites, err
}
