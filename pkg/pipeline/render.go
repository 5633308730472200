package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/atlas"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/export"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/imageio"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/observability"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/sheet"
)

// Output draws the texture and writes the data files for a finished
// layout. The two run concurrently; both read res, neither modifies it.
// It returns the sheet and every written path, texture first.
func (r *Runner) Output(ctx context.Context, res atlas.Result, opts Options) (sheet.Sheet, []string, error) {
	if err := opts.ValidateForExport(); err != nil {
		return sheet.Sheet{}, nil, err
	}
	r.applyLogger(&opts)

	sh := sheet.FromResult(opts.Texture, res, opts.LayoutOptions())
	var data []string

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := stage(ctx, observability.StageCompose, len(res.Sprites), func() error {
			r.Logger.Info("generating texture", "size", fmt.Sprintf("%dx%d", res.Canvas.Width, res.Canvas.Height))
			img := imageio.Compose(res.Canvas.Size, res.Sprites)
			r.Logger.Info("saving texture", "path", opts.Texture, "bytes", len(img.Pix))
			return imageio.Save(opts.Texture, img)
		})
		if err != nil {
			return fmt.Errorf("compose: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		err := stage(ctx, observability.StageExport, len(res.Sprites), func() error {
			r.Logger.Info("exporting data", "format", opts.Format, "path", opts.Data)
			var err error
			data, err = export.Export(opts.Format, sh, opts.Target())
			return err
		})
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		r.Logger.Debug("wrote data files", "count", len(data))
		return nil
	})
	if err := g.Wait(); err != nil {
		return sheet.Sheet{}, nil, err
	}

	files := append([]string{opts.Texture}, data...)
	return sh, files, nil
}
