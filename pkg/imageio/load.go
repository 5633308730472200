package imageio

import (
	"context"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
	"golang.org/x/sync/errgroup"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/errors"
)

// Load decodes the image at path, honoring EXIF orientation.
func Load(path string) (*Bitmap, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s does not exist", path)
		}
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "couldn't read %s", path)
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "couldn't decode %s", path)
	}
	return NewBitmap(img), nil
}

// LoadAll decodes every path concurrently, running at most limit decoders at
// once (limit <= 0 means no limit). Results are returned in input order.
// The first failure cancels the remaining loads.
func LoadAll(ctx context.Context, paths []string, limit int) ([]*Bitmap, error) {
	out := make([]*Bitmap, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := Load(p)
			if err != nil {
				return err
			}
			out[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
