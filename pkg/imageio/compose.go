package imageio

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/atlas"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/errors"
)

// Compose draws every sprite's bitmap at its real position on a transparent
// canvas of the given size. Sprites without a *Bitmap are skipped.
func Compose(canvas atlas.Size, sprites []atlas.Sprite) *image.NRGBA {
	dst := imaging.New(canvas.Width, canvas.Height, color.Transparent)
	for _, s := range sprites {
		b, ok := s.Image.(*Bitmap)
		if !ok || b == nil {
			continue
		}
		src := b.Image()
		dp := image.Pt(s.Real.X, s.Real.Y)
		xdraw.Copy(dst, dp, src, src.Bounds(), xdraw.Src, nil)
	}
	return dst
}

// Save encodes img to path, choosing the format from the extension.
// PNG output uses the best compression level.
func Save(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeEncodeFailed, err, "couldn't create directory for %s", path)
	}
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported texture format %q", filepath.Ext(path))
	}
	err := imaging.Save(img, path, imaging.PNGCompressionLevel(png.BestCompression))
	if err != nil {
		return errors.Wrap(errors.ErrCodeEncodeFailed, err, "couldn't write %s", path)
	}
	return nil
}

// IsImage reports whether path has an extension of a decodable image.
func IsImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp":
		return true
	}
	return false
}
