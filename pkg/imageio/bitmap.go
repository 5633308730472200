// Package imageio loads sprite images, composes the atlas texture and
// writes it back to disk.
//
// Decoding goes through the image package registry, so every format with a
// registered decoder can be used as input. PNG, JPEG, GIF, BMP, TIFF and
// WebP are registered here.
package imageio

import (
	"encoding/binary"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/atlas"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/cache"
)

// Bitmap is a decoded sprite image held as non-premultiplied RGBA with its
// origin at (0, 0). It implements [atlas.Image].
type Bitmap struct {
	img *image.NRGBA
}

// NewBitmap copies img into a Bitmap.
func NewBitmap(img image.Image) *Bitmap {
	return &Bitmap{img: imaging.Clone(img)}
}

// Width returns the current width in pixels.
func (b *Bitmap) Width() int { return b.img.Rect.Dx() }

// Height returns the current height in pixels.
func (b *Bitmap) Height() int { return b.img.Rect.Dy() }

// At returns the pixel at (x, y) relative to the top-left corner.
func (b *Bitmap) At(x, y int) color.Color {
	return b.img.NRGBAAt(b.img.Rect.Min.X+x, b.img.Rect.Min.Y+y)
}

// Crop narrows the bitmap to the w x h region at (x, y).
func (b *Bitmap) Crop(x, y, w, h int) {
	b.img = imaging.Crop(b.img, image.Rect(x, y, x+w, y+h))
}

// ByteLength returns the size of the pixel buffer in bytes.
func (b *Bitmap) ByteLength() int { return b.Width() * b.Height() * 4 }

// Image returns the underlying pixels.
func (b *Bitmap) Image() *image.NRGBA { return b.img }

// Hash identifies the bitmap's current pixels and dimensions.
func (b *Bitmap) Hash() string {
	w, h := b.Width(), b.Height()
	buf := make([]byte, 8, 8+w*h*4)
	binary.BigEndian.PutUint32(buf[0:], uint32(w))
	binary.BigEndian.PutUint32(buf[4:], uint32(h))
	for y := 0; y < h; y++ {
		off := b.img.PixOffset(b.img.Rect.Min.X, b.img.Rect.Min.Y+y)
		buf = append(buf, b.img.Pix[off:off+w*4]...)
	}
	return cache.Hash(buf)
}

var _ atlas.Image = (*Bitmap)(nil)
