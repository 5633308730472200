package atlas

import (
	"github.com/hedin-hiervard/spritesheet-creator/pkg/errors"
)

// Finalize converts each padded placement into the real placement used for
// compositing and export.
func Finalize(sprites []Sprite) []Sprite {
	for i := range sprites {
		s := &sprites[i]
		s.Real.X = s.Padded.X + s.Padding.Left
		s.Real.Y = s.Padded.Y + s.Padding.Up
	}
	return sprites
}

// Validate checks that every padded footprint lies inside the canvas and
// that no two footprints overlap. It is a sanity check on the packer, not
// part of the normal path.
func Validate(sprites []Sprite, canvas Size) error {
	bounds := Rect{Width: canvas.Width, Height: canvas.Height}
	for i, a := range sprites {
		p := a.Padded
		if p.X < 0 || p.Y < 0 || p.Right() > bounds.Width || p.Bottom() > bounds.Height {
			return errors.New(errors.ErrCodeOverlapViolation,
				"%s at (%d,%d) %dx%d is outside the %dx%d canvas",
				a.Name, p.X, p.Y, p.Width, p.Height, canvas.Width, canvas.Height)
		}
		for _, b := range sprites[i+1:] {
			if p.Intersects(b.Padded) {
				return errors.New(errors.ErrCodeOverlapViolation, "%s overlaps %s", a.Name, b.Name)
			}
		}
	}
	return nil
}
