package atlas

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// TrimMargins measures how many uniform border rows and columns img has.
//
// The reference color is the top-left pixel, sampled once; a border line
// counts as uniform when every pixel on it is within tolerance of that
// color (see [ColorDistance]). Sides are scanned top, left, bottom, right
// and each scan is limited to the region the previous ones left, so the
// remaining image is never smaller than 1x1.
func TrimMargins(img Image, tolerance float64) Sides {
	w, h := img.Width(), img.Height()
	if w <= 0 || h <= 0 {
		return Sides{}
	}
	ref := img.At(0, 0)
	same := func(x, y int) bool {
		return ColorDistance(ref, img.At(x, y)) <= tolerance
	}
	rowUniform := func(y, x0, x1 int) bool {
		for x := x0; x < x1; x++ {
			if !same(x, y) {
				return false
			}
		}
		return true
	}
	colUniform := func(x, y0, y1 int) bool {
		for y := y0; y < y1; y++ {
			if !same(x, y) {
				return false
			}
		}
		return true
	}

	var m Sides
	for m.Up < h-1 && rowUniform(m.Up, 0, w) {
		m.Up++
	}
	for m.Left < w-1 && colUniform(m.Left, m.Up, h) {
		m.Left++
	}
	for h-1-m.Down > m.Up && rowUniform(h-1-m.Down, m.Left, w) {
		m.Down++
	}
	for w-1-m.Right > m.Left && colUniform(w-1-m.Right, m.Up, h-m.Down) {
		m.Right++
	}
	return m
}

// ColorDistance returns a perceptual distance in [0, 1] between two colors.
// Two fully transparent colors are identical regardless of their RGB
// channels; otherwise the result is the larger of the alpha difference and
// the RGB distance weighted by the smaller alpha.
func ColorDistance(a, b color.Color) float64 {
	na := color.NRGBAModel.Convert(a).(color.NRGBA)
	nb := color.NRGBAModel.Convert(b).(color.NRGBA)
	if na.A == 0 && nb.A == 0 {
		return 0
	}
	alpha := math.Abs(float64(na.A)-float64(nb.A)) / 255

	ca := colorful.Color{R: float64(na.R) / 255, G: float64(na.G) / 255, B: float64(na.B) / 255}
	cb := colorful.Color{R: float64(nb.R) / 255, G: float64(nb.G) / 255, B: float64(nb.B) / 255}
	visible := float64(min(na.A, nb.A)) / 255
	rgb := ca.DistanceRgb(cb) / math.Sqrt(3) * visible

	return max(alpha, rgb)
}

// Trim crops every sprite's image to its non-uniform content and records
// the removed borders in Margin. Sprites without an image are left as is.
func Trim(sprites []Sprite, tolerance float64) []Sprite {
	for i := range sprites {
		s := &sprites[i]
		if s.Image == nil {
			continue
		}
		m := TrimMargins(s.Image, tolerance)
		w := s.Image.Width() - m.Horizontal()
		h := s.Image.Height() - m.Vertical()
		if m != (Sides{}) {
			s.Image.Crop(m.Left, m.Up, w, h)
		}
		s.Margin = m
		s.Real.Width = w
		s.Real.Height = h
	}
	return sprites
}

// ApplyMargins crops each sprite by a previously measured margin. It is the
// counterpart of Trim for layouts restored from a cache, where the margins
// are known and rescanning the pixels is unnecessary.
func ApplyMargins(sprites []Sprite, margins []Sides) []Sprite {
	for i := range sprites {
		if i >= len(margins) {
			break
		}
		s := &sprites[i]
		m := margins[i]
		w := s.Real.Width - m.Horizontal()
		h := s.Real.Height - m.Vertical()
		if s.Image != nil && m != (Sides{}) {
			s.Image.Crop(m.Left, m.Up, w, h)
		}
		s.Margin = m
		s.Real.Width = w
		s.Real.Height = h
	}
	return sprites
}
