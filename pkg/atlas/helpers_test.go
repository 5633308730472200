package atlas

import (
	"image"
	"image/color"
)

// memImage is an in-memory Image whose Crop narrows a view of the pixels.
type memImage struct {
	pix  *image.NRGBA
	x, y int
	w, h int
}

func newMemImage(w, h int, fill color.Color) *memImage {
	m := &memImage{pix: image.NewNRGBA(image.Rect(0, 0, w, h)), w: w, h: h}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.pix.Set(x, y, fill)
		}
	}
	return m
}

func (m *memImage) Width() int              { return m.w }
func (m *memImage) Height() int             { return m.h }
func (m *memImage) At(x, y int) color.Color { return m.pix.At(m.x+x, m.y+y) }
func (m *memImage) ByteLength() int         { return m.w * m.h * 4 }

func (m *memImage) Crop(x, y, w, h int) {
	m.x += x
	m.y += y
	m.w, m.h = w, h
}

func (m *memImage) fillRect(r Rect, c color.Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			m.pix.Set(m.x+x, m.y+y, c)
		}
	}
}

var (
	transparent = color.NRGBA{}
	red         = color.NRGBA{R: 255, A: 255}
	blue        = color.NRGBA{B: 255, A: 255}
	white       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func makeSprites(sizes ...[2]int) []Sprite {
	out := make([]Sprite, len(sizes))
	for i, sz := range sizes {
		out[i] = NewSprite(string(rune('a'+i)), sz[0], sz[1])
	}
	return out
}

func assertNoOverlap(t interface {
	Helper()
	Errorf(string, ...any)
}, ss []Sprite, canvas Size) {
	t.Helper()
	if err := Validate(ss, canvas); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}
