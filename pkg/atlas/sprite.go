package atlas

import "image/color"

// Rect is an axis-aligned rectangle in canvas pixels.
// Area is always derived from Width and Height, never stored.
type Rect struct {
	X      int `json:"x" toml:"x"`
	Y      int `json:"y" toml:"y"`
	Width  int `json:"width" toml:"width"`
	Height int `json:"height" toml:"height"`
}

// Area returns Width * Height.
func (r Rect) Area() int { return r.Width * r.Height }

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Intersects reports whether r and o share at least one pixel.
// Rectangles that merely touch along an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return !(r.X >= o.Right() || r.Right() <= o.X || r.Y >= o.Bottom() || r.Bottom() <= o.Y)
}

// Sides holds a per-border pixel amount.
type Sides struct {
	Left  int `json:"left" toml:"left"`
	Right int `json:"right" toml:"right"`
	Up    int `json:"up" toml:"up"`
	Down  int `json:"down" toml:"down"`
}

// Horizontal returns Left + Right.
func (s Sides) Horizontal() int { return s.Left + s.Right }

// Vertical returns Up + Down.
func (s Sides) Vertical() int { return s.Up + s.Down }

// Uniform returns Sides with every border set to n.
func Uniform(n int) Sides { return Sides{Left: n, Right: n, Up: n, Down: n} }

// Image is the pixel-access capability the engine needs from an image
// collaborator. The engine reads pixels only during trimming and never
// copies them; Crop mutates the image in place.
type Image interface {
	Width() int
	Height() int
	At(x, y int) color.Color
	Crop(x, y, w, h int)
	ByteLength() int
}

// Sprite is the per-image layout record. It is created at discovery and
// every stage of the engine fills in or derives more of its fields.
//
// Real holds the true (post-trim) pixel dimensions and, once Finalize has
// run, the unpadded placement on the canvas. Padded is the footprint the
// packer places; its size is Real's size plus Padding.
type Sprite struct {
	Name    string // source identifier, usually a file path
	Pattern string // discovery pattern that produced Name
	Image   Image  // pixel handle; nil for geometry-only layouts

	Real    Rect
	Margin  Sides // pixels removed from each border by trimming
	Padding Sides // pixels added to each border before packing
	Padded  Rect
}

// NewSprite returns a sprite record for an image of the given size.
func NewSprite(name string, width, height int) Sprite {
	return Sprite{
		Name: name,
		Real: Rect{Width: width, Height: height},
	}
}

// FromImage returns a sprite record sized from img.
func FromImage(name string, img Image) Sprite {
	s := NewSprite(name, img.Width(), img.Height())
	s.Image = img
	return s
}

// Size is a canvas extent.
type Size struct {
	Width  int `json:"width" toml:"width"`
	Height int `json:"height" toml:"height"`
}

// Area returns Width * Height.
func (s Size) Area() int { return s.Width * s.Height }
