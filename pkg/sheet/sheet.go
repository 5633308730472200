// Package sheet defines the placement data written next to an atlas
// texture.
//
// A [Sheet] is the canonical, serializable form of a finished layout: the
// texture it describes, the canvas size, and one [Frame] per sprite. It is
// used for the json and toml export formats, for layout caching, and for
// reading a sheet back with the inspect command.
//
//	s := sheet.FromResult("atlas.png", result, opts)
//	_ = sheet.WriteFile(s, "atlas.json")    // Sheet -> file (format from extension)
//	back, _ := sheet.ReadFile("atlas.json") // file -> Sheet
//
// Frame coordinates are real (unpadded) positions. Margin records the
// transparent border trimmed from the source image, so a consumer can
// restore the original size: SourceWidth = Width + Margin.Left + Margin.Right.
package sheet

import (
	"github.com/hedin-hiervard/spritesheet-creator/pkg/atlas"
)

// Sheet is the serialized form of a layout.
type Sheet struct {
	Texture string        `json:"texture" toml:"texture"`
	Width   int           `json:"width" toml:"width"`
	Height  int           `json:"height" toml:"height"`
	Options atlas.Options `json:"options" toml:"options"`
	Frames  []Frame       `json:"frames" toml:"frames"`
}

// Frame is one placed sprite.
type Frame struct {
	Name         string      `json:"name" toml:"name"`
	Pattern      string      `json:"pattern,omitempty" toml:"pattern,omitempty"`
	X            int         `json:"x" toml:"x"`
	Y            int         `json:"y" toml:"y"`
	Width        int         `json:"width" toml:"width"`
	Height       int         `json:"height" toml:"height"`
	Margin       atlas.Sides `json:"margin" toml:"margin"`
	Padding      atlas.Sides `json:"padding" toml:"padding"`
	SourceWidth  int         `json:"source_width" toml:"source_width"`
	SourceHeight int         `json:"source_height" toml:"source_height"`
}

// Rect returns the frame's real rectangle on the texture.
func (f Frame) Rect() atlas.Rect {
	return atlas.Rect{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height}
}

// FromResult builds a Sheet from a finished layout. Frames keep the
// layout's packing order.
func FromResult(texture string, res atlas.Result, opts atlas.Options) Sheet {
	s := Sheet{
		Texture: texture,
		Width:   res.Canvas.Width,
		Height:  res.Canvas.Height,
		Options: opts,
		Frames:  make([]Frame, len(res.Sprites)),
	}
	for i, sp := range res.Sprites {
		s.Frames[i] = Frame{
			Name:         sp.Name,
			Pattern:      sp.Pattern,
			X:            sp.Real.X,
			Y:            sp.Real.Y,
			Width:        sp.Real.Width,
			Height:       sp.Real.Height,
			Margin:       sp.Margin,
			Padding:      sp.Padding,
			SourceWidth:  sp.Real.Width + sp.Margin.Horizontal(),
			SourceHeight: sp.Real.Height + sp.Margin.Vertical(),
		}
	}
	return s
}

// Sprites rebuilds the geometry of every frame. The sprites carry no
// image.
func (s Sheet) Sprites() []atlas.Sprite {
	out := make([]atlas.Sprite, len(s.Frames))
	for i, f := range s.Frames {
		out[i] = atlas.Sprite{
			Name:    f.Name,
			Pattern: f.Pattern,
			Real:    f.Rect(),
			Margin:  f.Margin,
			Padding: f.Padding,
			Padded: atlas.Rect{
				X:      f.X - f.Padding.Left,
				Y:      f.Y - f.Padding.Up,
				Width:  f.Width + f.Padding.Horizontal(),
				Height: f.Height + f.Padding.Vertical(),
			},
		}
	}
	return out
}

// Frame returns the frame with the given name.
func (s Sheet) Frame(name string) (Frame, bool) {
	for _, f := range s.Frames {
		if f.Name == name {
			return f, true
		}
	}
	return Frame{}, false
}
