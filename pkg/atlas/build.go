package atlas

import (
	"github.com/hedin-hiervard/spritesheet-creator/pkg/errors"
)

// Result is a finished layout.
type Result struct {
	Sprites []Sprite
	Canvas  Canvas
}

// Build runs the whole layout engine: trim (when enabled), pad, sort, pack,
// resolve the canvas, finalize coordinates and optionally validate.
//
// The slice is reordered and its records are updated in place; the
// returned Result shares it.
func Build(sprites []Sprite, opts Options) (Result, error) {
	opts = opts.WithDefaults()
	if err := checkOptions(opts); err != nil {
		return Result{}, err
	}
	for _, s := range sprites {
		if s.Real.Width <= 0 || s.Real.Height <= 0 {
			return Result{}, errors.New(errors.ErrCodeInvalidInput,
				"%s has invalid size %dx%d", s.Name, s.Real.Width, s.Real.Height)
		}
	}

	if opts.Trim {
		sprites = Trim(sprites, opts.Tolerance)
	}
	return Layout(sprites, opts)
}

// Layout runs every stage after trimming. Callers that restore margins from
// a cache use it directly after [ApplyMargins].
func Layout(sprites []Sprite, opts Options) (Result, error) {
	opts = opts.WithDefaults()
	sprites = Pad(sprites, opts.Padding, opts.DivisibleByTwo)
	for _, s := range sprites {
		if s.Padded.Width > MaxCanvasSide || s.Padded.Height > MaxCanvasSide {
			return Result{}, errors.New(errors.ErrCodeCanvasTooLarge,
				"%s (%dx%d padded) exceeds the %d pixel limit", s.Name, s.Padded.Width, s.Padded.Height, MaxCanvasSide)
		}
	}

	sprites, err := Sort(sprites, opts.SortMethod)
	if err != nil {
		return Result{}, err
	}

	sprites, packed, err := Pack(sprites, opts)
	if err != nil {
		return Result{}, err
	}

	canvas, err := ResolveCanvas(packed, opts)
	if err != nil {
		return Result{}, err
	}

	sprites = Finalize(sprites)

	if opts.Validate {
		if err := Validate(sprites, canvas.Size); err != nil {
			return Result{}, err
		}
	}
	return Result{Sprites: sprites, Canvas: canvas}, nil
}

func checkOptions(opts Options) error {
	if opts.Padding < 0 || opts.Padding > MaxCanvasSide {
		return errors.New(errors.ErrCodeInvalidInput, "padding must be in [0, %d], got %d", MaxCanvasSide, opts.Padding)
	}
	if opts.Tolerance < 0 || opts.Tolerance >= 1 {
		return errors.New(errors.ErrCodeInvalidInput, "tolerance must be in [0, 1), got %g", opts.Tolerance)
	}
	if opts.MaxTextureSize < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max texture size must be >= 0, got %d", opts.MaxTextureSize)
	}
	if _, ok := sorters[opts.SortMethod]; !ok {
		_, err := Sort(nil, opts.SortMethod)
		return err
	}
	if _, ok := packers[opts.PackAlgorithm]; !ok {
		_, _, err := Pack(nil, opts)
		return err
	}
	return nil
}

// CheckOptions reports option values Build would reject, without running a
// layout.
func CheckOptions(opts Options) error {
	return checkOptions(opts.WithDefaults())
}

// Efficiency returns the share of the canvas covered by real sprite pixels.
func Efficiency(r Result) float64 {
	if r.Canvas.Area() == 0 {
		return 0
	}
	used := 0
	for _, s := range r.Sprites {
		used += s.Real.Area()
	}
	return float64(used) / float64(r.Canvas.Area())
}
