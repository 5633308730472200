package atlas

import (
	"math/bits"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/errors"
)

// MaxCanvasSide bounds every canvas and padded sprite dimension. It keeps
// rounding and area arithmetic far from int overflow.
const MaxCanvasSide = 1 << 30

// maxPowerOfTwo is the largest power of two an int can hold.
const maxPowerOfTwo = 1 << (bits.UintSize - 2)

// Canvas step reasons, in the order ResolveCanvas applies them.
const (
	StepPacked     = "packed"
	StepSquare     = "square"
	StepPowerOfTwo = "power-of-two"
)

// CanvasStep records an intermediate canvas size and the transform that
// produced it.
type CanvasStep struct {
	Reason string `json:"reason" toml:"reason"`
	Size   Size   `json:"size" toml:"size"`
}

// Canvas is the authoritative output size plus the steps that led to it.
type Canvas struct {
	Size
	Steps []CanvasStep `json:"steps,omitempty" toml:"steps,omitempty"`
}

// ResolveCanvas turns the packed extent into the final canvas size. The
// square and power-of-two transforms only ever grow the canvas, so every
// placement made by the packer stays valid.
func ResolveCanvas(packed Size, opts Options) (Canvas, error) {
	if packed.Width <= 0 || packed.Height <= 0 {
		return Canvas{}, errors.New(errors.ErrCodeIndeterminateCanvasSize,
			"canvas size is undetermined (%dx%d)", packed.Width, packed.Height)
	}
	if packed.Width > MaxCanvasSide || packed.Height > MaxCanvasSide {
		return Canvas{}, errors.New(errors.ErrCodeCanvasTooLarge,
			"packed size %dx%d exceeds the %d pixel limit", packed.Width, packed.Height, MaxCanvasSide)
	}
	c := Canvas{Size: packed}
	c.Steps = append(c.Steps, CanvasStep{Reason: StepPacked, Size: c.Size})

	if opts.Square {
		side := max(c.Width, c.Height)
		c.Width, c.Height = side, side
		c.Steps = append(c.Steps, CanvasStep{Reason: StepSquare, Size: c.Size})
	}
	if opts.PowerOfTwo {
		c.Width = RoundToPowerOfTwo(c.Width)
		c.Height = RoundToPowerOfTwo(c.Height)
		c.Steps = append(c.Steps, CanvasStep{Reason: StepPowerOfTwo, Size: c.Size})
	}
	if m := opts.MaxTextureSize; m > 0 && (c.Width > m || c.Height > m) {
		return Canvas{}, errors.New(errors.ErrCodeCanvasTooLarge,
			"canvas %dx%d exceeds max texture size %d", c.Width, c.Height, m)
	}
	return c, nil
}

// RoundToPowerOfTwo returns the smallest power of two that is not less
// than v, with 2 as the floor. Exact powers of two are returned unchanged.
// Values beyond the largest representable power of two saturate to it.
func RoundToPowerOfTwo(v int) int {
	switch {
	case v <= 2:
		return 2
	case v >= maxPowerOfTwo:
		return maxPowerOfTwo
	}
	return 1 << bits.Len(uint(v-1))
}
