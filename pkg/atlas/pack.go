package atlas

import (
	"strings"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/errors"
)

// packFunc assigns Padded.X and Padded.Y to every sprite and returns the
// extent of the packed area.
type packFunc func(sprites []Sprite, opts Options) (Size, error)

var packers = map[string]packFunc{
	PackGrowingBinpacking: packGrowing,
	PackBinpacking:        packStrict,
	PackHorizontal:        packHorizontal,
	PackVertical:          packVertical,
}

// PackAlgorithms returns the names accepted by Pack.
func PackAlgorithms() []string {
	return []string{PackGrowingBinpacking, PackBinpacking, PackHorizontal, PackVertical}
}

// Pack places the padded footprints of sprites, taken in order, with the
// algorithm named by opts.PackAlgorithm. It never changes a footprint's
// size. The returned Size is the packed extent; it is not yet the final
// canvas (see [ResolveCanvas]).
func Pack(sprites []Sprite, opts Options) ([]Sprite, Size, error) {
	pack, ok := packers[opts.PackAlgorithm]
	if !ok {
		return nil, Size{}, errors.New(errors.ErrCodeUnsupportedPackAlgorithm,
			"unsupported pack algorithm %q (valid: %s)", opts.PackAlgorithm, strings.Join(PackAlgorithms(), ", "))
	}
	for _, s := range sprites {
		if s.Padded.Width <= 0 || s.Padded.Height <= 0 {
			return nil, Size{}, errors.New(errors.ErrCodeInvalidInput,
				"%s has no packing footprint (%dx%d)", s.Name, s.Padded.Width, s.Padded.Height)
		}
	}
	size, err := pack(sprites, opts)
	if err != nil {
		return nil, Size{}, err
	}
	return sprites, size, nil
}

func packGrowing(sprites []Sprite, _ Options) (Size, error) {
	if len(sprites) == 0 {
		return Size{}, nil
	}
	t := newBinTree(sprites[0].Padded.Width, sprites[0].Padded.Height)
	for i := range sprites {
		s := &sprites[i]
		w, h := s.Padded.Width, s.Padded.Height
		x, y, ok := t.insert(w, h)
		if !ok {
			if !t.grow(w, h) {
				return Size{}, doesNotFit(s, t.size())
			}
			if x, y, ok = t.insert(w, h); !ok {
				return Size{}, doesNotFit(s, t.size())
			}
		}
		s.Padded.X, s.Padded.Y = x, y
	}
	return t.size(), nil
}

func packStrict(sprites []Sprite, opts Options) (Size, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return Size{}, errors.New(errors.ErrCodeMissingCanvasSize,
			"%s requires both width and height", PackBinpacking)
	}
	t := newBinTree(opts.Width, opts.Height)
	for i := range sprites {
		s := &sprites[i]
		x, y, ok := t.insert(s.Padded.Width, s.Padded.Height)
		if !ok {
			return Size{}, doesNotFit(s, t.size())
		}
		s.Padded.X, s.Padded.Y = x, y
	}
	return t.size(), nil
}

func packHorizontal(sprites []Sprite, _ Options) (Size, error) {
	var size Size
	for i := range sprites {
		s := &sprites[i]
		s.Padded.X, s.Padded.Y = size.Width, 0
		size.Width += s.Padded.Width
		size.Height = max(size.Height, s.Padded.Height)
	}
	return size, nil
}

func packVertical(sprites []Sprite, _ Options) (Size, error) {
	var size Size
	for i := range sprites {
		s := &sprites[i]
		s.Padded.X, s.Padded.Y = 0, size.Height
		size.Height += s.Padded.Height
		size.Width = max(size.Width, s.Padded.Width)
	}
	return size, nil
}

func doesNotFit(s *Sprite, canvas Size) error {
	return errors.New(errors.ErrCodeDoesNotFit, "%s (%dx%d) does not fit in %dx%d",
		s.Name, s.Padded.Width, s.Padded.Height, canvas.Width, canvas.Height)
}
