package atlas

import (
	"cmp"
	"slices"
	"strings"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/errors"
)

type compareFunc func(a, b Sprite) int

// desc orders by key, largest first.
func desc(key func(Sprite) int) compareFunc {
	return func(a, b Sprite) int { return cmp.Compare(key(b), key(a)) }
}

func chain(cmps ...compareFunc) compareFunc {
	return func(a, b Sprite) int {
		for _, c := range cmps {
			if r := c(a, b); r != 0 {
				return r
			}
		}
		return 0
	}
}

var (
	byWidth  = desc(func(s Sprite) int { return s.Padded.Width })
	byHeight = desc(func(s Sprite) int { return s.Padded.Height })
	byArea   = desc(func(s Sprite) int { return s.Padded.Area() })
	byMax    = desc(func(s Sprite) int { return max(s.Padded.Width, s.Padded.Height) })
	byMin    = desc(func(s Sprite) int { return min(s.Padded.Width, s.Padded.Height) })
)

var sorters = map[string]compareFunc{
	SortWidth:   chain(byWidth, byHeight),
	SortHeight:  chain(byHeight, byWidth),
	SortArea:    chain(byArea, byHeight, byWidth),
	SortMaxSide: chain(byMax, byMin, byHeight, byWidth),
}

// SortMethods returns the names accepted by Sort.
func SortMethods() []string {
	return []string{SortWidth, SortHeight, SortArea, SortMaxSide}
}

// Sort orders sprites for packing, largest first, by the padded footprint.
// The sort is stable: sprites with equal keys keep their input order.
func Sort(sprites []Sprite, method string) ([]Sprite, error) {
	c, ok := sorters[method]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupportedSortMethod, "unsupported sort method %q (valid: %s)", method, strings.Join(SortMethods(), ", "))
	}
	slices.SortStableFunc(sprites, c)
	return sprites, nil
}
