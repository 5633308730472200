package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/atlas"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/cache"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/observability"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/sheet"
)

// Cache key types reported to observability hooks.
const (
	keyTypeTrim   = "trim"
	keyTypeLayout = "layout"
)

// =============================================================================
// Layout
// =============================================================================

// LayoutWithCacheInfo trims (when enabled) and lays out sprites, reusing a
// cached layout when the same sprites were laid out with the same options
// before. On a hit the cached margins are applied to the images and the
// cached placements are returned without scanning or packing.
//
// The sprites slice is consumed: its records and images are updated in
// place and the returned Result owns them.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, sprites []atlas.Sprite, opts Options) (atlas.Result, CacheInfo, error) {
	var info CacheInfo
	if err := opts.ValidateForLayout(); err != nil {
		return atlas.Result{}, info, err
	}
	r.applyLogger(&opts)
	lo := opts.LayoutOptions()

	key, hashes := r.layoutKey(sprites, opts)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if res, ok := r.cachedLayout(ctx, key, sprites, lo.Validate); ok {
			info.LayoutHit = true
			return res, info, nil
		}
	}

	if lo.Trim {
		hits, err := r.trim(ctx, sprites, hashes, opts)
		if err != nil {
			return atlas.Result{}, info, fmt.Errorf("trim: %w", err)
		}
		info.TrimHits = hits
		lo.Trim = false
	}

	var res atlas.Result
	err := stage(ctx, observability.StageLayout, len(sprites), func() error {
		r.Logger.Info("packing sprites", "sort", lo.SortMethod, "algorithm", lo.PackAlgorithm)
		var err error
		res, err = atlas.Build(sprites, lo)
		return err
	})
	if err != nil {
		return atlas.Result{}, info, err
	}

	// Cache the result
	if data, err := sheet.Marshal(sheet.FromResult("", res, opts.LayoutOptions())); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, keyTypeLayout, len(data))
		} else {
			r.Logger.Debug("layout not cached", "err", err)
		}
	}
	return res, info, nil
}

// LayoutGeometry lays out sprites that carry only a name and a size. No
// pixels are read, so trimming is always off.
func (r *Runner) LayoutGeometry(ctx context.Context, sprites []atlas.Sprite, opts Options) (atlas.Result, CacheInfo, error) {
	opts.Trim = false
	for i := range sprites {
		sprites[i].Image = nil
	}
	return r.LayoutWithCacheInfo(ctx, sprites, opts)
}

// layoutKey returns the layout cache key for sprites and the per-sprite
// hashes it was derived from.
func (r *Runner) layoutKey(sprites []atlas.Sprite, opts Options) (string, []string) {
	hashes := make([]string, len(sprites))
	for i, s := range sprites {
		hashes[i] = spriteHash(s)
	}
	return r.Keyer.LayoutKey(setHash(sprites, hashes), opts.LayoutKeyOpts()), hashes
}

// cachedLayout looks up a stored layout. With validate set the stored
// placements are checked before any image is cropped; an entry that fails
// is deleted and reported as a miss.
func (r *Runner) cachedLayout(ctx context.Context, key string, sprites []atlas.Sprite, validate bool) (atlas.Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
		return atlas.Result{}, false
	}
	sh, err := sheet.Unmarshal(data)
	if err == nil && validate {
		err = atlas.Validate(sh.Sprites(), atlas.Size{Width: sh.Width, Height: sh.Height})
	}
	if err == nil {
		var res atlas.Result
		if res, err = restore(sh, sprites); err == nil {
			observability.Cache().OnCacheHit(ctx, keyTypeLayout)
			r.Logger.Debug("layout restored from cache", "sprites", len(res.Sprites))
			return res, true
		}
	}
	r.Logger.Debug("discarding cached layout", "err", err)
	_ = r.Cache.Delete(ctx, key)
	observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
	return atlas.Result{}, false
}

// restore rebuilds a layout from a cached sheet, cropping each loaded image
// by its cached margin. Nothing is cropped unless every frame matches a
// sprite of the right size.
func restore(sh sheet.Sheet, sprites []atlas.Sprite) (atlas.Result, error) {
	if len(sh.Frames) != len(sprites) {
		return atlas.Result{}, fmt.Errorf("cached layout has %d frames, want %d", len(sh.Frames), len(sprites))
	}
	byName := make(map[string]int, len(sprites))
	for i, s := range sprites {
		byName[s.Name] = i
	}

	placed := sh.Sprites()
	src := make([]int, len(placed))
	used := make(map[int]bool, len(placed))
	for i, p := range placed {
		j, ok := byName[p.Name]
		if !ok || used[j] {
			return atlas.Result{}, fmt.Errorf("cached frame %s does not match the inputs", p.Name)
		}
		s := sprites[j]
		if s.Real.Width-p.Margin.Horizontal() != p.Real.Width || s.Real.Height-p.Margin.Vertical() != p.Real.Height {
			return atlas.Result{}, fmt.Errorf("cached frame %s has a different size", p.Name)
		}
		src[i] = j
		used[j] = true
	}

	for i := range placed {
		s := sprites[src[i]]
		m := placed[i].Margin
		if s.Image != nil && m != (atlas.Sides{}) {
			s.Image.Crop(m.Left, m.Up, placed[i].Real.Width, placed[i].Real.Height)
		}
		placed[i].Image = s.Image
		placed[i].Pattern = s.Pattern
	}
	return atlas.Result{
		Sprites: placed,
		Canvas:  atlas.Canvas{Size: atlas.Size{Width: sh.Width, Height: sh.Height}},
	}, nil
}

// =============================================================================
// Trim
// =============================================================================

// trim crops every sprite, taking margins from the per-image cache where
// possible. It returns the number of cache hits.
func (r *Runner) trim(ctx context.Context, sprites []atlas.Sprite, hashes []string, opts Options) (int, error) {
	r.Logger.Info("trimming images", "tolerance", opts.Tolerance)

	margins := make([]atlas.Sides, len(sprites))
	hits := 0
	err := stage(ctx, observability.StageTrim, len(sprites), func() error {
		for i, s := range sprites {
			if err := ctx.Err(); err != nil {
				return err
			}
			if s.Image == nil {
				continue
			}
			key := r.Keyer.TrimKey(hashes[i], opts.Tolerance)
			if !opts.Refresh {
				if m, ok := r.cachedMargins(ctx, key, s); ok {
					margins[i] = m
					hits++
					continue
				}
			}
			margins[i] = atlas.TrimMargins(s.Image, opts.Tolerance)
			if data, err := json.Marshal(margins[i]); err == nil {
				if err := r.Cache.Set(ctx, key, data, cache.TTLTrim); err == nil {
					observability.Cache().OnCacheSet(ctx, keyTypeTrim, len(data))
				}
			}
		}
		atlas.ApplyMargins(sprites, margins)
		return nil
	})
	return hits, err
}

func (r *Runner) cachedMargins(ctx context.Context, key string, s atlas.Sprite) (atlas.Sides, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeTrim)
		return atlas.Sides{}, false
	}
	var m atlas.Sides
	if err := json.Unmarshal(data, &m); err != nil ||
		m.Horizontal() >= s.Real.Width || m.Vertical() >= s.Real.Height {
		observability.Cache().OnCacheMiss(ctx, keyTypeTrim)
		return atlas.Sides{}, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeTrim)
	return m, true
}

// =============================================================================
// Keys
// =============================================================================

type hasher interface {
	Hash() string
}

// spriteHash identifies a sprite's content: the pixel hash when the image
// provides one, otherwise its size.
func spriteHash(s atlas.Sprite) string {
	if h, ok := s.Image.(hasher); ok {
		return h.Hash()
	}
	return fmt.Sprintf("%dx%d", s.Real.Width, s.Real.Height)
}

// setHash identifies an ordered sprite set by name and content.
func setHash(sprites []atlas.Sprite, hashes []string) string {
	var b strings.Builder
	for i, s := range sprites {
		b.WriteString(s.Name)
		b.WriteByte(0)
		b.WriteString(hashes[i])
		b.WriteByte('\n')
	}
	return cache.Hash([]byte(b.String()))
}
