// Package pipeline provides the spritesheet generation pipeline.
//
// This package implements the complete discover → load → trim → layout →
// compose/export pipeline used by the CLI and the layout service. By
// centralizing this logic, every entry point shares the same caching,
// logging and defaults.
//
// # Architecture
//
// The pipeline consists of these stages:
//
//  1. Discover: expand input patterns into image files
//  2. Load: decode every image concurrently
//  3. Trim: crop uniform borders (cached per image)
//  4. Layout: pad, sort, pack, size the canvas and finalize coordinates
//     (cached per sprite set and options)
//  5. Compose and Export: draw the texture and write the data files,
//     concurrently
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Inputs = []string{"assets/**/*.png"}
//	opts.Texture = "build/atlas.png"
//	opts.Data = "build/atlas.json"
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Sheet.Width, result.Sheet.Height)
package pipeline

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/atlas"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/cache"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/errors"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/export"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/sheet"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultPadding is the transparent border added around every sprite.
	DefaultPadding = 1

	// DefaultFormat is the default data export format.
	DefaultFormat = export.DefaultFormat
)

// DefaultOptions returns the options a plain `spritesheet generate` run
// uses: trimming on, one pixel of padding, even footprints, power-of-two
// canvas, width sort and the growing packer.
//
// The zero Options value turns every boolean feature off; start from
// DefaultOptions to get the usual behavior.
func DefaultOptions() Options {
	return Options{
		Trim:           true,
		Padding:        DefaultPadding,
		DivisibleByTwo: true,
		PowerOfTwo:     true,
		SortMethod:     atlas.DefaultSortMethod,
		PackAlgorithm:  atlas.DefaultPackAlgorithm,
		Format:         DefaultFormat,
	}
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// It is decoded from spritesheet.toml and from service requests.
type Options struct {
	// Inputs and outputs
	Inputs      []string `json:"inputs" toml:"inputs"`
	Texture     string   `json:"texture" toml:"texture"`
	Data        string   `json:"data" toml:"data"`
	Format      string   `json:"format,omitempty" toml:"format"`
	ProjectRoot string   `json:"project_root,omitempty" toml:"project_root"`

	// Layout options
	Trim           bool    `json:"trim" toml:"trim"`
	Tolerance      float64 `json:"tolerance,omitempty" toml:"tolerance"`
	Padding        int     `json:"padding" toml:"padding"`
	DivisibleByTwo bool    `json:"divisible_by_two" toml:"divisible_by_two"`
	Square         bool    `json:"square" toml:"square"`
	PowerOfTwo     bool    `json:"power_of_two" toml:"power_of_two"`
	MaxTextureSize int     `json:"max_texture_size,omitempty" toml:"max_texture_size"`
	SortMethod     string  `json:"sort_method,omitempty" toml:"sort_method"`
	PackAlgorithm  string  `json:"pack_algorithm,omitempty" toml:"pack_algorithm"`
	Width          int     `json:"width,omitempty" toml:"width"`
	Height         int     `json:"height,omitempty" toml:"height"`
	Validate       bool    `json:"validate,omitempty" toml:"validate"`

	// Runtime options
	Concurrency int  `json:"concurrency,omitempty" toml:"concurrency"` // max concurrent image decoders
	Refresh     bool `json:"refresh,omitempty" toml:"refresh"`         // ignore cached results

	Logger *log.Logger `json:"-" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Sheet is the placement data of the finished texture.
	Sheet sheet.Sheet

	// Sprites are the laid-out records in packing order.
	Sprites []atlas.Sprite

	// Canvas is the texture size and the steps that produced it.
	Canvas atlas.Canvas

	// Files lists every file written, texture first.
	Files []string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SpriteCount int
	Loaded      PixelStats // before trimming
	Trimmed     PixelStats // after trimming; equal to Loaded when trim is off
	Efficiency  float64    // share of the canvas covered by sprites
	LoadTime    time.Duration
	LayoutTime  time.Duration
	OutputTime  time.Duration
}

// PixelStats sums the decoded size of a sprite set.
type PixelStats struct {
	Bytes  int
	Pixels int
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	TrimHits  int  // images whose margins came from cache
	LayoutHit bool // whether the whole layout came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Inputs) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "at least one input pattern is required")
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForExport(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.SortMethod == "" {
		o.SortMethod = atlas.DefaultSortMethod
	}
	if o.PackAlgorithm == "" {
		o.PackAlgorithm = atlas.DefaultPackAlgorithm
	}
	if o.Concurrency <= 0 {
		o.Concurrency = runtime.NumCPU()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return atlas.CheckOptions(o.LayoutOptions())
}

// SetExportDefaults sets default values for the outputs.
func (o *Options) SetExportDefaults() {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForExport validates and sets defaults for the outputs.
func (o *Options) ValidateForExport() error {
	o.SetExportDefaults()
	if err := export.ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Texture == "" {
		return errors.New(errors.ErrCodeInvalidInput, "texture output path is required")
	}
	if o.Data == "" && o.Format != export.FormatNull {
		return errors.New(errors.ErrCodeInvalidInput, "data output path is required for format %q", o.Format)
	}
	return nil
}

// LayoutOptions returns the layout engine's view of o.
func (o *Options) LayoutOptions() atlas.Options {
	return atlas.Options{
		Trim:           o.Trim,
		Tolerance:      o.Tolerance,
		Padding:        o.Padding,
		DivisibleByTwo: o.DivisibleByTwo,
		Square:         o.Square,
		PowerOfTwo:     o.PowerOfTwo,
		MaxTextureSize: o.MaxTextureSize,
		SortMethod:     o.SortMethod,
		PackAlgorithm:  o.PackAlgorithm,
		Width:          o.Width,
		Height:         o.Height,
		Validate:       o.Validate,
	}.WithDefaults()
}

// SetLayoutOptions copies the layout fields of lo into o.
func (o *Options) SetLayoutOptions(lo atlas.Options) {
	o.Trim = lo.Trim
	o.Tolerance = lo.Tolerance
	o.Padding = lo.Padding
	o.DivisibleByTwo = lo.DivisibleByTwo
	o.Square = lo.Square
	o.PowerOfTwo = lo.PowerOfTwo
	o.MaxTextureSize = lo.MaxTextureSize
	o.SortMethod = lo.SortMethod
	o.PackAlgorithm = lo.PackAlgorithm
	o.Width = lo.Width
	o.Height = lo.Height
	o.Validate = lo.Validate
}

// LayoutKeyOpts returns cache key options for layout computation.
// Validate is left out: it never changes a successful layout.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	lo := o.LayoutOptions()
	return cache.LayoutKeyOpts{
		Trim:           lo.Trim,
		Tolerance:      lo.Tolerance,
		Padding:        lo.Padding,
		DivisibleByTwo: lo.DivisibleByTwo,
		Square:         lo.Square,
		PowerOfTwo:     lo.PowerOfTwo,
		MaxTextureSize: lo.MaxTextureSize,
		SortMethod:     lo.SortMethod,
		PackAlgorithm:  lo.PackAlgorithm,
		Width:          lo.Width,
		Height:         lo.Height,
	}
}

// Target returns the export destination described by o.
func (o *Options) Target() export.Target {
	return export.Target{Texture: o.Texture, Data: o.Data, ProjectRoot: o.ProjectRoot}
}

// =============================================================================
// Stats
// =============================================================================

// MeasurePixels sums the byte and pixel counts of every sprite that has an
// image.
func MeasurePixels(sprites []atlas.Sprite) PixelStats {
	var st PixelStats
	for _, s := range sprites {
		if s.Image == nil {
			continue
		}
		st.Bytes += s.Image.ByteLength()
		st.Pixels += s.Image.Width() * s.Image.Height()
	}
	return st
}

// PercentChange formats the relative change from old to new, e.g. "-37.50%"
// or "+4.00%". It returns "" when old is zero.
func PercentChange(old, new int) string {
	if old == 0 {
		return ""
	}
	pct := float64(new)/float64(old)*100 - 100
	sign := ""
	if pct > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, pct)
}
