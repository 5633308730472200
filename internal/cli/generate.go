package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/atlas"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/errors"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/export"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/pipeline"
)

// defaultConfigFile is read from the working directory when --config is not given.
const defaultConfigFile = appName + ".toml"

// generateCommand creates the generate command, the main entry point that
// turns a set of images into a texture and its data files.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		config string
		cache  cacheFlags
	)
	// flags holds flag values; only the ones the user set are applied.
	flags := pipeline.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "generate [patterns...]",
		Short: "Pack images into a texture atlas",
		Long: `Pack images into a texture atlas.

Each pattern is a glob or a directory, whose images are all included. A "**"
segment matches any number of directories (assets/**/*.png). Every image is
trimmed of its uniform border, padded, sorted and packed; the texture is
written to --texture and the placement data to --data in the chosen --format.

Settings are read from spritesheet.toml in the working directory when it
exists (or from --config). Flags override the file.

Trim margins and layouts are cached, so re-running on unchanged images is fast.`,
		Example: `  spritesheet generate 'assets/**/*.png' -t build/atlas.png -d build/atlas.json
  spritesheet generate assets -t res/atlas.png -d res/sprites -f godot3 --project .
  spritesheet generate --config atlas.toml --refresh`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.DefaultOptions()
			path, err := loadConfig(config, cmd.Flags().Changed("config"), &opts)
			if err != nil {
				return err
			}
			if path != "" {
				c.Logger.Debug("loaded config", "path", path)
			}
			applyFlags(cmd, flags, &opts)
			if len(args) > 0 {
				opts.Inputs = args
			}
			return c.runGenerate(cmd.Context(), cmd.OutOrStdout(), opts, cache)
		},
	}

	f := cmd.Flags()
	f.StringVar(&config, "config", defaultConfigFile, "TOML config file")
	cache.register(cmd)

	// Outputs
	f.StringVarP(&flags.Texture, "texture", "t", "", "output texture path (png, jpg, gif, bmp, tiff)")
	f.StringVarP(&flags.Data, "data", "d", "", "output data file (json, toml) or directory (godot3)")
	f.StringVarP(&flags.Format, "format", "f", flags.Format, "data format: "+strings.Join(export.Formats(), ", "))
	f.StringVar(&flags.ProjectRoot, "project", "", "project root for engine resource paths (godot3)")

	// Layout
	f.BoolVar(&flags.Trim, "trim", flags.Trim, "remove uniform borders")
	f.Float64Var(&flags.Tolerance, "tolerance", flags.Tolerance, "trim color tolerance (0 = exact match)")
	f.IntVar(&flags.Padding, "padding", flags.Padding, "transparent pixels around each sprite")
	f.BoolVar(&flags.DivisibleByTwo, "divisible-by-two", flags.DivisibleByTwo, "round each sprite footprint up to even dimensions")
	f.BoolVar(&flags.Square, "square", flags.Square, "force a square texture")
	f.BoolVar(&flags.PowerOfTwo, "power-of-two", flags.PowerOfTwo, "round texture dimensions up to powers of two")
	f.IntVar(&flags.MaxTextureSize, "max-size", 0, "maximum texture width and height (0 = unlimited)")
	f.StringVar(&flags.SortMethod, "sort", flags.SortMethod, "sort method: "+strings.Join(atlas.SortMethods(), ", "))
	f.StringVar(&flags.PackAlgorithm, "algorithm", flags.PackAlgorithm, "packing algorithm: "+strings.Join(atlas.PackAlgorithms(), ", "))
	f.IntVar(&flags.Width, "width", 0, "fixed canvas width (binpacking)")
	f.IntVar(&flags.Height, "height", 0, "fixed canvas height (binpacking)")
	f.BoolVar(&flags.Validate, "validate", false, "check the final layout for overlaps")

	// Runtime
	f.IntVar(&flags.Concurrency, "concurrency", 0, "max images decoded at once (0 = number of CPUs)")
	f.BoolVar(&flags.Refresh, "refresh", false, "ignore cached trims and layouts")

	return cmd
}

// runGenerate executes the pipeline and reports the outputs.
func (c *CLI) runGenerate(ctx context.Context, w io.Writer, opts pipeline.Options, flags cacheFlags) error {
	runner, err := c.newRunner(ctx, flags)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	spin := startSpinner(ctx, os.Stderr, "Packing sprites...")
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spin.fail("Generate failed")
		return err
	}
	spin.stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	out := newConsole(w)
	if res.Stats.SpriteCount == 0 {
		out.warn("No images matched %s", strings.Join(opts.Inputs, ", "))
		return nil
	}

	prog.done(fmt.Sprintf("Packed %d sprites", res.Stats.SpriteCount))
	out.success("Spritesheet complete")
	for _, f := range res.Files {
		out.file(f)
	}
	out.stats(res.Stats.SpriteCount, res.Canvas.Size, res.Stats.Efficiency, res.CacheInfo.LayoutHit)
	if opts.Format == export.FormatJSON || opts.Format == export.FormatTOML {
		out.hint("Inspect", appName+" inspect "+opts.Data)
	}
	return nil
}

// loadConfig decodes a TOML config file onto opts and returns its path.
// A missing default file is not an error; a missing explicit one is.
// Unknown keys are an error.
func loadConfig(path string, explicit bool, opts *pipeline.Options) (string, error) {
	if path == "" {
		return "", nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return "", nil
		}
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}

	md, err := toml.DecodeFile(path, opts)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return "", errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return path, nil
}

// applyFlags copies every flag the user set explicitly from flags onto opts.
func applyFlags(cmd *cobra.Command, flags pipeline.Options, opts *pipeline.Options) {
	setters := map[string]func(){
		"texture":          func() { opts.Texture = flags.Texture },
		"data":             func() { opts.Data = flags.Data },
		"format":           func() { opts.Format = flags.Format },
		"project":          func() { opts.ProjectRoot = flags.ProjectRoot },
		"trim":             func() { opts.Trim = flags.Trim },
		"tolerance":        func() { opts.Tolerance = flags.Tolerance },
		"padding":          func() { opts.Padding = flags.Padding },
		"divisible-by-two": func() { opts.DivisibleByTwo = flags.DivisibleByTwo },
		"square":           func() { opts.Square = flags.Square },
		"power-of-two":     func() { opts.PowerOfTwo = flags.PowerOfTwo },
		"max-size":         func() { opts.MaxTextureSize = flags.MaxTextureSize },
		"sort":             func() { opts.SortMethod = flags.SortMethod },
		"algorithm":        func() { opts.PackAlgorithm = flags.PackAlgorithm },
		"width":            func() { opts.Width = flags.Width },
		"height":           func() { opts.Height = flags.Height },
		"validate":         func() { opts.Validate = flags.Validate },
		"concurrency":      func() { opts.Concurrency = flags.Concurrency },
		"refresh":          func() { opts.Refresh = flags.Refresh },
	}
	for name, set := range setters {
		if cmd.Flags().Changed(name) {
			set()
		}
	}
}
