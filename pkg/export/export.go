// Package export renders a finished [sheet.Sheet] into the data files a
// game engine or tool consumes.
//
// Each format is a renderer that turns a sheet into a list of [Artifact]
// values. Artifacts carry paths relative to the format's data root, so
// rendering stays pure and [Write] is the only step that touches disk.
//
// # Formats
//
//   - json: one sheet file, the [sheet.Marshal] encoding
//   - toml: one sheet file, the [sheet.MarshalTOML] encoding
//   - godot3: one AtlasTexture .tres resource per frame, laid out under the
//     data directory following each frame's sub-directory in the input
//   - null: nothing is written
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/errors"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/sheet"
)

// Supported export formats.
const (
	FormatJSON   = "json"
	FormatTOML   = "toml"
	FormatGodot3 = "godot3"
	FormatNull   = "null"
)

// DefaultFormat is used when no format is configured.
const DefaultFormat = FormatJSON

// Target describes where the outputs of a run go.
type Target struct {
	// Texture is the path the atlas image is written to.
	Texture string
	// Data is the data output path: a file for json and toml, a directory
	// for godot3.
	Data string
	// ProjectRoot anchors res:// paths in godot3 resources. Empty means
	// the working directory.
	ProjectRoot string
}

// Artifact is one rendered file.
type Artifact struct {
	Path string // relative to the data root, slash separated
	Data []byte
}

type format struct {
	render func(sheet.Sheet, Target) ([]Artifact, error)
	// dirOutput marks formats whose Data target is a directory.
	dirOutput bool
}

var formats = map[string]format{
	FormatJSON:   {render: renderJSON},
	FormatTOML:   {render: renderTOML},
	FormatGodot3: {render: renderGodot3, dirOutput: true},
	FormatNull:   {render: func(sheet.Sheet, Target) ([]Artifact, error) { return nil, nil }},
}

// Formats returns the supported format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ValidateFormat reports an INVALID_FORMAT error for unknown names.
func ValidateFormat(name string) error {
	if _, ok := formats[name]; !ok {
		return errors.New(errors.ErrCodeInvalidFormat,
			"unsupported export format %q (valid: %s)", name, strings.Join(Formats(), ", "))
	}
	return nil
}

// Render produces the artifacts for s in the named format.
func Render(name string, s sheet.Sheet, t Target) ([]Artifact, error) {
	if err := ValidateFormat(name); err != nil {
		return nil, err
	}
	return formats[name].render(s, t)
}

// Root returns the directory the artifacts of the named format are
// relative to.
func Root(name string, t Target) string {
	if formats[name].dirOutput {
		return t.Data
	}
	return filepath.Dir(t.Data)
}

// Export renders s and writes the result under the format's data root. It
// returns the written file paths.
func Export(name string, s sheet.Sheet, t Target) ([]string, error) {
	arts, err := Render(name, s, t)
	if err != nil {
		return nil, err
	}
	return Write(Root(name, t), arts)
}

// Write stores artifacts under dir, creating directories as needed.
// Artifact paths must be relative and stay inside dir.
func Write(dir string, arts []Artifact) ([]string, error) {
	if len(arts) == 0 {
		return nil, nil
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "output data path %s must be a directory", dir)
	}
	written := make([]string, 0, len(arts))
	for _, a := range arts {
		if err := errors.ValidatePath(a.Path); err != nil {
			return written, fmt.Errorf("artifact %q: %w", a.Path, err)
		}
		path := filepath.Join(dir, filepath.FromSlash(a.Path))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return written, fmt.Errorf("create %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, a.Data, 0644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func renderJSON(s sheet.Sheet, t Target) ([]Artifact, error) {
	s.Texture = textureRef(t)
	data, err := sheet.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncodeFailed, err, "encode json sheet")
	}
	return []Artifact{{Path: filepath.Base(t.Data), Data: data}}, nil
}

func renderTOML(s sheet.Sheet, t Target) ([]Artifact, error) {
	s.Texture = textureRef(t)
	data, err := sheet.MarshalTOML(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncodeFailed, err, "encode toml sheet")
	}
	return []Artifact{{Path: filepath.Base(t.Data), Data: data}}, nil
}

// textureRef is the texture path as seen from the data file, so the pair
// can be moved together.
func textureRef(t Target) string {
	if t.Texture == "" {
		return ""
	}
	rel, err := filepath.Rel(filepath.Dir(t.Data), t.Texture)
	if err != nil {
		return filepath.ToSlash(t.Texture)
	}
	return filepath.ToSlash(rel)
}
