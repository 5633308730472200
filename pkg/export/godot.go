package export

import (
	"bytes"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/errors"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/sheet"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/source"
)

var godot3Template = template.Must(template.New("godot3").Parse(`[gd_resource type="AtlasTexture" load_steps=2 format=2]

[ext_resource path="{{.TexturePath}}" type="Texture" id=1]

[resource]
atlas = ExtResource( 1 )
region = Rect2( {{.X}}, {{.Y}}, {{.Width}}, {{.Height}} )
margin = Rect2( {{.Margin.X}}, {{.Margin.Y}}, {{.Margin.Width}}, {{.Margin.Height}} )
`))

type godotRect struct {
	X, Y, Width, Height int
}

type godotResource struct {
	TexturePath         string
	X, Y, Width, Height int
	Margin              godotRect
}

func renderGodot3(s sheet.Sheet, t Target) ([]Artifact, error) {
	texPath, err := GodotResourcePath(t.ProjectRoot, t.Texture)
	if err != nil {
		return nil, err
	}

	arts := make([]Artifact, 0, len(s.Frames))
	seen := make(map[string]string, len(s.Frames))
	for _, f := range s.Frames {
		res := godotResource{
			TexturePath: texPath,
			X:           f.X,
			Y:           f.Y,
			Width:       f.Width,
			Height:      f.Height,
			Margin: godotRect{
				X:      f.Margin.Left,
				Y:      f.Margin.Up,
				Width:  f.Margin.Horizontal(),
				Height: f.Margin.Vertical(),
			},
		}
		var buf bytes.Buffer
		if err := godot3Template.Execute(&buf, res); err != nil {
			return nil, errors.Wrap(errors.ErrCodeEncodeFailed, err, "render %s", f.Name)
		}

		name := resourceName(f)
		if prev, ok := seen[name]; ok {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"%s and %s both export to %s", prev, f.Name, name)
		}
		seen[name] = f.Name
		arts = append(arts, Artifact{Path: name, Data: buf.Bytes()})
	}
	return arts, nil
}

// resourceName places a frame's .tres under the sub-directory it was found
// in, relative to the non-wildcard part of its pattern.
func resourceName(f sheet.Frame) string {
	e := source.Entry{Pattern: f.Pattern, Path: f.Name}
	if f.Pattern == "" {
		return e.Base() + ".tres"
	}
	return path.Join(e.RelDir(), e.Base()+".tres")
}

// GodotResourcePath converts a texture path into a res:// path relative to
// projectRoot. It fails when the texture lies outside the project.
func GodotResourcePath(projectRoot, texture string) (string, error) {
	if projectRoot == "" {
		projectRoot = "."
	}
	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve project root")
	}
	tex, err := filepath.Abs(texture)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve texture path")
	}
	rel, err := filepath.Rel(root, tex)
	if err != nil || strings.HasPrefix(rel, ".") {
		return "", errors.New(errors.ErrCodeInvalidPath,
			"texture output path %s is outside project dir %s", texture, projectRoot)
	}
	return "res://" + filepath.ToSlash(rel), nil
}
