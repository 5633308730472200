package sheet

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/atlas"
)

func testResult(t *testing.T) (atlas.Result, atlas.Options) {
	t.Helper()
	opts := atlas.Options{Padding: 1, DivisibleByTwo: true, PowerOfTwo: true}
	sprites := []atlas.Sprite{
		atlas.NewSprite("sprites/hero.png", 5, 7),
		atlas.NewSprite("sprites/coin.png", 3, 3),
	}
	sprites[0].Margin = atlas.Sides{Left: 2, Right: 1, Up: 3}
	sprites[0].Pattern = "sprites/*.png"
	res, err := atlas.Layout(sprites, opts)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	return res, opts.WithDefaults()
}

func TestFromResult(t *testing.T) {
	res, opts := testResult(t)
	s := FromResult("atlas.png", res, opts)

	if s.Texture != "atlas.png" || s.Width != res.Canvas.Width || s.Height != res.Canvas.Height {
		t.Errorf("header = %s %dx%d", s.Texture, s.Width, s.Height)
	}
	if len(s.Frames) != 2 {
		t.Fatalf("frames = %d, want 2", len(s.Frames))
	}

	hero, ok := s.Frame("sprites/hero.png")
	if !ok {
		t.Fatal("hero frame missing")
	}
	if hero.Width != 5 || hero.Height != 7 {
		t.Errorf("hero size = %dx%d", hero.Width, hero.Height)
	}
	if hero.SourceWidth != 8 || hero.SourceHeight != 10 {
		t.Errorf("hero source size = %dx%d, want 8x10", hero.SourceWidth, hero.SourceHeight)
	}
	if hero.Pattern != "sprites/*.png" {
		t.Errorf("hero pattern = %q", hero.Pattern)
	}
	if _, ok := s.Frame("missing.png"); ok {
		t.Error("Frame(missing) should report false")
	}
}

func TestSpritesRoundTrip(t *testing.T) {
	res, opts := testResult(t)
	s := FromResult("atlas.png", res, opts)

	got := s.Sprites()
	for i, want := range res.Sprites {
		g := got[i]
		if g.Name != want.Name || g.Real != want.Real || g.Padded != want.Padded ||
			g.Margin != want.Margin || g.Padding != want.Padding {
			t.Errorf("sprite %d = %+v, want %+v", i, g, want)
		}
	}
	if err := atlas.Validate(got, atlas.Size{Width: s.Width, Height: s.Height}); err != nil {
		t.Errorf("rebuilt sprites invalid: %v", err)
	}
}

func TestFileRoundTrip(t *testing.T) {
	res, opts := testResult(t)
	s := FromResult("atlas.png", res, opts)

	for _, name := range []string{"atlas.json", "atlas.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := WriteFile(s, path); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			back, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if back.Width != s.Width || back.Height != s.Height || back.Texture != s.Texture {
				t.Errorf("header = %+v", back)
			}
			if back.Options != s.Options {
				t.Errorf("options = %+v, want %+v", back.Options, s.Options)
			}
			if len(back.Frames) != len(s.Frames) {
				t.Fatalf("frames = %d, want %d", len(back.Frames), len(s.Frames))
			}
			for i := range s.Frames {
				if back.Frames[i] != s.Frames[i] {
					t.Errorf("frame %d = %+v, want %+v", i, back.Frames[i], s.Frames[i])
				}
			}
		})
	}
}

func TestTOMLLayout(t *testing.T) {
	res, opts := testResult(t)
	data, err := MarshalTOML(FromResult("atlas.png", res, opts))
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{`texture = "atlas.png"`, "[[frames]]", "[frames.margin]", "[options]"} {
		if !strings.Contains(text, want) {
			t.Errorf("TOML output missing %q:\n%s", want, text)
		}
	}
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{"},
		{"no size", `{"texture":"a.png","frames":[]}`},
		{"frame outside", `{"texture":"a.png","width":4,"height":4,"frames":[{"name":"x","x":3,"y":0,"width":2,"height":2}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Unmarshal([]byte(tt.data)); err == nil {
				t.Error("Unmarshal should fail")
			}
		})
	}
}

func TestReadFileNotFound(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile(missing) error = %v", err)
	}
}
