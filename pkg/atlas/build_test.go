package atlas

import (
	"fmt"
	"testing"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/errors"
)

func TestBuild(t *testing.T) {
	hero := newMemImage(10, 10, transparent)
	hero.fillRect(Rect{X: 2, Y: 2, Width: 5, Height: 6}, red)
	coin := newMemImage(4, 4, blue)

	opts := Options{
		Trim:           true,
		Padding:        1,
		DivisibleByTwo: true,
		PowerOfTwo:     true,
		Validate:       true,
	}
	res, err := Build([]Sprite{FromImage("coin.png", coin), FromImage("hero.png", hero)}, opts)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if res.Canvas.Width&(res.Canvas.Width-1) != 0 || res.Canvas.Height&(res.Canvas.Height-1) != 0 {
		t.Errorf("canvas %dx%d is not a power of two", res.Canvas.Width, res.Canvas.Height)
	}
	if res.Sprites[0].Name != "hero.png" {
		t.Errorf("first sprite = %s, want the widest (hero.png)", res.Sprites[0].Name)
	}

	for _, s := range res.Sprites {
		if s.Real.X != s.Padded.X+s.Padding.Left || s.Real.Y != s.Padded.Y+s.Padding.Up {
			t.Errorf("%s: real (%d,%d) not offset from padded (%d,%d) by %+v",
				s.Name, s.Real.X, s.Real.Y, s.Padded.X, s.Padded.Y, s.Padding)
		}
		if s.Padded.Width%2 != 0 || s.Padded.Height%2 != 0 {
			t.Errorf("%s: padded %dx%d not even", s.Name, s.Padded.Width, s.Padded.Height)
		}
		if s.Real.Right() > res.Canvas.Width || s.Real.Bottom() > res.Canvas.Height {
			t.Errorf("%s: real %+v outside canvas", s.Name, s.Real)
		}
	}

	byName := map[string]Sprite{}
	for _, s := range res.Sprites {
		byName[s.Name] = s
	}
	if h := byName["hero.png"]; h.Real.Width != 5 || h.Real.Height != 6 || h.Margin != (Sides{Left: 2, Right: 3, Up: 2, Down: 2}) {
		t.Errorf("hero.png = %dx%d margin %+v", h.Real.Width, h.Real.Height, h.Margin)
	}
	if c := byName["coin.png"]; c.Real.Width != 1 || c.Real.Height != 1 {
		t.Errorf("uniform coin.png trimmed to %dx%d, want 1x1", c.Real.Width, c.Real.Height)
	}
}

func TestBuildWithoutTrim(t *testing.T) {
	img := newMemImage(6, 6, transparent)
	res, err := Build([]Sprite{FromImage("blank.png", img)}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	s := res.Sprites[0]
	if s.Real.Width != 6 || s.Margin != (Sides{}) {
		t.Errorf("untrimmed sprite = %+v", s)
	}
	if res.Canvas.Size != (Size{6, 6}) {
		t.Errorf("canvas = %+v, want 6x6", res.Canvas.Size)
	}
}

func TestBuildScenarios(t *testing.T) {
	tests := []struct {
		name  string
		sizes [][2]int
		opts  Options
		code  errors.Code
		max   Size
	}{
		{
			name:  "growing stays compact",
			sizes: [][2]int{{2, 2}, {2, 2}, {4, 2}},
			opts:  Options{PackAlgorithm: PackGrowingBinpacking},
			max:   Size{4, 4},
		},
		{
			name:  "strict overflow",
			sizes: [][2]int{{20, 20}},
			opts:  Options{PackAlgorithm: PackBinpacking, Width: 16, Height: 16},
			code:  errors.ErrCodeDoesNotFit,
		},
		{
			name:  "canvas too large",
			sizes: [][2]int{{128, 128}, {128, 128}, {128, 128}, {128, 128}},
			opts:  Options{MaxTextureSize: 128},
			code:  errors.ErrCodeCanvasTooLarge,
		},
		{
			name:  "unknown sort",
			sizes: [][2]int{{1, 1}},
			opts:  Options{SortMethod: "random"},
			code:  errors.ErrCodeUnsupportedSortMethod,
		},
		{
			name:  "unknown algorithm",
			sizes: [][2]int{{1, 1}},
			opts:  Options{PackAlgorithm: "maxrects"},
			code:  errors.ErrCodeUnsupportedPackAlgorithm,
		},
		{
			name:  "negative padding",
			sizes: [][2]int{{1, 1}},
			opts:  Options{Padding: -1},
			code:  errors.ErrCodeInvalidInput,
		},
		{
			name:  "padding over limit",
			sizes: [][2]int{{1, 1}},
			opts:  Options{Padding: 1 << 62},
			code:  errors.ErrCodeInvalidInput,
		},
		{
			name:  "sprite over limit",
			sizes: [][2]int{{1<<62 + 1, 1}},
			opts:  Options{PowerOfTwo: true},
			code:  errors.ErrCodeCanvasTooLarge,
		},
		{
			name:  "empty sprite",
			sizes: [][2]int{{0, 4}},
			code:  errors.ErrCodeInvalidInput,
		},
		{
			name: "nothing to pack",
			code: errors.ErrCodeIndeterminateCanvasSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Build(makeSprites(tt.sizes...), tt.opts)
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Errorf("Build() error = %v, want %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			if res.Canvas.Width > tt.max.Width || res.Canvas.Height > tt.max.Height {
				t.Errorf("canvas %+v larger than %+v", res.Canvas.Size, tt.max)
			}
			assertNoOverlap(t, res.Sprites, res.Canvas.Size)
		})
	}
}

func TestValidate(t *testing.T) {
	at := func(name string, x, y, w, h int) Sprite {
		return Sprite{Name: name, Padded: Rect{X: x, Y: y, Width: w, Height: h}}
	}
	tests := []struct {
		name    string
		sprites []Sprite
		wantErr bool
	}{
		{"touching edges", []Sprite{at("a", 0, 0, 2, 2), at("b", 2, 0, 2, 2), at("c", 0, 2, 4, 2)}, false},
		{"overlap", []Sprite{at("a", 0, 0, 3, 3), at("b", 2, 2, 2, 2)}, true},
		{"contained", []Sprite{at("a", 0, 0, 4, 4), at("b", 1, 1, 1, 1)}, true},
		{"out of bounds", []Sprite{at("a", 3, 0, 2, 2)}, true},
		{"negative", []Sprite{at("a", -1, 0, 2, 2)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.sprites, Size{4, 4})
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeOverlapViolation) {
				t.Errorf("Validate() code = %s, want OVERLAP_VIOLATION", errors.GetCode(err))
			}
		})
	}
}

func TestEfficiency(t *testing.T) {
	res, err := Build(makeSprites([2]int{2, 2}, [2]int{2, 2}), Options{PackAlgorithm: PackHorizontal, PowerOfTwo: true, Square: true})
	if err != nil {
		t.Fatal(err)
	}
	// 8 used pixels on a 4x4 canvas.
	if got := Efficiency(res); got != 0.5 {
		t.Errorf("Efficiency() = %v, want 0.5", got)
	}
	if got := Efficiency(Result{}); got != 0 {
		t.Errorf("Efficiency(empty) = %v, want 0", got)
	}
}

func ExampleBuild_growing() {
	sprites := []Sprite{
		NewSprite("wall.png", 4, 2),
		NewSprite("coin.png", 2, 2),
		NewSprite("gem.png", 2, 2),
	}
	res, err := Build(sprites, Options{PackAlgorithm: PackGrowingBinpacking})
	if err != nil {
		panic(err)
	}
	fmt.Printf("canvas %dx%d\n", res.Canvas.Width, res.Canvas.Height)
	for _, s := range res.Sprites {
		fmt.Printf("%s at %d,%d\n", s.Name, s.Real.X, s.Real.Y)
	}
	// Output:
	// canvas 4x4
	// wall.png at 0,0
	// coin.png at 0,2
	// gem.png at 2,2
}
