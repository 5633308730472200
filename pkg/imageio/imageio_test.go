package imageio

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/atlas"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/errors"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
)

// writePNG writes a w x h transparent PNG with a filled rectangle.
func writePNG(t *testing.T, path string, w, h int, fill image.Rectangle, c color.Color) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := fill.Min.Y; y < fill.Max.Y; y++ {
		for x := fill.Min.X; x < fill.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hero.png")
	writePNG(t, path, 8, 6, image.Rect(2, 1, 5, 4), red)

	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b.Width() != 8 || b.Height() != 6 {
		t.Errorf("size = %dx%d, want 8x6", b.Width(), b.Height())
	}
	if b.ByteLength() != 8*6*4 {
		t.Errorf("ByteLength = %d", b.ByteLength())
	}
	if got := b.At(2, 1); got != color.Color(red) {
		t.Errorf("At(2,1) = %v, want red", got)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.png")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}

	junk := filepath.Join(dir, "junk.png")
	if err := os.WriteFile(junk, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(junk); !errors.Is(err, errors.ErrCodeDecodeFailed) {
		t.Errorf("junk file error = %v, want DECODE_FAILED", err)
	}
}

func TestBitmapCropAndHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hero.png")
	writePNG(t, path, 8, 6, image.Rect(2, 1, 5, 4), red)
	b, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	before := b.Hash()
	if b.Hash() != before {
		t.Error("Hash should be deterministic")
	}

	b.Crop(2, 1, 3, 3)
	if b.Width() != 3 || b.Height() != 3 {
		t.Errorf("cropped size = %dx%d, want 3x3", b.Width(), b.Height())
	}
	if got := b.At(0, 0); got != color.Color(red) {
		t.Errorf("cropped At(0,0) = %v, want red", got)
	}
	if b.Hash() == before {
		t.Error("Hash should change after Crop")
	}
}

func TestTrimThroughBitmap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hero.png")
	writePNG(t, path, 8, 6, image.Rect(2, 1, 5, 4), red)
	b, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	ss := atlas.Trim([]atlas.Sprite{atlas.FromImage("hero.png", b)}, 0)
	if want := (atlas.Sides{Left: 2, Right: 3, Up: 1, Down: 2}); ss[0].Margin != want {
		t.Errorf("Margin = %+v, want %+v", ss[0].Margin, want)
	}
	if b.Width() != 3 || b.Height() != 3 {
		t.Errorf("bitmap not cropped: %dx%d", b.Width(), b.Height())
	}
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i, w := range []int{3, 5, 7, 9} {
		p := filepath.Join(dir, string(rune('a'+i))+".png")
		writePNG(t, p, w, 2, image.Rect(0, 0, 1, 1), red)
		paths = append(paths, p)
	}

	bitmaps, err := LoadAll(context.Background(), paths, 2)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	for i, want := range []int{3, 5, 7, 9} {
		if bitmaps[i].Width() != want {
			t.Errorf("bitmap %d width = %d, want %d (order not preserved)", i, bitmaps[i].Width(), want)
		}
	}

	_, err = LoadAll(context.Background(), append(paths, filepath.Join(dir, "nope.png")), 0)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("LoadAll with missing file error = %v", err)
	}
}

func TestComposeAndSave(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 2, 2, image.Rect(0, 0, 2, 2), red)
	writePNG(t, filepath.Join(dir, "b.png"), 2, 2, image.Rect(0, 0, 2, 2), green)
	a, err := Load(filepath.Join(dir, "a.png"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Load(filepath.Join(dir, "b.png"))
	if err != nil {
		t.Fatal(err)
	}

	ss := []atlas.Sprite{atlas.FromImage("a", a), atlas.FromImage("b", b), atlas.NewSprite("ghost", 1, 1)}
	ss[0].Real.X, ss[0].Real.Y = 1, 1
	ss[1].Real.X, ss[1].Real.Y = 3, 0

	img := Compose(atlas.Size{Width: 6, Height: 4}, ss)
	if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 4 {
		t.Fatalf("canvas = %v", img.Bounds())
	}
	checks := []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 0, color.NRGBA{}},
		{1, 1, red},
		{2, 2, red},
		{3, 0, green},
		{4, 1, green},
		{5, 3, color.NRGBA{}},
	}
	for _, c := range checks {
		if got := img.NRGBAAt(c.x, c.y); got != c.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}

	out := filepath.Join(dir, "out", "atlas.png")
	if err := Save(out, img); err != nil {
		t.Fatalf("Save: %v", err)
	}
	back, err := Load(out)
	if err != nil {
		t.Fatal(err)
	}
	if back.Width() != 6 || back.At(3, 0) != color.Color(green) {
		t.Errorf("saved texture did not round trip")
	}

	if err := Save(filepath.Join(dir, "atlas.xyz"), img); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Save(.xyz) error = %v, want INVALID_FORMAT", err)
	}
}

func TestIsImage(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.png", true},
		{"a.PNG", true},
		{"dir/a.webp", true},
		{"a.jpeg", true},
		{"a.txt", false},
		{"png", false},
	}
	for _, tt := range tests {
		if got := IsImage(tt.path); got != tt.want {
			t.Errorf("IsImage(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
