package sheet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/atlas"
)

// Marshal encodes s as indented JSON.
func Marshal(s Sheet) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// MarshalTOML encodes s as TOML.
func MarshalTOML(s Sheet) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return nil, fmt.Errorf("marshal sheet: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a JSON sheet.
func Unmarshal(data []byte) (Sheet, error) {
	var s Sheet
	if err := json.Unmarshal(data, &s); err != nil {
		return Sheet{}, fmt.Errorf("unmarshal sheet: %w", err)
	}
	return s, check(s)
}

// UnmarshalTOML decodes a TOML sheet.
func UnmarshalTOML(data []byte) (Sheet, error) {
	var s Sheet
	if _, err := toml.Decode(string(data), &s); err != nil {
		return Sheet{}, fmt.Errorf("unmarshal sheet: %w", err)
	}
	return s, check(s)
}

// WriteFile writes s to path as TOML when the extension is .toml and as
// JSON otherwise.
func WriteFile(s Sheet, path string) error {
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = MarshalTOML(s)
	} else {
		data, err = Marshal(s)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a sheet written by WriteFile.
func ReadFile(path string) (Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Sheet{}, fmt.Errorf("read %s: %w", path, err)
	}
	if isTOML(path) {
		return UnmarshalTOML(data)
	}
	return Unmarshal(data)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// check rejects sheets whose frames fall outside the texture.
func check(s Sheet) error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("sheet has no canvas size (%dx%d)", s.Width, s.Height)
	}
	bounds := atlas.Rect{Width: s.Width, Height: s.Height}
	for _, f := range s.Frames {
		r := f.Rect()
		if r.X < 0 || r.Y < 0 || r.Right() > bounds.Right() || r.Bottom() > bounds.Bottom() {
			return fmt.Errorf("frame %s lies outside the %dx%d texture", f.Name, s.Width, s.Height)
		}
	}
	return nil
}
