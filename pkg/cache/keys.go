package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// keyVersion is bumped whenever trim or layout output changes shape, so
// entries written by older builds are never read back.
const keyVersion = "v1"

// LayoutKeyOpts holds every option that changes a layout's geometry.
type LayoutKeyOpts struct {
	Trim           bool    `json:"trim"`
	Tolerance      float64 `json:"tolerance"`
	Padding        int     `json:"padding"`
	DivisibleByTwo bool    `json:"divisible_by_two"`
	Square         bool    `json:"square"`
	PowerOfTwo     bool    `json:"power_of_two"`
	MaxTextureSize int     `json:"max_texture_size"`
	SortMethod     string  `json:"sort_method"`
	PackAlgorithm  string  `json:"pack_algorithm"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
}

// Keyer builds cache keys. Implementations must be deterministic.
type Keyer interface {
	TrimKey(imageHash string, tolerance float64) string
	LayoutKey(spritesHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer produces keys of the form "<kind>:v1:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) TrimKey(imageHash string, tolerance float64) string {
	return digestKey("trim", imageHash, tolerance)
}

func (DefaultKeyer) LayoutKey(spritesHash string, opts LayoutKeyOpts) string {
	return digestKey("layout", spritesHash, opts)
}

// ScopedKeyer prepends a fixed scope to another Keyer's keys, so
// independent users of one backend never read each other's entries.
type ScopedKeyer struct {
	inner Keyer
	scope string
}

// NewScopedKeyer wraps inner (the default scheme when nil) with scope.
func NewScopedKeyer(inner Keyer, scope string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return ScopedKeyer{inner: inner, scope: scope}
}

func (k ScopedKeyer) TrimKey(imageHash string, tolerance float64) string {
	return k.scope + k.inner.TrimKey(imageHash, tolerance)
}

func (k ScopedKeyer) LayoutKey(spritesHash string, opts LayoutKeyOpts) string {
	return k.scope + k.inner.LayoutKey(spritesHash, opts)
}

// Hash returns the hex SHA-256 of data. Pixel buffers and sprite sets are
// identified by it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// digestKey hashes the JSON encoding of parts under kind. Every part is a
// string, number or LayoutKeyOpts, so encoding cannot fail.
func digestKey(kind string, parts ...any) string {
	h := sha256.New()
	_ = json.NewEncoder(h).Encode(parts)
	return kind + ":" + keyVersion + ":" + hex.EncodeToString(h.Sum(nil))
}
