package atlas

// Sort method names accepted by [Sort].
const (
	SortWidth   = "width"
	SortHeight  = "height"
	SortArea    = "area"
	SortMaxSide = "maxside"
)

// Packing algorithm names accepted by [Pack].
const (
	PackGrowingBinpacking = "growing-binpacking"
	PackBinpacking        = "binpacking"
	PackHorizontal        = "horizontal"
	PackVertical          = "vertical"
)

// Defaults used when an option is left at its zero value by [Options.WithDefaults].
const (
	DefaultSortMethod    = SortWidth
	DefaultPackAlgorithm = PackGrowingBinpacking
)

// Options configures one layout run. It is read-only for the engine: the
// canvas size the packer derives is returned, not written back.
//
// Width and Height are the fixed canvas for the strict binpacking
// algorithm and are ignored by the others. Zero MaxTextureSize means no
// limit.
type Options struct {
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
}

// WithDefaults returns a copy of o with empty method names filled in.
func (o Options) WithDefaults() Options {
	if o.SortMethod == "" {
		o.SortMethod = DefaultSortMethod
	}
	if o.PackAlgorithm == "" {
		o.PackAlgorithm = DefaultPackAlgorithm
	}
	return o
}
