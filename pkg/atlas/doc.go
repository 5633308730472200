// Package atlas computes texture-atlas layouts.
//
// Given a list of sprites with known pixel sizes, the engine decides where
// each one goes on a single output canvas and how large that canvas must
// be. Every stage is a function that takes the sprite slice and returns it,
// so stages compose in a fixed order:
//
//	Trim -> Pad -> Sort -> Pack -> ResolveCanvas -> Finalize [-> Validate]
//
// [Build] runs the whole chain. Only [Trim] reads pixels, through the
// [Image] interface; every later stage works on numeric geometry alone,
// which is why layouts can be computed for sprites that have no image
// attached.
//
// # Packing
//
// Four algorithms are available by name:
//
//   - growing-binpacking: a binary free-space tree that starts at the
//     first sprite's size and grows right or down as needed, keeping the
//     canvas close to square.
//   - binpacking: the same tree with a fixed canvas from Options.Width and
//     Options.Height; a sprite that does not fit is an error.
//   - horizontal: a single row.
//   - vertical: a single column.
//
// Results are deterministic for a given input order and options.
//
// # Errors
//
// All failures are *errors.Error values from the errors package with one
// of the layout codes (DOES_NOT_FIT, CANVAS_TOO_LARGE and so on). None are
// recoverable mid-run.
package atlas
