// Package pkg provides the libraries behind the spritesheet texture packer.
//
// # Overview
//
// Spritesheet combines many small images into one texture and records where
// each image ended up, so a game engine can draw any of them from a single
// bound texture. The pkg directory is organized into three areas:
//
//  1. [atlas] - The layout engine (trim, pad, sort, pack, size the canvas)
//  2. [pipeline] - Orchestration (discover → load → layout → compose/export)
//  3. Supporting packages for pixels, discovery, formats, caching and serving
//
// # Architecture
//
// The data flow through a generate run:
//
//	Input patterns
//	     ↓
//	[source] package (expand globs into image files)
//	     ↓
//	[imageio] package (decode concurrently)
//	     ↓
//	[atlas] package (trim → pad → sort → pack → resolve canvas → finalize)
//	     ↓
//	[imageio] compose  ∥  [export] data files
//
// # Quick Start
//
// Lay out three sprites without touching pixels:
//
//	import "github.com/hedin-hiervard/spritesheet-creator/pkg/atlas"
//
//	sprites := []atlas.Sprite{
//	    atlas.NewSprite("hero", 34, 18),
//	    atlas.NewSprite("coin", 8, 8),
//	    atlas.NewSprite("door", 16, 32),
//	}
//	res, err := atlas.Build(sprites, atlas.Options{Padding: 1, PowerOfTwo: true})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Canvas.Width, res.Canvas.Height)
//
// # Main Packages
//
// [atlas] - Sprite model and every layout stage. Core code never logs and
// never decodes images; pixel access goes through the [atlas.Image]
// interface.
//
// [pipeline] - The [pipeline.Runner] used by the CLI and the layout service.
// Caches trim margins per image and whole layouts per sprite set.
//
// [imageio] - The pixel collaborator: decoding, cropping, composing and
// encoding textures.
//
// [source] - Input discovery from glob patterns and directories.
//
// [sheet] - The placement data format (JSON and TOML).
//
// [export] - Data file renderers: json, toml, godot3 and null.
//
// [cache] - File, Redis and null cache backends plus key derivation.
//
// [server] - The HTTP layout service.
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Stage, cache and HTTP hooks.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/atlas/...              # Layout engine only
//	go test -run Example                 # Examples only
//
// [atlas]: https://pkg.go.dev/github.com/hedin-hiervard/spritesheet-creator/pkg/atlas
// [pipeline]: https://pkg.go.dev/github.com/hedin-hiervard/spritesheet-creator/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/hedin-hiervard/spritesheet-creator/pkg/pipeline#Runner
// [atlas.Image]: https://pkg.go.dev/github.com/hedin-hiervard/spritesheet-creator/pkg/atlas#Image
// [imageio]: https://pkg.go.dev/github.com/hedin-hiervard/spritesheet-creator/pkg/imageio
// [source]: https://pkg.go.dev/github.com/hedin-hiervard/spritesheet-creator/pkg/source
// [sheet]: https://pkg.go.dev/github.com/hedin-hiervard/spritesheet-creator/pkg/sheet
// [export]: https://pkg.go.dev/github.com/hedin-hiervard/spritesheet-creator/pkg/export
// [cache]: https://pkg.go.dev/github.com/hedin-hiervard/spritesheet-creator/pkg/cache
// [server]: https://pkg.go.dev/github.com/hedin-hiervard/spritesheet-creator/pkg/server
// [errors]: https://pkg.go.dev/github.com/hedin-hiervard/spritesheet-creator/pkg/errors
// [observability]: https://pkg.go.dev/github.com/hedin-hiervard/spritesheet-creator/pkg/observability
package pkg
