// Package buildinfo holds the version reported by --version and /healthz.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/hedin-hiervard/spritesheet-creator/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/hedin-hiervard/spritesheet-creator/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/hedin-hiervard/spritesheet-creator/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Anything left unset is filled from the module and VCS data the Go
// toolchain embeds, so "go install ...@v1.2.3" still reports v1.2.3.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func init() {
	if bi, ok := debug.ReadBuildInfo(); ok {
		fill(bi)
	}
}

// fill replaces placeholder values with those recorded in bi.
func fill(bi *debug.BuildInfo) {
	if v := bi.Main.Version; Version == "dev" && v != "" && v != "(devel)" {
		Version = v
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && Commit == "none":
			Commit = s.Value
		case s.Key == "vcs.time" && Date == "unknown":
			Date = s.Value
		}
	}
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
