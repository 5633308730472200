package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFill(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v1.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}

	tests := []struct {
		name                    string
		version, commit         string
		wantVersion, wantCommit string
	}{
		{"placeholders filled", "dev", "none", "v1.4.0", "abc123"},
		{"ldflags win", "v2.0.0", "deadbeef", "v2.0.0", "deadbeef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saved := [3]string{Version, Commit, Date}
			t.Cleanup(func() { Version, Commit, Date = saved[0], saved[1], saved[2] })

			Version, Commit, Date = tt.version, tt.commit, "unknown"
			fill(bi)
			if Version != tt.wantVersion || Commit != tt.wantCommit {
				t.Errorf("got %s/%s, want %s/%s", Version, Commit, tt.wantVersion, tt.wantCommit)
			}
			if Date != "2026-01-02T03:04:05Z" {
				t.Errorf("Date = %s", Date)
			}
		})
	}
}

func TestFillIgnoresDevelVersion(t *testing.T) {
	saved := Version
	t.Cleanup(func() { Version = saved })

	Version = "dev"
	fill(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if Version != "dev" {
		t.Errorf("Version = %s, want dev", Version)
	}
}

func TestTemplate(t *testing.T) {
	if got := Template(); !strings.HasPrefix(got, "{{.Name}} version "+Version+"\n") {
		t.Errorf("Template() = %q", got)
	}
}
