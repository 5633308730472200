package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/observability"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("packed") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("packed") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("packed") }, true},
		{"warn at error", log.ErrorLevel, func(l *log.Logger) { l.Warn("packed") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := strings.Contains(buf.String(), "packed"); got != tt.want {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.want, buf.String())
			}
		})
	}
}

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("packed")
	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(buf.String()) {
		t.Errorf("line should start with a %s timestamp: %q", logTimeFormat, buf.String())
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	prog.done("Packed 3 sprites")

	if !regexp.MustCompile(`Packed 3 sprites \(\d+ms\)`).MatchString(buf.String()) {
		t.Errorf("progress output = %q", buf.String())
	}
}

func TestSetLogLevel(t *testing.T) {
	defer observability.Reset()

	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug output at info level: %q", buf.String())
	}

	c.SetLogLevel(LogDebug)
	observability.Cache().OnCacheHit(context.Background(), "layout")
	if !strings.Contains(buf.String(), "cache hit") {
		t.Errorf("debug level should route cache hooks to the logger, got %q", buf.String())
	}
}
