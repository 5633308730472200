package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. It implements
// all three hook interfaces.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log through logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{Logger: logger}
}

func (h *LogHooks) OnStageStart(_ context.Context, stage string, sprites int) {
	h.Logger.Debug("stage started", "stage", stage, "sprites", sprites)
}

func (h *LogHooks) OnStageComplete(_ context.Context, stage string, sprites int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("stage failed", "stage", stage, "sprites", sprites, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("stage done", "stage", stage, "sprites", sprites, "duration", d)
}

func (h *LogHooks) OnCanvasResolved(_ context.Context, width, height int, efficiency float64) {
	h.Logger.Debug("canvas resolved", "width", width, "height", height, "efficiency", efficiency)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, path string, err error) {
	h.Logger.Debug("request failed", "method", method, "path", path, "err", err)
}

// Register installs h for pipeline, cache and HTTP events.
func (h *LogHooks) Register() {
	Register(Hooks{Pipeline: h, Cache: h, HTTP: h})
}
