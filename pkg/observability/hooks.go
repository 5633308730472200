// Package observability lets the binary observe pipeline stages, cache
// traffic and served requests without the library packages depending on
// any metrics or tracing backend.
//
// Libraries only emit events:
//
//	observability.Pipeline().OnStageStart(ctx, observability.StageTrim, len(sprites))
//
// and main decides where they go:
//
//	observability.Register(observability.Hooks{Cache: myCacheMetrics})
//
// Until something is registered every event is dropped.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Stage names passed to [PipelineHooks].
const (
	StageDiscover = "discover"
	StageLoad     = "load"
	StageTrim     = "trim"
	StageLayout   = "layout"
	StageCompose  = "compose"
	StageExport   = "export"
)

// PipelineHooks receives pipeline stage events.
type PipelineHooks interface {
	OnStageStart(ctx context.Context, stage string, sprites int)
	OnStageComplete(ctx context.Context, stage string, sprites int, duration time.Duration, err error)

	// OnCanvasResolved reports the final texture size and the share of it
	// covered by packed footprints (0..1).
	OnCanvasResolved(ctx context.Context, width, height int, efficiency float64)
}

// CacheHooks receives trim and layout cache events. keyType is "trim" or
// "layout".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives layout service request events.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, path string, err error)
}

// Nop implements every hook interface and ignores all events. Embed it
// to handle only some events.
type Nop struct{}

func (Nop) OnStageStart(context.Context, string, int)                          {}
func (Nop) OnStageComplete(context.Context, string, int, time.Duration, error) {}
func (Nop) OnCanvasResolved(context.Context, int, int, float64)                {}
func (Nop) OnCacheHit(context.Context, string)                                 {}
func (Nop) OnCacheMiss(context.Context, string)                                {}
func (Nop) OnCacheSet(context.Context, string, int)                            {}
func (Nop) OnRequest(context.Context, string, string)                          {}
func (Nop) OnResponse(context.Context, string, string, int, time.Duration)     {}
func (Nop) OnError(context.Context, string, string, error)                     {}

// Hooks is the set of handlers in effect. A nil field keeps whatever was
// registered for that category before.
type Hooks struct {
	Pipeline PipelineHooks
	Cache    CacheHooks
	HTTP     HTTPHooks
}

var (
	defaults = Hooks{Pipeline: Nop{}, Cache: Nop{}, HTTP: Nop{}}
	current  atomic.Pointer[Hooks]
)

func active() *Hooks {
	if h := current.Load(); h != nil {
		return h
	}
	return &defaults
}

// Register installs the non-nil handlers of h. It is safe to call
// concurrently with event emission, but is meant for program startup.
func Register(h Hooks) {
	for {
		old := current.Load()
		next := *active()
		if h.Pipeline != nil {
			next.Pipeline = h.Pipeline
		}
		if h.Cache != nil {
			next.Cache = h.Cache
		}
		if h.HTTP != nil {
			next.HTTP = h.HTTP
		}
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Reset drops every registered handler.
func Reset() { current.Store(nil) }

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return active().Pipeline }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return active().Cache }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return active().HTTP }
