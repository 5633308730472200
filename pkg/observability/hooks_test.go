package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNopHandlesEveryEvent(t *testing.T) {
	ctx := context.Background()
	var n Nop

	var p PipelineHooks = n
	p.OnStageStart(ctx, StageTrim, 12)
	p.OnStageComplete(ctx, StageTrim, 12, time.Second, nil)
	p.OnCanvasResolved(ctx, 256, 128, 0.75)

	var c CacheHooks = n
	c.OnCacheHit(ctx, "trim")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "layout", 1024)

	var h HTTPHooks = n
	h.OnRequest(ctx, "POST", "/v1/layout")
	h.OnResponse(ctx, "POST", "/v1/layout", 200, time.Second)
	h.OnError(ctx, "POST", "/v1/layout", nil)
}

func TestRegister(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Pipeline().(Nop); !ok {
		t.Errorf("default pipeline hooks = %T, want Nop", Pipeline())
	}

	pipe := &testPipelineHooks{}
	Register(Hooks{Pipeline: pipe})
	if Pipeline() != pipe {
		t.Error("Register should install pipeline hooks")
	}
	if _, ok := Cache().(Nop); !ok {
		t.Error("unset categories should stay Nop")
	}

	cache := &testCacheHooks{}
	Register(Hooks{Cache: cache})
	if Cache() != cache {
		t.Error("Register should install cache hooks")
	}
	if Pipeline() != pipe {
		t.Error("a nil field must keep the earlier registration")
	}

	Reset()
	if _, ok := Pipeline().(Nop); !ok {
		t.Error("Reset should restore Nop")
	}
	if _, ok := HTTP().(Nop); !ok {
		t.Error("Reset should restore Nop")
	}
}

func TestRegisterConcurrent(t *testing.T) {
	Reset()
	defer Reset()

	pipe, cache, web := &testPipelineHooks{}, &testCacheHooks{}, &testHTTPHooks{}
	var wg sync.WaitGroup
	for _, h := range []Hooks{{Pipeline: pipe}, {Cache: cache}, {HTTP: web}} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Register(h)
		}()
	}
	wg.Wait()

	if Pipeline() != pipe || Cache() != cache || HTTP() != web {
		t.Error("concurrent registrations should all be kept")
	}
}

func TestLogHooks(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	h.Register()

	ctx := context.Background()
	Pipeline().OnStageComplete(ctx, StageLayout, 3, time.Millisecond, errors.New("boom"))
	Cache().OnCacheHit(ctx, "trim")
	HTTP().OnResponse(ctx, "GET", "/healthz", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"stage failed", "boom", "cache hit", "status=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
	if HTTP() != h {
		t.Error("Register should install HTTP hooks")
	}
}

// Test implementations
type testPipelineHooks struct {
	Nop
	_ int
}
type testCacheHooks struct {
	Nop
	_ int
}
type testHTTPHooks struct {
	Nop
	_ int
}
