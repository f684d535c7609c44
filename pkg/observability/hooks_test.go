package observability

import (
	"context"
	"testing"
	"time"
)

type countingEngineHooks struct {
	NoopEngineHooks
	layoutStarts int
}

func (h *countingEngineHooks) OnLayoutStart(ctx context.Context, commitCount int) {
	h.layoutStarts++
}

func TestHookRegistration(t *testing.T) {
	t.Cleanup(Reset)

	hooks := &countingEngineHooks{}
	SetEngineHooks(hooks)

	Engine().OnLayoutStart(context.Background(), 10)
	Engine().OnLayoutStart(context.Background(), 20)

	if hooks.layoutStarts != 2 {
		t.Errorf("layoutStarts = %d, want 2", hooks.layoutStarts)
	}
}

func TestNilHooksIgnored(t *testing.T) {
	t.Cleanup(Reset)

	SetEngineHooks(nil)
	if Engine() == nil {
		t.Error("nil registration should keep the previous hooks")
	}
}

func TestReset(t *testing.T) {
	SetEngineHooks(&countingEngineHooks{})
	Reset()

	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Reset should restore the no-op hooks")
	}
}

func TestNoopHooksAreSafe(t *testing.T) {
	ctx := context.Background()

	// Must not panic.
	Cache().OnCacheHit(ctx, "layout")
	Cache().OnCacheMiss(ctx, "flows")
	Cache().OnCacheSet(ctx, "layout", 128)
	Server().OnRequest(ctx, "POST", "/api/layout")
	Server().OnResponse(ctx, "POST", "/api/layout", 200, time.Millisecond)
	Engine().OnGroupingStart(ctx, 5)
	Engine().OnGroupingComplete(ctx, 2, time.Millisecond)
	Engine().OnLabelsStart(ctx, 3)
	Engine().OnLabelsComplete(ctx, 3, time.Millisecond)
	Engine().OnLayoutComplete(ctx, 1, 0, time.Millisecond)
}
