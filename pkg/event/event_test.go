package event_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/shashiranjanraj/lumina/pkg/event"
)

func TestFireSynchronous(t *testing.T) {
	event.Flush()
	defer event.Flush()

	var calls atomic.Int64
	event.Listen("order.placed", func(payload interface{}) {
		calls.Add(1)
		if payload.(string) != "ORDER-1" {
			t.Errorf("unexpected payload: %v", payload)
		}
	})
	event.Listen("order.placed", func(interface{}) { calls.Add(1) })

	event.Fire("order.placed", "ORDER-1")

	if got := calls.Load(); got != 2 {
		t.Errorf("expected 2 handler calls, got %d", got)
	}
}

func TestFireUnknownEventIsNoOp(t *testing.T) {
	event.Flush()
	event.Fire("nobody.listens", nil)
}

func TestFireAsync(t *testing.T) {
	event.Flush()
	defer event.Flush()

	done := make(chan struct{})
	event.Listen("async.event", func(interface{}) { close(done) })

	event.FireAsync("async.event", nil)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("async handler never ran")
	}
}

func TestFlushRemovesListeners(t *testing.T) {
	var calls atomic.Int64
	event.Listen("x", func(interface{}) { calls.Add(1) })
	event.Flush()
	event.Fire("x", nil)

	if calls.Load() != 0 {
		t.Error("expected no calls after Flush")
	}
}
