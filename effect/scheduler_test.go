package effect

import "testing"

func TestFrameQueueDefersRequestsMadeDuringTick(t *testing.T) {
	q := NewFrameQueue()
	var stamps []float64

	var loop FrameFunc
	loop = func(ts float64) {
		stamps = append(stamps, ts)
		q.RequestFrame(loop)
	}
	q.RequestFrame(loop)

	q.Tick(16)
	q.Tick(32)
	q.Tick(48)

	if len(stamps) != 3 || stamps[0] != 16 || stamps[2] != 48 {
		t.Errorf("Expected one callback per tick, got %v", stamps)
	}
	if q.Pending() != 1 {
		t.Errorf("Expected one pending request, got %d", q.Pending())
	}
}

func TestFrameQueueCancel(t *testing.T) {
	q := NewFrameQueue()
	called := false
	id := q.RequestFrame(func(float64) { called = true })
	if id == 0 {
		t.Fatal("Expected a non-zero frame id")
	}

	q.CancelFrame(id)
	q.CancelFrame(id + 100) // unknown ids are ignored
	q.Tick(16)

	if called {
		t.Error("Expected cancelled callback not to run")
	}
	if q.Pending() != 0 {
		t.Errorf("Expected empty queue, got %d", q.Pending())
	}
}

func TestFrameQueueCancelSiblingDuringTick(t *testing.T) {
	q := NewFrameQueue()
	var second FrameID
	ran := 0

	q.RequestFrame(func(float64) {
		ran++
		q.CancelFrame(second)
	})
	second = q.RequestFrame(func(float64) { ran++ })

	q.Tick(16)
	if ran != 1 {
		t.Errorf("Expected the sibling to be cancelled, got %d callbacks", ran)
	}
}
