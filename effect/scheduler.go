package effect

// FrameFunc is called once per display refresh with a timestamp in ms
type FrameFunc func(timestamp float64)

// FrameID identifies a pending frame request. Zero is never issued.
type FrameID uint64

// Scheduler requests and cancels one-shot frame callbacks
type Scheduler interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

type pendingFrame struct {
	id FrameID
	fn FrameFunc
}

// FrameQueue is a Scheduler for hosts that drive their own loop.
// Callbacks requested while ticking wait for the next Tick.
type FrameQueue struct {
	next    FrameID
	pending []pendingFrame
	running []pendingFrame
}

// NewFrameQueue creates an empty queue
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// RequestFrame queues fn for the next Tick
func (q *FrameQueue) RequestFrame(fn FrameFunc) FrameID {
	q.next++
	q.pending = append(q.pending, pendingFrame{id: q.next, fn: fn})
	return q.next
}

// CancelFrame drops a request; unknown or already-run ids are ignored
func (q *FrameQueue) CancelFrame(id FrameID) {
	for i, f := range q.pending {
		if f.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	// a callback may cancel a sibling from the same batch
	for i := range q.running {
		if q.running[i].id == id {
			q.running[i].fn = nil
			return
		}
	}
}

// Pending returns the number of queued callbacks
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// Tick runs every callback queued before the call
func (q *FrameQueue) Tick(timestamp float64) {
	q.running, q.pending = q.pending, nil
	for i := range q.running {
		fn := q.running[i].fn
		if fn == nil {
			continue
		}
		q.running[i].fn = nil
		fn(timestamp)
	}
	q.running = nil
}
