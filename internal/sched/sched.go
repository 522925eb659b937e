// internal/sched/sched.go
//
// Effect scheduling for the game core.
// Responsibilities:
//   - Scheduler: the "run this action after a delay" capability the card and board
//     packages use for flip completions and phase timers.
//   - Virtual: a deterministic, manually advanced implementation.
//
// Notes:
//   - Virtual never spawns goroutines; callbacks run on whoever calls Advance.
//     The HTTP session advances it to wall-clock elapsed time on each request,
//     tests advance it explicitly.
//   - Callbacks due at the same instant fire in the order they were scheduled.

package sched

import (
	"container/heap"
	"time"
)

// Scheduler enqueues an action to run once d has elapsed.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Virtual is a Scheduler driven by an explicit virtual clock.
// It is not safe for concurrent use.
type Virtual struct {
	now   time.Duration
	seq   uint64
	queue timerQueue
}

// NewVirtual returns a Virtual scheduler at time zero.
func NewVirtual() *Virtual {
	return &Virtual{}
}

// Now reports the current virtual time.
func (v *Virtual) Now() time.Duration { return v.now }

// Pending reports how many callbacks are still queued.
func (v *Virtual) Pending() int { return len(v.queue) }

// After schedules fn at Now()+d. Negative delays are treated as zero.
func (v *Virtual) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	v.seq++
	heap.Push(&v.queue, &timer{due: v.now + d, seq: v.seq, fn: fn})
}

// Advance moves the clock forward by d, firing every callback that comes due.
func (v *Virtual) Advance(d time.Duration) {
	v.AdvanceTo(v.now + d)
}

// AdvanceTo moves the clock to t, firing every callback due at or before t.
// Times in the past are ignored.
func (v *Virtual) AdvanceTo(t time.Duration) {
	for len(v.queue) > 0 && v.queue[0].due <= t {
		next := heap.Pop(&v.queue).(*timer)
		if next.due > v.now {
			v.now = next.due
		}
		next.fn()
	}
	if t > v.now {
		v.now = t
	}
}

// Drain fires every queued callback, including ones scheduled while draining.
func (v *Virtual) Drain() {
	for len(v.queue) > 0 {
		v.AdvanceTo(v.queue[0].due)
	}
}

type timer struct {
	due time.Duration
	seq uint64
	fn  func()
}

// timerQueue is a min-heap ordered by (due, seq).
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }
func (q timerQueue) Less(i, j int) bool {
	if q[i].due == q[j].due {
		return q[i].seq < q[j].seq
	}
	return q[i].due < q[j].due
}
func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *timerQueue) Push(x any)   { *q = append(*q, x.(*timer)) }
func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}
