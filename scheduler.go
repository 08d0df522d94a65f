package art

import (
	"slices"
	"time"
)

// CallbackID identifies a scheduled deferred callback.
type CallbackID uint64

// Deadline is passed to deferred callbacks.
type Deadline struct {
	// DidTimeout is true when the callback runs because the scheduler is
	// flushing rather than because idle time was available.
	DidTimeout bool

	remaining func() time.Duration
}

// TimeRemaining reports how much of the idle budget is left.
func (d Deadline) TimeRemaining() time.Duration {
	if d.remaining == nil {
		return 0
	}
	return max(d.remaining(), 0)
}

// Scheduler registers deferred work and provides a monotonic clock. The
// diffing engine owns the policy; the host only forwards to it.
type Scheduler interface {
	ScheduleDeferred(cb func(Deadline)) CallbackID
	CancelDeferred(id CallbackID)
	Now() time.Duration
}

type deferred struct {
	id CallbackID
	cb func(Deadline)
}

// FrameScheduler queues deferred callbacks and runs them from a frame loop
// via RunIdle. It is not safe for concurrent use.
type FrameScheduler struct {
	start  time.Time
	clock  func() time.Time
	nextID CallbackID
	queue  []deferred
}

// NewFrameScheduler returns a scheduler whose Now counts from creation.
func NewFrameScheduler() *FrameScheduler {
	return newFrameScheduler(time.Now)
}

func newFrameScheduler(clock func() time.Time) *FrameScheduler {
	return &FrameScheduler{start: clock(), clock: clock}
}

// ScheduleDeferred queues cb and returns its id.
func (s *FrameScheduler) ScheduleDeferred(cb func(Deadline)) CallbackID {
	s.nextID++
	s.queue = append(s.queue, deferred{id: s.nextID, cb: cb})
	return s.nextID
}

// CancelDeferred drops a queued callback. Unknown ids are ignored.
func (s *FrameScheduler) CancelDeferred(id CallbackID) {
	s.queue = slices.DeleteFunc(s.queue, func(d deferred) bool { return d.id == id })
}

// Now returns the time elapsed since the scheduler was created.
func (s *FrameScheduler) Now() time.Duration {
	return s.clock().Sub(s.start)
}

// Pending returns the number of queued callbacks.
func (s *FrameScheduler) Pending() int { return len(s.queue) }

// RunIdle runs queued callbacks in FIFO order until budget is spent. The
// first callback always runs. A budget <= 0 flushes everything with
// DidTimeout set. Callbacks scheduled while running wait for the next call.
// Returns the number of callbacks run.
func (s *FrameScheduler) RunIdle(budget time.Duration) int {
	flush := budget <= 0
	end := s.clock().Add(budget)
	dl := Deadline{
		DidTimeout: flush,
		remaining:  func() time.Duration { return end.Sub(s.clock()) },
	}

	last := s.nextID
	ran := 0
	for len(s.queue) > 0 && s.queue[0].id <= last {
		if ran > 0 && !flush && !s.clock().Before(end) {
			break
		}
		d := s.queue[0]
		s.queue = s.queue[1:]
		d.cb(dl)
		ran++
	}
	return ran
}
