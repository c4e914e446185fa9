package native

import "sync"

// Scheduler defers a callback to the next rendering-frame boundary,
// after the current synchronous event-handling turn. The host supplies
// an implementation bridging its frame clock.
type Scheduler interface {
	Schedule(fn func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(fn func())

// Schedule implements Scheduler.
func (f SchedulerFunc) Schedule(fn func()) {
	f(fn)
}

// ManualScheduler queues callbacks until Flush is called. Hosts without
// a frame clock, the replay tool, and tests pump it explicitly; a Flush
// stands in for one frame boundary.
type ManualScheduler struct {
	mu    sync.Mutex
	queue []func()
}

// NewManualScheduler returns an empty manual scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Schedule implements Scheduler.
func (s *ManualScheduler) Schedule(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.queue = append(s.queue, fn)
	s.mu.Unlock()
}

// Flush runs every callback queued before the call, in order.
// Callbacks scheduled during a flush wait for the next one.
func (s *ManualScheduler) Flush() {
	s.mu.Lock()
	pending := s.queue
	s.queue = nil
	s.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

// Pending returns the number of queued callbacks.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}
