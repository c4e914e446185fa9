package composition

import (
	"io"
	"log/slog"
	"sync"

	"github.com/dshills/imeflow/internal/event"
	"github.com/dshills/imeflow/internal/native"
)

// Tracker owns the composition lifecycle state: the composing flag, a
// monotonically increasing generation counter, and the pending-text
// buffer. It is created once per editor attachment and mutated only by
// the lifecycle notifications and the deferred resets it schedules.
type Tracker struct {
	mu         sync.Mutex
	composing  bool
	generation uint64
	pending    string

	scheduler native.Scheduler
	bus       *event.Bus
	logger    *slog.Logger
}

// Option configures a Tracker during creation.
type Option func(*Tracker)

// WithLogger sets the tracker's logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithBus publishes composition lifecycle events to bus.
func WithBus(bus *event.Bus) Option {
	return func(t *Tracker) {
		t.bus = bus
	}
}

// NewTracker creates a tracker that defers lifecycle resets through
// scheduler.
func NewTracker(scheduler native.Scheduler, opts ...Option) *Tracker {
	t := &Tracker{
		scheduler: scheduler,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// CompositionStart marks the beginning of a composition. Subsequent
// notifications observe composing until a deferred reset for this
// generation runs.
func (t *Tracker) CompositionStart() {
	t.mu.Lock()
	t.composing = true
	t.generation++
	gen := t.generation
	t.mu.Unlock()

	t.logger.Debug("composition started", "generation", gen)
	if t.bus != nil {
		t.bus.Publish(event.TopicCompositionStarted, event.CompositionStarted{Generation: gen})
	}
}

// CompositionEnd handles the end of a composition. The composing flag
// is not cleared here: a reset is scheduled for the next frame boundary
// and only takes effect if no newer composition has started by then.
// Non-empty nativeData is buffered as pending text for the next input
// notification, provided the tracker is still composing synchronously.
// Empty nativeData means there is nothing to buffer.
func (t *Tracker) CompositionEnd(nativeData string) {
	t.mu.Lock()
	gen := t.generation
	buffered := false
	if nativeData != "" && t.composing {
		t.pending = nativeData
		buffered = true
	}
	t.mu.Unlock()

	t.scheduler.Schedule(func() { t.resetIfCurrent(gen) })

	t.logger.Debug("composition ended",
		"generation", gen,
		"data", nativeData,
		"buffered", buffered)
	if t.bus != nil {
		t.bus.Publish(event.TopicCompositionEnded, event.CompositionEnded{
			Generation: gen,
			Data:       nativeData,
			Buffered:   buffered,
		})
	}
}

// resetIfCurrent clears the composing flag if the generation is still
// the one captured at scheduling time. A stale reset is a no-op: the
// generation check is the sole guard against clobbering a composition
// that started during the deferral window.
func (t *Tracker) resetIfCurrent(gen uint64) {
	t.mu.Lock()
	stale := t.generation != gen
	if !stale {
		t.composing = false
	}
	t.mu.Unlock()

	if stale {
		t.logger.Debug("stale composition reset ignored", "generation", gen)
	} else {
		t.logger.Debug("composition reset", "generation", gen)
	}
	if t.bus != nil {
		t.bus.Publish(event.TopicCompositionReset, event.CompositionReset{
			Generation: gen,
			Stale:      stale,
		})
	}
}

// Composing reports whether a composition is in progress.
func (t *Tracker) Composing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.composing
}

// Generation returns the current composition generation.
func (t *Tracker) Generation() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.generation
}

// PendingText returns the buffered pending text without consuming it.
func (t *Tracker) PendingText() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// ConsumePending returns the pending text and clears it. Pending text
// is consumed exactly once; subsequent calls return "" until a new
// composition buffers more.
func (t *Tracker) ConsumePending() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.pending
	t.pending = ""
	return p
}
