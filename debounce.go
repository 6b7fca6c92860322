package glint

import (
	"context"
	"sync"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// Debouncer collapses bursts of calls into a single delayed call.
//
// Each Call cancels the pending call from the same Debouncer and schedules
// a new one wait after it, carrying the latest arguments. The wrapped
// function therefore runs at most once per quiescence window, with the
// arguments of the last call in that window, and never earlier than wait
// after that call.
//
// Example:
//
//	resize := glint.NewDebouncer(func(width float64) {
//	    relayout(width)
//	}, 250*time.Millisecond)
//
//	resize.Call(800)
//	resize.Call(640) // only 640 is delivered, 250ms after this call
type Debouncer[T any] struct {
	fn      func(T)
	wait    time.Duration
	sched   *Scheduler
	owned   bool
	metrics MetricsProvider

	mu        sync.Mutex
	pending   *task
	gen       uint64
	coalesced int
}

// NewDebouncer wraps fn. It runs on its own real-clock scheduler until
// Clock or Scheduler is called. A Debouncer that owns its scheduler releases
// it on Close.
func NewDebouncer[T any](fn func(T), wait time.Duration) *Debouncer[T] {
	return &Debouncer[T]{
		fn:      fn,
		wait:    wait,
		sched:   NewScheduler(clockz.RealClock),
		owned:   true,
		metrics: NoOpMetricsProvider{},
	}
}

// Clock runs the Debouncer on its own scheduler over clock.
// Use this with clockz.FakeClock for deterministic tests.
// Must be called before the first Call.
func (d *Debouncer[T]) Clock(clock clockz.Clock) *Debouncer[T] {
	d.sched.Close()
	d.sched = NewScheduler(clock)
	d.owned = true
	return d
}

// Scheduler shares an existing scheduler, so Settle and Close on that
// scheduler cover the Debouncer too. Close on the Debouncer then leaves the
// scheduler running. Must be called before the first Call.
func (d *Debouncer[T]) Scheduler(s *Scheduler) *Debouncer[T] {
	if s != nil {
		if d.owned {
			d.sched.Close()
		}
		d.sched = s
		d.owned = false
	}
	return d
}

// Metrics sets a metrics provider. Must be called before the first Call.
func (d *Debouncer[T]) Metrics(m MetricsProvider) *Debouncer[T] {
	if m != nil {
		d.metrics = m
	}
	return d
}

// Wait returns the quiescence window.
func (d *Debouncer[T]) Wait() time.Duration {
	return d.wait
}

// Call schedules fn(args), replacing any call still pending.
func (d *Debouncer[T]) Call(args T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.cancel()
	}
	d.gen++
	d.coalesced++
	gen := d.gen
	d.pending = d.sched.schedule(d.wait, func() {
		d.fire(gen, args)
	})
}

// Pending reports whether a call is waiting to fire.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Stop drops the pending call, if any.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending.cancel()
		d.pending = nil
	}
	d.gen++
	d.coalesced = 0
}

// Close drops the pending call and, when the Debouncer owns its scheduler,
// closes it. Calls after Close never run.
func (d *Debouncer[T]) Close() {
	d.Stop()
	if d.owned {
		d.sched.Close()
	}
}

// fire runs fn unless a newer call (or Stop) superseded generation gen.
// The check matters because a cancelled timer may already have fired.
func (d *Debouncer[T]) fire(gen uint64, args T) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	coalesced := d.coalesced
	d.pending = nil
	d.coalesced = 0
	d.mu.Unlock()

	d.fn(args)

	d.metrics.OnDebounceFired(coalesced)
	capitan.Emit(context.Background(), DebounceFired,
		KeyWait.Field(d.wait),
	)
}

// Debounce is the function form of NewDebouncer(fn, wait).Call on the real
// clock. The returned stop function drops any pending call and releases the
// debouncer's timers.
func Debounce[T any](fn func(T), wait time.Duration) (call func(T), stop func()) {
	d := NewDebouncer(fn, wait)
	return d.Call, d.Close
}
