package glint

import (
	"context"
	"sync"
	"time"

	"github.com/zoobzio/clockz"
)

// Scheduler runs delayed follow-up actions (notice dismissal, loading
// restore, status swaps, debounced calls) on a clock.
//
// Tasks are fire-and-forget: After returns no handle and a scheduled task
// always runs once its delay elapses. Only the Debouncer, which lives in
// this package, can cancel a task. Close releases every waiting goroutine
// when the page is torn down.
type Scheduler struct {
	clock  clockz.Clock
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	tasks  map[*task]struct{}
	closed bool
}

type task struct {
	due   time.Time
	timer clockz.Timer
	stop  chan struct{}
	done  chan struct{}
	once  sync.Once
}

// NewScheduler creates a Scheduler on clock. A nil clock means clockz.RealClock.
func NewScheduler(clock clockz.Clock) *Scheduler {
	if clock == nil {
		clock = clockz.RealClock
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		clock:  clock,
		ctx:    ctx,
		cancel: cancel,
		tasks:  make(map[*task]struct{}),
	}
}

// Clock returns the scheduler's clock.
func (s *Scheduler) Clock() clockz.Clock {
	return s.clock
}

// After runs fn once d has elapsed on the clock.
func (s *Scheduler) After(d time.Duration, fn func()) {
	s.schedule(d, fn)
}

// Pending returns the number of tasks that have not finished.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// NextDue returns the earliest deadline among unfinished tasks.
func (s *Scheduler) NextDue() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var (
		next  time.Time
		found bool
	)
	for t := range s.tasks {
		if !found || t.due.Before(next) {
			next, found = t.due, true
		}
	}
	return next, found
}

// Settle blocks until every task whose deadline has passed has finished,
// including tasks those tasks scheduled with a deadline that has also passed.
func (s *Scheduler) Settle() {
	for {
		now := s.clock.Now()
		s.mu.Lock()
		var due []*task
		for t := range s.tasks {
			if !t.due.After(now) {
				due = append(due, t)
			}
		}
		s.mu.Unlock()

		if len(due) == 0 {
			return
		}
		for _, t := range due {
			<-t.done
		}
	}
}

// Step advances a fake clock by d, stopping at every task deadline on the
// way so follow-up tasks scheduled by callbacks are timed from the moment
// their parent fired.
func (s *Scheduler) Step(clock *clockz.FakeClock, d time.Duration) {
	target := clock.Now().Add(d)
	for {
		s.Settle()
		next, ok := s.NextDue()
		if !ok || next.After(target) {
			break
		}
		clock.Advance(next.Sub(clock.Now()))
		clock.BlockUntilReady()
	}
	if rest := target.Sub(clock.Now()); rest > 0 {
		clock.Advance(rest)
		clock.BlockUntilReady()
	}
	s.Settle()
}

// Close stops every waiting task without running it. Tasks scheduled after
// Close never run.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	waiting := make([]*task, 0, len(s.tasks))
	for t := range s.tasks {
		waiting = append(waiting, t)
	}
	s.mu.Unlock()

	s.cancel()
	for _, t := range waiting {
		<-t.done
	}
}

// schedule registers fn to run after d and returns the task so the
// Debouncer can cancel it.
func (s *Scheduler) schedule(d time.Duration, fn func()) *task {
	t := &task{
		due:  s.clock.Now().Add(d),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(t.done)
		return t
	}
	if d > 0 {
		t.timer = s.clock.NewTimer(d)
	}
	s.tasks[t] = struct{}{}
	s.mu.Unlock()

	go s.run(t, fn)
	return t
}

func (s *Scheduler) run(t *task, fn func()) {
	defer s.finish(t)

	if t.timer == nil {
		select {
		case <-t.stop:
		case <-s.ctx.Done():
		default:
			fn()
		}
		return
	}

	select {
	case <-t.timer.C():
		fn()
	case <-t.stop:
		t.timer.Stop()
	case <-s.ctx.Done():
		t.timer.Stop()
	}
}

func (s *Scheduler) finish(t *task) {
	s.mu.Lock()
	delete(s.tasks, t)
	s.mu.Unlock()
	close(t.done)
}

// cancel stops t if it has not fired yet.
func (t *task) cancel() {
	t.once.Do(func() { close(t.stop) })
}
