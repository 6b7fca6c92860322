package glint

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// DefaultReloadDebounce is the default debounce duration for change processing.
const DefaultReloadDebounce = 100 * time.Millisecond

// Validator lets a reloaded type supply its own validation. Types that do
// not implement it are checked with go-playground/validator struct tags.
type Validator interface {
	Validate() error
}

// Reloader watches a Source, decodes and validates each change, and hands
// the result to a callback. A rejected change leaves the previous value in
// place.
//
// Example:
//
//	r := glint.NewReloader(glint.NewFileSource("page.yaml"),
//	    func(ctx context.Context, prev, curr glint.Config) error {
//	        return page.Apply(curr)
//	    },
//	).Codec(glint.YAMLCodec{}).Seed(glint.DefaultConfig)
//
//	if err := r.Start(ctx); err != nil {
//	    log.Printf("initial config rejected: %v", err)
//	}
type Reloader[T any] struct {
	source   Source
	apply    func(ctx context.Context, prev, curr T) error
	debounce time.Duration
	syncMode bool
	clock    clockz.Clock
	codec    Codec
	seed     func() T
	metrics  MetricsProvider

	state      atomic.Int32
	current    atomic.Pointer[T]
	lastError  atomic.Pointer[error]
	rejections *rejectionRing

	mu      sync.Mutex
	started bool

	// sync mode only
	changes <-chan []byte
}

// NewReloader creates a Reloader. Instance configuration uses chainable
// methods before Start.
func NewReloader[T any](source Source, apply func(ctx context.Context, prev, curr T) error) *Reloader[T] {
	r := &Reloader[T]{
		source:   source,
		apply:    apply,
		debounce: DefaultReloadDebounce,
		clock:    clockz.RealClock,
		codec:    JSONCodec{},
		metrics:  NoOpMetricsProvider{},
	}
	r.state.Store(int32(ReloadWaiting))
	return r
}

// Debounce sets how long changes must settle before they are processed.
// Default: 100ms. Must be called before Start.
func (r *Reloader[T]) Debounce(d time.Duration) *Reloader[T] {
	r.debounce = d
	return r
}

// SyncMode processes changes only when Process is called, with no
// debouncing and no goroutines. Must be called before Start.
func (r *Reloader[T]) SyncMode() *Reloader[T] {
	r.syncMode = true
	return r
}

// Clock sets the clock used for debouncing.
// Use this with clockz.FakeClock for deterministic tests.
// Must be called before Start.
func (r *Reloader[T]) Clock(clock clockz.Clock) *Reloader[T] {
	r.clock = clock
	return r
}

// Codec sets the decoder. Default: JSONCodec. Must be called before Start.
func (r *Reloader[T]) Codec(codec Codec) *Reloader[T] {
	r.codec = codec
	return r
}

// Seed sets the value each change is decoded over, so partial documents
// keep the seed's other fields. Must be called before Start.
func (r *Reloader[T]) Seed(fn func() T) *Reloader[T] {
	r.seed = fn
	return r
}

// Metrics sets a metrics provider. Must be called before Start.
func (r *Reloader[T]) Metrics(provider MetricsProvider) *Reloader[T] {
	if provider != nil {
		r.metrics = provider
	}
	return r
}

// ErrorHistorySize keeps the last n rejections for Rejections.
// Use 0 (default) to keep only LastError. Must be called before Start.
func (r *Reloader[T]) ErrorHistorySize(n int) *Reloader[T] {
	r.rejections = newRejectionRing(n)
	return r
}

// State returns the current state.
func (r *Reloader[T]) State() ReloadState {
	return ReloadState(r.state.Load())
}

// Current returns the applied value and true, or the zero value and false if
// nothing has been applied yet.
func (r *Reloader[T]) Current() (T, bool) {
	ptr := r.current.Load()
	if ptr == nil {
		var zero T
		return zero, false
	}
	return *ptr, true
}

// LastError returns the last rejection, or nil after a successful apply.
func (r *Reloader[T]) LastError() error {
	ptr := r.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// Rejections returns recent rejections, oldest first. A successful apply
// clears them.
func (r *Reloader[T]) Rejections() []Rejection {
	return r.rejections.all()
}

// Start begins watching. It blocks until the first value is processed,
// then keeps watching in the background. If the first value is rejected,
// Start returns the error and keeps watching.
//
// In sync mode Start only processes the first value. Call Process for the
// rest.
func (r *Reloader[T]) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return ErrAlreadyStarted
	}
	r.started = true
	r.mu.Unlock()

	capitan.Emit(ctx, ReloadStarted,
		KeyWait.Field(r.debounce),
		KeyContentType.Field(r.codec.ContentType()),
	)

	changes, err := r.source.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to start source: %w", err)
	}

	var initialErr error
	select {
	case <-ctx.Done():
		return ctx.Err()
	case raw, ok := <-changes:
		if !ok {
			return ErrSourceClosed
		}
		capitan.Emit(ctx, ReloadChangeReceived)
		initialErr = r.process(ctx, raw)
	}

	if r.syncMode {
		r.changes = changes
		return initialErr
	}

	go r.watch(ctx, changes)

	return initialErr
}

// Process handles the next queued change in sync mode. It returns false if
// nothing is queued, the source is closed, or the Reloader is not in sync
// mode.
func (r *Reloader[T]) Process(ctx context.Context) bool {
	if !r.syncMode {
		return false
	}

	select {
	case raw, ok := <-r.changes:
		if !ok {
			return false
		}
		capitan.Emit(ctx, ReloadChangeReceived)
		_ = r.process(ctx, raw) //nolint:errcheck // stored via reject
		return true
	default:
		return false
	}
}

func (r *Reloader[T]) process(ctx context.Context, raw []byte) error {
	oldState := r.State()

	var next T
	if r.seed != nil {
		next = r.seed()
	}

	if err := r.codec.Unmarshal(raw, &next); err != nil {
		return r.reject(ctx, oldState, stageDecode, err)
	}

	if err := check(next); err != nil {
		return r.reject(ctx, oldState, stageValidate, err)
	}

	var prev T
	if ptr := r.current.Load(); ptr != nil {
		prev = *ptr
	}
	if err := r.apply(ctx, prev, next); err != nil {
		return r.reject(ctx, oldState, stageApply, err)
	}

	r.current.Store(&next)
	r.lastError.Store(nil)
	r.rejections.clear()
	r.transitionState(ctx, oldState, ReloadActive)
	capitan.Emit(ctx, ReloadApplySucceeded)
	return nil
}

// check runs T's own Validate when it has one, and struct tags otherwise.
func check(v any) error {
	if val, ok := v.(Validator); ok {
		return val.Validate()
	}
	return validate.Struct(v)
}

// Rejection stages.
const (
	stageDecode   = "decode"
	stageValidate = "validate"
	stageApply    = "apply"
)

func (r *Reloader[T]) reject(ctx context.Context, oldState ReloadState, stage string, err error) error {
	rej := Rejection{At: r.clock.Now(), Stage: stage, Err: err}
	var e error = rej
	r.lastError.Store(&e)
	r.rejections.push(rej)

	r.transitionState(ctx, oldState, r.failureState())
	switch stage {
	case stageDecode:
		capitan.Emit(ctx, ReloadDecodeFailed, KeyError.Field(err.Error()))
	case stageValidate:
		capitan.Emit(ctx, ReloadValidationFailed, KeyError.Field(err.Error()))
	default:
		capitan.Emit(ctx, ReloadApplyFailed, KeyError.Field(err.Error()))
	}
	return fmt.Errorf("%s failed: %w", stage, err)
}

func (r *Reloader[T]) failureState() ReloadState {
	if r.current.Load() == nil {
		return ReloadUnset
	}
	return ReloadStale
}

func (r *Reloader[T]) transitionState(ctx context.Context, oldState, newState ReloadState) {
	if oldState == newState {
		return
	}
	r.state.Store(int32(newState))
	capitan.Emit(ctx, ReloadStateChanged,
		KeyOldState.Field(oldState.String()),
		KeyNewState.Field(newState.String()),
	)
	r.metrics.OnReloadStateChange(oldState, newState)
}

// watch processes changes with debouncing until ctx ends or the source
// closes. A change still pending when the source closes is processed.
func (r *Reloader[T]) watch(ctx context.Context, changes <-chan []byte) {
	defer func() {
		capitan.Emit(ctx, ReloadStopped,
			KeyState.Field(r.State().String()),
		)
	}()

	var (
		timer      clockz.Timer
		pending    []byte
		hasPending bool
	)

	for {
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case raw, ok := <-changes:
			if !ok {
				if hasPending {
					_ = r.process(ctx, pending) //nolint:errcheck // stored via reject
				}
				return
			}

			capitan.Emit(ctx, ReloadChangeReceived)
			pending = raw
			hasPending = true

			if timer == nil {
				timer = r.clock.NewTimer(r.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C():
					default:
					}
				}
				timer.Reset(r.debounce)
			}

		case <-timerC:
			if hasPending {
				_ = r.process(ctx, pending) //nolint:errcheck // stored via reject
				hasPending = false
			}
		}
	}
}
