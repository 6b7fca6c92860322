package glint

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/glint/dom"
)

// Page owns the interactive behaviour of one document: its scheduler, its
// config and every listener Bootstrap wires.
//
// The exported methods are the page's public surface (ValidateField,
// UpdatePointsDisplay, ShowSuccessMessage, ShowErrorMessage,
// UpdateCompetitionStatus, ShowProgress, HideProgress) and may be called
// before or without Bootstrap. A missing target element is always a no-op.
type Page struct {
	doc     dom.Document
	sched   *Scheduler
	metrics MetricsProvider
	newID   func() string

	cfg atomic.Pointer[Config]
	seq atomic.Uint64

	mu           sync.Mutex
	ctx          context.Context
	bootstrapped bool
	resize       *Debouncer[float64]
}

// Option configures a Page.
type Option func(*Page)

// WithClock runs the page's timers on clock.
// Use this with clockz.FakeClock for deterministic tests.
func WithClock(clock clockz.Clock) Option {
	return func(p *Page) {
		p.sched = NewScheduler(clock)
	}
}

// WithScheduler shares an existing scheduler.
func WithScheduler(s *Scheduler) Option {
	return func(p *Page) {
		if s != nil {
			p.sched = s
		}
	}
}

// WithConfig sets the initial config. It is not validated here; use
// LoadConfig or Apply for untrusted input.
func WithConfig(cfg Config) Option {
	return func(p *Page) {
		p.cfg.Store(&cfg)
	}
}

// WithMetrics sets a metrics provider.
func WithMetrics(m MetricsProvider) Option {
	return func(p *Page) {
		if m != nil {
			p.metrics = m
		}
	}
}

// WithIDs replaces the notice id generator. The default is a random UUID.
func WithIDs(fn func() string) Option {
	return func(p *Page) {
		if fn != nil {
			p.newID = fn
		}
	}
}

// NewPage creates a Page over doc with DefaultConfig on the real clock.
func NewPage(doc dom.Document, opts ...Option) *Page {
	p := &Page{
		doc:     doc,
		metrics: NoOpMetricsProvider{},
		newID:   uuid.NewString,
		ctx:     context.Background(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.sched == nil {
		p.sched = NewScheduler(clockz.RealClock)
	}
	if p.cfg.Load() == nil {
		cfg := DefaultConfig()
		p.cfg.Store(&cfg)
	}
	return p
}

// Document returns the page's document.
func (p *Page) Document() dom.Document {
	return p.doc
}

// Scheduler returns the scheduler every timed follow-up runs on.
func (p *Page) Scheduler() *Scheduler {
	return p.sched
}

// Config returns the active config.
func (p *Page) Config() Config {
	return *p.cfg.Load()
}

// Apply validates cfg and makes it the active config. Timers already
// scheduled keep the delay they were scheduled with. The resize debounce
// window only changes for a page bootstrapped after the swap.
func (p *Page) Apply(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	p.cfg.Store(&cfg)
	return nil
}

// Bootstrap wires animations, form listeners, dynamic effects, responsive
// behaviour, keyboard shortcuts and lazy images. It runs once per Page.
func (p *Page) Bootstrap(ctx context.Context) error {
	p.mu.Lock()
	if p.bootstrapped {
		p.mu.Unlock()
		return ErrAlreadyStarted
	}
	p.bootstrapped = true
	p.ctx = ctx
	p.mu.Unlock()

	if p.doc == nil {
		return nil
	}

	p.initAnimations()
	p.initForms()
	p.initDynamicEffects()
	p.initResponsive()
	p.initKeyboard()
	p.initLazyImages()

	capitan.Emit(ctx, PageBootstrapped)
	return nil
}

// Settle waits for every follow-up action that is already due.
func (p *Page) Settle() {
	p.sched.Settle()
}

// Close stops the resize debouncer and every waiting timer. Pending
// follow-ups are dropped.
func (p *Page) Close() {
	p.mu.Lock()
	resize := p.resize
	p.mu.Unlock()
	if resize != nil {
		resize.Stop()
	}
	p.sched.Close()
}

// ValidateField validates a form control and marks its container. See the
// package level ValidateField.
func (p *Page) ValidateField(n dom.Node) Verdict {
	return validateField(p.context(), n, p.metrics)
}

func (p *Page) context() context.Context {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctx
}

func (p *Page) query(selector string) dom.Node {
	if p.doc == nil {
		return nil
	}
	return p.doc.Query(selector)
}

func (p *Page) queryAll(selector string) []dom.Node {
	if p.doc == nil {
		return nil
	}
	return p.doc.QueryAll(selector)
}
