package glint

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/glint/dom"
)

func mustDoc(t *testing.T, markup string) *dom.HTMLDocument {
	t.Helper()
	doc, err := dom.ParseString(markup)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	return doc
}

// newTestPage parses markup into a page on a fake clock with sequential
// notice ids (n-1, n-2, ...). The page is closed when the test ends.
func newTestPage(t *testing.T, markup string, opts ...Option) (*Page, *dom.HTMLDocument, *clockz.FakeClock) {
	t.Helper()
	doc := mustDoc(t, markup)
	clock := clockz.NewFakeClock()

	var (
		mu  sync.Mutex
		seq int
	)
	ids := func() string {
		mu.Lock()
		defer mu.Unlock()
		seq++
		return fmt.Sprintf("n-%d", seq)
	}

	all := append([]Option{WithClock(clock), WithIDs(ids)}, opts...)
	page := NewPage(doc, all...)
	t.Cleanup(page.Close)
	return page, doc, clock
}

// step advances the page clock by d, running every follow-up that falls due.
func step(page *Page, clock *clockz.FakeClock, d time.Duration) {
	page.Scheduler().Step(clock, d)
}

type recordingMetrics struct {
	NoOpMetricsProvider

	mu         sync.Mutex
	verdictLog []Verdict
	created    map[string]int
	expired    map[string][]time.Duration
	fired      []int
	reloads    []ReloadState
}

func (m *recordingMetrics) OnVerdict(v Verdict) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verdictLog = append(m.verdictLog, v)
}

func (m *recordingMetrics) OnTransientCreated(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.created == nil {
		m.created = make(map[string]int)
	}
	m.created[kind]++
}

func (m *recordingMetrics) OnTransientExpired(kind string, lifetime time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.expired == nil {
		m.expired = make(map[string][]time.Duration)
	}
	m.expired[kind] = append(m.expired[kind], lifetime)
}

func (m *recordingMetrics) OnDebounceFired(coalesced int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fired = append(m.fired, coalesced)
}

func (m *recordingMetrics) OnReloadStateChange(_, to ReloadState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reloads = append(m.reloads, to)
}

func (m *recordingMetrics) verdicts() []Verdict {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Verdict(nil), m.verdictLog...)
}

func (m *recordingMetrics) lifetimes(kind string) []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.expired[kind]...)
}

func (m *recordingMetrics) createdCount(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.created[kind]
}

func (m *recordingMetrics) firings() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.fired...)
}

func (m *recordingMetrics) reloadStates() []ReloadState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ReloadState(nil), m.reloads...)
}
