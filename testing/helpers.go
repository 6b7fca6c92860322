// Package testing provides test utilities and helpers for glint pages and
// reloaders.
package testing

import (
	"context"
	"testing"
	"time"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/glint"
	"github.com/zoobzio/glint/dom"
)

// WaitFor polls a condition until it returns true or timeout is reached.
// Returns true if the condition was met, false if timeout occurred.
func WaitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// WaitForState waits until the reloader reaches the expected state or timeout occurs.
func WaitForState[T any](t *testing.T, r *glint.Reloader[T], expected glint.ReloadState, timeout time.Duration) bool {
	t.Helper()
	return WaitFor(t, timeout, func() bool {
		return r.State() == expected
	})
}

// RequireState fails the test immediately if the reloader is not in the expected state.
func RequireState[T any](t *testing.T, r *glint.Reloader[T], expected glint.ReloadState) {
	t.Helper()
	if got := r.State(); got != expected {
		t.Fatalf("expected state %s, got %s", expected, got)
	}
}

// NewTestReloader creates a sync-mode Config reloader seeded with
// glint.DefaultConfig. Returns the reloader and a channel for sending
// YAML or JSON documents.
func NewTestReloader(t *testing.T, apply func(context.Context, glint.Config, glint.Config) error) (*glint.Reloader[glint.Config], chan<- []byte) {
	t.Helper()
	ch := make(chan []byte, 10)
	r := glint.NewReloader(glint.NewSyncChannelSource(ch), apply).
		Codec(glint.YAMLCodec{}).
		Seed(glint.DefaultConfig).
		SyncMode()
	return r, ch
}

// Fixture is a page parsed from markup and running on a fake clock.
type Fixture struct {
	Page  *glint.Page
	Doc   *dom.HTMLDocument
	Clock *clockz.FakeClock
}

// NewFixturePage parses markup into a Page on a fake clock. The page is
// closed when the test ends.
func NewFixturePage(t *testing.T, markup string, opts ...glint.Option) *Fixture {
	t.Helper()
	doc, err := dom.ParseString(markup)
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	clock := clockz.NewFakeClock()
	page := glint.NewPage(doc, append([]glint.Option{glint.WithClock(clock)}, opts...)...)
	t.Cleanup(page.Close)
	return &Fixture{Page: page, Doc: doc, Clock: clock}
}

// Advance moves the fixture clock forward by d, running each follow-up as
// its deadline passes.
func (f *Fixture) Advance(d time.Duration) {
	f.Page.Scheduler().Step(f.Clock, d)
}

// Element returns the element matching selector, failing the test if there
// is none.
func (f *Fixture) Element(t *testing.T, selector string) *dom.Element {
	t.Helper()
	n, ok := f.Doc.Query(selector).(*dom.Element)
	if !ok || n == nil {
		t.Fatalf("no element matches %q", selector)
	}
	return n
}

// RequireClass fails the test if n does not carry class.
func RequireClass(t *testing.T, n dom.Node, class string) {
	t.Helper()
	if n == nil {
		t.Fatalf("expected class %q on a missing element", class)
	}
	if !n.HasClass(class) {
		t.Fatalf("expected class %q, got %q", class, n.ClassName())
	}
}

// RequireNoClass fails the test if n carries class.
func RequireNoClass(t *testing.T, n dom.Node, class string) {
	t.Helper()
	if n != nil && n.HasClass(class) {
		t.Fatalf("expected no class %q, got %q", class, n.ClassName())
	}
}
