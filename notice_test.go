package glint

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

const noticePage = `<html><body><div class="container"><h1>Welcome</h1></div></body></html>`

func TestNotify_SuccessLifetime(t *testing.T) {
	metrics := &recordingMetrics{}
	page, doc, clock := newTestPage(t, noticePage, WithMetrics(metrics))

	id := page.Notify(NoticeSuccess, "ok")
	alert := page.FindNotice(id)
	if alert == nil {
		t.Fatal("expected notice to be inserted")
	}
	if alert.ClassName() != "alert alert-success bounce-in" {
		t.Errorf("unexpected class %q", alert.ClassName())
	}
	if alert.Text() != "ok" {
		t.Errorf("expected text ok, got %q", alert.Text())
	}
	if doc.Query(".container").FirstChild() != alert {
		t.Error("expected notice to be the first child of the container")
	}

	step(page, clock, 3000*time.Millisecond-time.Millisecond)
	if page.FindNotice(id) == nil {
		t.Fatal("notice removed before 3000ms")
	}
	if alert.HasClass(classZoomOut) {
		t.Error("dismiss animation started early")
	}

	step(page, clock, time.Millisecond)
	if !alert.HasClass(classZoomOut) {
		t.Error("expected zoom-out at 3000ms")
	}
	if page.FindNotice(id) == nil {
		t.Fatal("notice removed before its exit animation finished")
	}

	step(page, clock, 500*time.Millisecond)
	if page.FindNotice(id) != nil {
		t.Error("expected notice removed at 3500ms")
	}
	if diff := cmp.Diff([]time.Duration{3500 * time.Millisecond}, metrics.lifetimes(TransientNotice)); diff != "" {
		t.Errorf("lifetime mismatch (-want +got):\n%s", diff)
	}
}

func TestNotify_ErrorLifetime(t *testing.T) {
	page, _, clock := newTestPage(t, noticePage)

	id := page.Notify(NoticeError, "Not enough points")
	alert := page.FindNotice(id)
	if alert == nil {
		t.Fatal("expected notice to be inserted")
	}
	if alert.ClassName() != "alert alert-error shake" {
		t.Errorf("unexpected class %q", alert.ClassName())
	}

	step(page, clock, 3500*time.Millisecond)
	if page.FindNotice(id) == nil {
		t.Fatal("error notice removed on the success schedule")
	}

	step(page, clock, 1500*time.Millisecond)
	if !alert.HasClass(classZoomOut) {
		t.Error("expected zoom-out at 5000ms")
	}

	step(page, clock, 499*time.Millisecond)
	if page.FindNotice(id) == nil {
		t.Fatal("notice removed before 5500ms")
	}

	step(page, clock, time.Millisecond)
	if page.FindNotice(id) != nil {
		t.Error("expected notice removed at 5500ms")
	}
}

func TestNotify_NewestFirstAndIndependent(t *testing.T) {
	page, doc, clock := newTestPage(t, noticePage)

	first := page.Notify(NoticeSuccess, "first")
	step(page, clock, time.Second)
	second := page.Notify(NoticeError, "second")

	children := doc.Query(".container").Children()
	if len(children) != 3 {
		t.Fatalf("expected 2 notices and the heading, got %d children", len(children))
	}
	if id, _ := children[0].Attr(noticeIDAttr); id != second {
		t.Errorf("expected newest notice first, got %q", id)
	}
	if id, _ := children[1].Attr(noticeIDAttr); id != first {
		t.Errorf("expected older notice second, got %q", id)
	}

	step(page, clock, 2500*time.Millisecond)
	if page.FindNotice(first) != nil {
		t.Error("expected first notice gone at 3500ms")
	}
	if page.FindNotice(second) == nil {
		t.Error("second notice must keep its own timer")
	}
}

func TestNotify_NoContainer(t *testing.T) {
	page, doc, _ := newTestPage(t, `<html><body><p>no container</p></body></html>`)

	page.ShowSuccessMessage("ok")
	page.ShowErrorMessage("bad")

	if doc.Query(".alert") != nil {
		t.Error("expected no notice without a container")
	}
	if page.Scheduler().Pending() != 0 {
		t.Error("expected no timers without a container")
	}
}

func TestNotify_ConfiguredDelays(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SuccessDelayMS = 100
	cfg.DismissMS = 50
	page, _, clock := newTestPage(t, noticePage, WithConfig(cfg))

	id := page.Notify(NoticeSuccess, "quick")
	step(page, clock, 149*time.Millisecond)
	if page.FindNotice(id) == nil {
		t.Fatal("notice removed early")
	}
	step(page, clock, time.Millisecond)
	if page.FindNotice(id) != nil {
		t.Error("expected notice removed at 150ms")
	}
}

func TestNoticeKind_String(t *testing.T) {
	if NoticeSuccess.String() != "success" || NoticeError.String() != "error" {
		t.Errorf("unexpected names %q, %q", NoticeSuccess, NoticeError)
	}
}
