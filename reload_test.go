package glint

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zoobzio/clockz"
)

// timingConfig has no Validate method, so struct tags apply.
type timingConfig struct {
	RippleMS int    `yaml:"ripple_ms" json:"ripple_ms" validate:"min=1"`
	Label    string `yaml:"label" json:"label" validate:"required"`
}

func TestReloader_AppliesInitialValue(t *testing.T) {
	ch := make(chan []byte, 1)
	var applied timingConfig
	r := NewReloader(NewSyncChannelSource(ch), func(_ context.Context, _, curr timingConfig) error {
		applied = curr
		return nil
	}).Codec(YAMLCodec{}).SyncMode()

	ch <- []byte("ripple_ms: 450\nlabel: Wait\n")
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if applied.RippleMS != 450 || applied.Label != "Wait" {
		t.Errorf("unexpected applied value %+v", applied)
	}
	if r.State() != ReloadActive {
		t.Errorf("expected active, got %s", r.State())
	}
	if cur, ok := r.Current(); !ok || cur != applied {
		t.Errorf("expected Current to match applied, got %+v, %v", cur, ok)
	}
}

func TestReloader_StateTransitions(t *testing.T) {
	ch := make(chan []byte, 4)
	metrics := &recordingMetrics{}
	r := NewReloader(NewSyncChannelSource(ch), func(_ context.Context, _, _ timingConfig) error {
		return nil
	}).SyncMode().Metrics(metrics).ErrorHistorySize(4)

	ctx := context.Background()

	ch <- []byte(`{"ripple_ms": 0, "label": "x"}`)
	if err := r.Start(ctx); err == nil {
		t.Fatal("expected initial validation error")
	}
	if r.State() != ReloadUnset {
		t.Errorf("expected unset, got %s", r.State())
	}
	if _, ok := r.Current(); ok {
		t.Error("expected no current value")
	}

	ch <- []byte(`{"ripple_ms": 600, "label": "x"}`)
	r.Process(ctx)
	if r.State() != ReloadActive {
		t.Errorf("expected active, got %s", r.State())
	}
	if r.LastError() != nil || r.Rejections() != nil {
		t.Error("expected errors cleared after a successful apply")
	}

	ch <- []byte(`{not json`)
	r.Process(ctx)
	if r.State() != ReloadStale {
		t.Errorf("expected stale, got %s", r.State())
	}
	cur, _ := r.Current()
	if cur.RippleMS != 600 {
		t.Errorf("expected previous value retained, got %+v", cur)
	}

	var rej Rejection
	if !errors.As(r.LastError(), &rej) || rej.Stage != "decode" {
		t.Errorf("expected decode rejection, got %v", r.LastError())
	}
	if got := len(r.Rejections()); got != 1 {
		t.Errorf("expected 1 rejection in history, got %d", got)
	}

	want := []ReloadState{ReloadUnset, ReloadActive, ReloadStale}
	got := metrics.reloadStates()
	if len(got) != len(want) {
		t.Fatalf("expected transitions %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("transition %d: want %s, got %s", i, want[i], got[i])
		}
	}
}

func TestReloader_ApplyErrorRollsBack(t *testing.T) {
	ch := make(chan []byte, 2)
	var prevSeen atomic.Int32
	r := NewReloader(NewSyncChannelSource(ch), func(_ context.Context, prev, curr timingConfig) error {
		prevSeen.Store(int32(prev.RippleMS))
		if curr.Label == "boom" {
			return errors.New("refused")
		}
		return nil
	}).SyncMode()

	ctx := context.Background()
	ch <- []byte(`{"ripple_ms": 100, "label": "ok"}`)
	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	ch <- []byte(`{"ripple_ms": 200, "label": "boom"}`)
	r.Process(ctx)

	if prevSeen.Load() != 100 {
		t.Errorf("expected callback to see previous value 100, got %d", prevSeen.Load())
	}
	if r.State() != ReloadStale {
		t.Errorf("expected stale, got %s", r.State())
	}
	cur, _ := r.Current()
	if cur.RippleMS != 100 {
		t.Errorf("expected rollback to 100, got %d", cur.RippleMS)
	}
}

func TestReloader_SeedAndValidator(t *testing.T) {
	ch := make(chan []byte, 1)
	var applied Config
	r := NewReloader(NewSyncChannelSource(ch), func(_ context.Context, _, curr Config) error {
		applied = curr
		return nil
	}).Codec(YAMLCodec{}).Seed(DefaultConfig).SyncMode()

	ch <- []byte("status_ms: 800\n")
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	want := DefaultConfig()
	want.StatusMS = 800
	if applied != want {
		t.Errorf("expected seed defaults kept, got %+v", applied)
	}
}

func TestReloader_ConfigValidateIsUsed(t *testing.T) {
	ch := make(chan []byte, 1)
	r := NewReloader(NewSyncChannelSource(ch), func(_ context.Context, _, _ Config) error {
		return nil
	}).Codec(YAMLCodec{}).Seed(DefaultConfig).SyncMode()

	ch <- []byte("container: \"\"\n")
	err := r.Start(context.Background())
	if !IsInvalidConfig(err) {
		t.Errorf("expected ErrInvalidConfig through Config.Validate, got %v", err)
	}
}

func TestReloader_StartTwice(t *testing.T) {
	ch := make(chan []byte, 1)
	r := NewReloader(NewSyncChannelSource(ch), func(_ context.Context, _, _ timingConfig) error {
		return nil
	}).SyncMode()

	ch <- []byte(`{"ripple_ms": 1, "label": "x"}`)
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := r.Start(context.Background()); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("expected ErrAlreadyStarted, got %v", err)
	}
}

func TestReloader_SourceClosedEarly(t *testing.T) {
	ch := make(chan []byte)
	close(ch)
	r := NewReloader(NewSyncChannelSource(ch), func(_ context.Context, _, _ timingConfig) error {
		return nil
	})
	if err := r.Start(context.Background()); !errors.Is(err, ErrSourceClosed) {
		t.Errorf("expected ErrSourceClosed, got %v", err)
	}
}

func TestReloader_ProcessOutsideSyncMode(t *testing.T) {
	r := NewReloader(NewChannelSource(make(chan []byte)), func(_ context.Context, _, _ timingConfig) error {
		return nil
	})
	if r.Process(context.Background()) {
		t.Error("expected Process to return false outside sync mode")
	}
}

func TestReloader_DebounceCoalesces(t *testing.T) {
	clock := clockz.NewFakeClock()
	ch := make(chan []byte, 10)
	ch <- []byte(`{"ripple_ms": 1, "label": "x"}`)

	var applyCount atomic.Int32
	var lastRipple atomic.Int32
	r := NewReloader(NewChannelSource(ch), func(_ context.Context, _, curr timingConfig) error {
		applyCount.Add(1)
		lastRipple.Store(int32(curr.RippleMS))
		return nil
	}).Debounce(100 * time.Millisecond).Clock(clock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if applyCount.Load() != 1 {
		t.Fatalf("expected 1 apply after start, got %d", applyCount.Load())
	}

	ch <- []byte(`{"ripple_ms": 2, "label": "x"}`)
	ch <- []byte(`{"ripple_ms": 3, "label": "x"}`)
	ch <- []byte(`{"ripple_ms": 4, "label": "x"}`)

	// Allow goroutine to receive changes
	time.Sleep(10 * time.Millisecond)
	if applyCount.Load() != 1 {
		t.Errorf("expected still 1 apply (debouncing), got %d", applyCount.Load())
	}

	clock.Advance(150 * time.Millisecond)
	clock.BlockUntilReady()
	time.Sleep(10 * time.Millisecond)

	if applyCount.Load() != 2 {
		t.Errorf("expected 2 applies after debounce, got %d", applyCount.Load())
	}
	if lastRipple.Load() != 4 {
		t.Errorf("expected latest value 4, got %d", lastRipple.Load())
	}
}

func TestFileSource_EmitsInitialAndWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.yaml")
	if err := os.WriteFile(path, []byte("ripple_ms: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := NewFileSource(path)
	if src.Path() != path {
		t.Errorf("expected path %s, got %s", path, src.Path())
	}
	changes, err := src.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	select {
	case data := <-changes:
		if string(data) != "ripple_ms: 1\n" {
			t.Errorf("unexpected initial contents %q", data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for initial contents")
	}

	if err := os.WriteFile(path, []byte("ripple_ms: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case data := <-changes:
			if string(data) == "ripple_ms: 2\n" {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for the write")
		}
	}
}

func TestFileSource_MissingDirectory(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "missing", "page.yaml"))
	if _, err := src.Watch(context.Background()); err == nil {
		t.Error("expected error watching a missing directory")
	}
}
