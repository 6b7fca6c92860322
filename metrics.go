package glint

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on verdicts and on the
// lifecycle of transient elements.
type MetricsProvider interface {
	// OnVerdict is called every time a field verdict is applied.
	OnVerdict(v Verdict)

	// OnTransientCreated is called when a transient element appears.
	// Kind is one of "notice", "ripple", "loading", "status", "points".
	OnTransientCreated(kind string)

	// OnTransientExpired is called when a transient element is removed or
	// reverted. Lifetime is measured on the page clock.
	OnTransientExpired(kind string, lifetime time.Duration)

	// OnDebounceFired is called when a debounced call runs. Coalesced is the
	// number of calls folded into it.
	OnDebounceFired(coalesced int)

	// OnReloadStateChange is called when a Reloader changes state.
	OnReloadStateChange(from, to ReloadState)
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnVerdict(_ Verdict)                           {}
func (NoOpMetricsProvider) OnTransientCreated(_ string)                   {}
func (NoOpMetricsProvider) OnTransientExpired(_ string, _ time.Duration) {}
func (NoOpMetricsProvider) OnDebounceFired(_ int)                         {}
func (NoOpMetricsProvider) OnReloadStateChange(_, _ ReloadState)          {}

// Transient element kinds reported to MetricsProvider.
const (
	TransientNotice  = "notice"
	TransientRipple  = "ripple"
	TransientLoading = "loading"
	TransientStatus  = "status"
	TransientPoints  = "points"
)
