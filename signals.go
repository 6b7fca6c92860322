package glint

import "github.com/zoobzio/capitan"

// Page lifecycle signals.
var (
	// PageBootstrapped is emitted once Bootstrap has wired every listener.
	PageBootstrapped = capitan.NewSignal(
		"glint.page.bootstrapped",
		"Page listeners wired",
	)

	// FieldValidated is emitted each time a field verdict is applied.
	FieldValidated = capitan.NewSignal(
		"glint.field.validated",
		"Field verdict applied",
	)

	// DebounceFired is emitted when a debounced call finally runs.
	DebounceFired = capitan.NewSignal(
		"glint.debounce.fired",
		"Debounced call fired",
	)
)

// Transient element signals.
var (
	// NoticeShown is emitted when a notice is inserted.
	NoticeShown = capitan.NewSignal(
		"glint.notice.shown",
		"Notice inserted",
	)

	// NoticeDismissing is emitted when a notice starts its exit animation.
	NoticeDismissing = capitan.NewSignal(
		"glint.notice.dismissing",
		"Notice dismiss animation started",
	)

	// NoticeRemoved is emitted when a notice leaves the page.
	NoticeRemoved = capitan.NewSignal(
		"glint.notice.removed",
		"Notice removed",
	)

	// LoadingStarted is emitted when a button enters the loading state.
	LoadingStarted = capitan.NewSignal(
		"glint.loading.started",
		"Button loading state applied",
	)

	// LoadingRestored is emitted when a button's label and state are restored.
	LoadingRestored = capitan.NewSignal(
		"glint.loading.restored",
		"Button loading state restored",
	)

	// RippleCreated is emitted for every ripple overlay.
	RippleCreated = capitan.NewSignal(
		"glint.ripple.created",
		"Ripple overlay inserted",
	)

	// StatusStarted is emitted when a badge begins a transition.
	StatusStarted = capitan.NewSignal(
		"glint.status.started",
		"Status transition started",
	)

	// StatusApplied is emitted when a badge receives its final status class.
	StatusApplied = capitan.NewSignal(
		"glint.status.applied",
		"Status transition applied",
	)

	// ProgressShown is emitted when the progress bar is shown or refilled.
	ProgressShown = capitan.NewSignal(
		"glint.progress.shown",
		"Progress bar shown",
	)

	// ProgressHidden is emitted when the progress bar is hidden.
	ProgressHidden = capitan.NewSignal(
		"glint.progress.hidden",
		"Progress bar hidden",
	)

	// PointsUpdated is emitted when the points display text changes.
	PointsUpdated = capitan.NewSignal(
		"glint.points.updated",
		"Points display updated",
	)
)

// Reload lifecycle signals.
var (
	// ReloadStarted is emitted when a Reloader begins watching.
	ReloadStarted = capitan.NewSignal(
		"glint.reload.started",
		"Reloader watching started",
	)

	// ReloadStopped is emitted when a Reloader stops watching.
	ReloadStopped = capitan.NewSignal(
		"glint.reload.stopped",
		"Reloader watching stopped",
	)

	// ReloadStateChanged is emitted when a Reloader transitions between states.
	ReloadStateChanged = capitan.NewSignal(
		"glint.reload.state.changed",
		"Reloader state transition",
	)

	// ReloadChangeReceived is emitted when raw data arrives from the source.
	ReloadChangeReceived = capitan.NewSignal(
		"glint.reload.change.received",
		"Raw change received from source",
	)

	// ReloadDecodeFailed is emitted when the codec rejects the data.
	ReloadDecodeFailed = capitan.NewSignal(
		"glint.reload.decode.failed",
		"Decoding failed",
	)

	// ReloadValidationFailed is emitted when struct validation fails.
	ReloadValidationFailed = capitan.NewSignal(
		"glint.reload.validation.failed",
		"Validation failed",
	)

	// ReloadApplyFailed is emitted when the apply function fails.
	ReloadApplyFailed = capitan.NewSignal(
		"glint.reload.apply.failed",
		"Apply function failed",
	)

	// ReloadApplySucceeded is emitted when a value is applied.
	ReloadApplySucceeded = capitan.NewSignal(
		"glint.reload.apply.succeeded",
		"Value applied successfully",
	)
)
