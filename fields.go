package glint

import "github.com/zoobzio/capitan"

// Field keys for glint events.
var (
	// KeyField is the name (or id) of the validated form control.
	KeyField = capitan.NewStringKey("field")

	// KeyKind is the form control kind (text, email, number, other).
	KeyKind = capitan.NewStringKey("kind")

	// KeyVerdict is the verdict applied to a field.
	KeyVerdict = capitan.NewStringKey("verdict")

	// KeyNoticeID is the handle of an inserted notice.
	KeyNoticeID = capitan.NewStringKey("notice_id")

	// KeyNoticeKind is the notice severity (success, error).
	KeyNoticeKind = capitan.NewStringKey("notice_kind")

	// KeyMessage is the notice text.
	KeyMessage = capitan.NewStringKey("message")

	// KeyStatus is the competition status carried by a transition.
	KeyStatus = capitan.NewStringKey("status")

	// KeyProgress is the formatted progress fill.
	KeyProgress = capitan.NewStringKey("progress")

	// KeyPoints is the points value shown.
	KeyPoints = capitan.NewIntKey("points")

	// KeyLifetime is how long a transient element lived.
	KeyLifetime = capitan.NewDurationKey("lifetime")

	// KeyWait is a configured delay.
	KeyWait = capitan.NewDurationKey("wait")

	// KeyState is the current state of a Reloader.
	KeyState = capitan.NewStringKey("state")

	// KeyOldState is the previous state before a transition.
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the new state after a transition.
	KeyNewState = capitan.NewStringKey("new_state")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyContentType is the codec content type used by a Reloader.
	KeyContentType = capitan.NewStringKey("content_type")
)
