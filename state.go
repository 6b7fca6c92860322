package glint

// ReloadState represents the current state of a Reloader.
type ReloadState int32

const (
	// ReloadWaiting indicates the Reloader has not yet processed any value.
	ReloadWaiting ReloadState = iota

	// ReloadActive indicates a valid value is applied.
	ReloadActive

	// ReloadStale indicates the last change was rejected. The previous
	// value remains applied.
	ReloadStale

	// ReloadUnset indicates the first value was rejected and nothing has
	// been applied yet. The Reloader keeps watching.
	ReloadUnset
)

// String returns the string representation of the state.
func (s ReloadState) String() string {
	switch s {
	case ReloadWaiting:
		return "waiting"
	case ReloadActive:
		return "active"
	case ReloadStale:
		return "stale"
	case ReloadUnset:
		return "unset"
	default:
		return "unknown"
	}
}
