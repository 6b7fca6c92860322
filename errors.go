package glint

import "errors"

// Sentinel errors for glint operations.
var (
	ErrAlreadyStarted = errors.New("glint: already started")
	ErrSourceClosed   = errors.New("glint: source closed before emitting initial value")
	ErrInvalidConfig  = errors.New("glint: invalid config")
)

// IsInvalidConfig checks if err is a config validation error.
func IsInvalidConfig(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}
