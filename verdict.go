package glint

// Verdict is the tri-state validity outcome of a form field.
type Verdict int32

const (
	// Neutral means the field is empty and not required. No class is applied.
	Neutral Verdict = iota

	// Valid means the field has a value that passed every rule.
	Valid

	// Invalid means a rule rejected the value (or a required field is empty).
	Invalid
)

// Validation classes applied to a field's container.
const (
	ClassValid   = "valid"
	ClassInvalid = "invalid"
)

// String returns the string representation of the verdict.
func (v Verdict) String() string {
	switch v {
	case Neutral:
		return "neutral"
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Class returns the container class for the verdict, or "" for Neutral.
func (v Verdict) Class() string {
	switch v {
	case Valid:
		return ClassValid
	case Invalid:
		return ClassInvalid
	default:
		return ""
	}
}

// OK reports whether the verdict lets a form proceed (anything but Invalid).
func (v Verdict) OK() bool {
	return v != Invalid
}
