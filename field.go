package glint

import (
	"math"
	"strconv"
	"strings"

	"github.com/zoobzio/glint/dom"
)

// Kind is the input type of a form control, as far as validation cares.
type Kind int

const (
	// KindOther covers every input type without a dedicated rule.
	KindOther Kind = iota
	KindText
	KindEmail
	KindNumber
)

// String returns the input type name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindEmail:
		return "email"
	case KindNumber:
		return "number"
	default:
		return "other"
	}
}

// ParseKind maps an input type attribute to a Kind. A missing type is text.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return KindText
	case "email":
		return KindEmail
	case "number":
		return KindNumber
	default:
		return KindOther
	}
}

// Field is a snapshot of a form control's validation inputs.
//
// Min and Max are nil when the attribute is absent or unparsable.
type Field struct {
	Value    string
	Kind     Kind
	Required bool
	Min      *float64
	Max      *float64
}

// FieldFrom reads a Field from a form control. It is called on every
// validation so the verdict always reflects the element as it is now.
func FieldFrom(n dom.Node) Field {
	if n == nil {
		return Field{}
	}
	typ, _ := n.Attr("type")
	_, required := n.Attr("required")
	return Field{
		Value:    n.Value(),
		Kind:     ParseKind(typ),
		Required: required,
		Min:      boundAttr(n, "min"),
		Max:      boundAttr(n, "max"),
	}
}

// bounds returns the effective numeric range: min defaults to 0 and max to
// +Inf.
func (f Field) bounds() (lo, hi float64) {
	lo, hi = 0, math.Inf(1)
	if f.Min != nil {
		lo = *f.Min
	}
	if f.Max != nil {
		hi = *f.Max
	}
	return lo, hi
}

// fieldName identifies a control in events: name, then id, then tag.
func fieldName(n dom.Node) string {
	if v, ok := n.Attr("name"); ok && v != "" {
		return v
	}
	if v, ok := n.Attr("id"); ok && v != "" {
		return v
	}
	return n.Tag()
}

func boundAttr(n dom.Node, name string) *float64 {
	raw, ok := n.Attr(name)
	if !ok {
		return nil
	}
	v, ok := parseNumber(raw)
	if !ok {
		return nil
	}
	return &v
}

// parseNumber parses a finite float. NaN and infinities are rejected.
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
