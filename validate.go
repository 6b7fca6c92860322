package glint

import (
	"context"
	"regexp"
	"strings"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/glint/dom"
)

// emailPattern is a presence check: something@something.something with no
// whitespace. It is not an RFC 5322 parser.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate decides a field's verdict. Rules run in order and the first match
// wins:
//
//  1. required and blank                           -> Invalid
//  2. email with a value that fails emailPattern   -> Invalid
//  3. number with a value that does not parse, or
//     falls outside [min, max]                     -> Invalid
//  4. any other non-blank value                    -> Valid
//  5. blank and optional                           -> Neutral
//
// Validate is pure: the same Field always yields the same Verdict.
func Validate(f Field) Verdict {
	value := strings.TrimSpace(f.Value)

	if f.Required && value == "" {
		return Invalid
	}

	if f.Kind == KindEmail && value != "" && !emailPattern.MatchString(value) {
		return Invalid
	}

	if f.Kind == KindNumber && value != "" {
		num, ok := parseNumber(value)
		lo, hi := f.bounds()
		if !ok || num < lo || num > hi {
			return Invalid
		}
	}

	if value != "" {
		return Valid
	}
	return Neutral
}

// ValidateField validates a form control and marks its container. Both
// validation classes are removed first, then at most one is added, so
// repeated calls are idempotent and safe to interleave. A nil control, or
// one without a parent, yields Neutral and changes nothing.
func ValidateField(n dom.Node) Verdict {
	return validateField(context.Background(), n, nil)
}

func validateField(ctx context.Context, n dom.Node, metrics MetricsProvider) Verdict {
	if n == nil {
		return Neutral
	}
	group := n.Parent()
	if group == nil {
		return Neutral
	}

	field := FieldFrom(n)
	verdict := Validate(field)

	group.RemoveClass(ClassValid, ClassInvalid)
	if class := verdict.Class(); class != "" {
		group.AddClass(class)
	}

	if metrics != nil {
		metrics.OnVerdict(verdict)
	}
	capitan.Emit(ctx, FieldValidated,
		KeyField.Field(fieldName(n)),
		KeyKind.Field(field.Kind.String()),
		KeyVerdict.Field(verdict.String()),
	)
	return verdict
}
