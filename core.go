package formgraph

import (
	"context"
	"fmt"
	"strings"
)

// Kind classifies what a registered validator operates on.
type Kind int

const (
	// KindMember validates the extracted field value itself.
	KindMember Kind = iota
	// KindCollection validates a whole collection instance, not its items.
	KindCollection
	// KindComparison validates a field against its siblings and therefore
	// receives the owning instance instead of the field value.
	KindComparison
	// KindNested marks a nested complex member and carries its structural
	// requirement (required vs nullable). It has no callable.
	KindNested
)

func (k Kind) String() string {
	switch k {
	case KindMember:
		return "member"
	case KindCollection:
		return "collection"
	case KindComparison:
		return "comparison"
	case KindNested:
		return "nested"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Failure describes a single field-level validation failure.
type Failure struct {
	Message     string
	Path        string
	Field       string
	DisplayName string
}

// Failures is a failure-accumulating collection. Failures from independent
// sub-paths are concatenated, never short-circuited. It implements the error
// interface so hosts can bubble it up as a regular error value.
type Failures []Failure

func (fs Failures) Error() string {
	if len(fs) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, f := range fs {
		if f.Field != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
			continue
		}
		parts = append(parts, f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (fs Failures) IsEmpty() bool {
	return len(fs) == 0
}

// Messages returns the raw failure messages in emission order.
func (fs Failures) Messages() []string {
	if len(fs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(fs))
	for _, f := range fs {
		msgs = append(msgs, f.Message)
	}
	return msgs
}

// ForField returns the failures recorded against the given field name.
func (fs Failures) ForField(field string) Failures {
	var out Failures
	for _, f := range fs {
		if f.Field == field {
			out = append(out, f)
		}
	}
	return out
}

// Result is the outcome of a validation: either valid, carrying a value that
// callers can chain on, or invalid, carrying the accumulated failures.
type Result struct {
	value    any
	failures Failures
}

// Valid produces a passing result carrying the given value.
func Valid(value any) Result {
	return Result{value: value}
}

// Invalid produces a failing result from one or more failures.
func Invalid(failures ...Failure) Result {
	return Result{failures: failures}
}

// IsValid reports whether the result carries no failures.
func (r Result) IsValid() bool {
	return len(r.failures) == 0
}

// Value returns the carried value of a valid result.
func (r Result) Value() any {
	return r.value
}

// Failures returns the accumulated failures of an invalid result.
func (r Result) Failures() Failures {
	return r.failures
}

// ValidatorFunc is the typed validation function contract consumed by the
// core. Implementations are produced by a factory layer (see the rules
// package) and must be safe for repeated, sequential invocation. The path
// argument is positional context for failure reporting; the core passes ""
// and stamps paths itself after invocation.
type ValidatorFunc[T any] func(ctx context.Context, value T, path string) Result

// FieldRef identifies exactly one field's failure messages: the owning
// object instance paired with the field name. Owner must be a pointer so
// identity comparison and map addressing behave as expected.
type FieldRef struct {
	Owner any
	Field string
}

func (r FieldRef) String() string {
	return fmt.Sprintf("%T.%s", r.Owner, r.Field)
}
