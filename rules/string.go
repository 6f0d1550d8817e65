package rules

import (
	"context"
	"regexp"
	"strings"

	"github.com/formgraph/formgraph"
)

// Matches returns a validator accepting only values matching the regular
// expression. The pattern is compiled once at factory time and must be
// valid; a broken pattern is a programming error and panics immediately.
func Matches(pattern, message string) formgraph.ValidatorFunc[string] {
	re := regexp.MustCompile(pattern)
	return func(ctx context.Context, value string, path string) formgraph.Result {
		if re.MatchString(value) {
			return formgraph.Valid(value)
		}
		return formgraph.Invalid(formgraph.Failure{Message: message, Path: path})
	}
}

// Required returns a validator rejecting strings that are empty after
// trimming whitespace.
func Required(message string) formgraph.ValidatorFunc[string] {
	return func(ctx context.Context, value string, path string) formgraph.Result {
		if strings.TrimSpace(value) != "" {
			return formgraph.Valid(value)
		}
		return formgraph.Invalid(formgraph.Failure{Message: message, Path: path})
	}
}

// LengthBetween returns a validator requiring the string's byte length to
// fall within [min, max].
func LengthBetween(min, max int, message string) formgraph.ValidatorFunc[string] {
	return func(ctx context.Context, value string, path string) formgraph.Result {
		if len(value) >= min && len(value) <= max {
			return formgraph.Valid(value)
		}
		return formgraph.Invalid(formgraph.Failure{Message: message, Path: path})
	}
}

// OneOf returns a validator accepting only the listed values.
func OneOf[T comparable](message string, allowed ...T) formgraph.ValidatorFunc[T] {
	set := make(map[T]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return func(ctx context.Context, value T, path string) formgraph.Result {
		if _, ok := set[value]; ok {
			return formgraph.Valid(value)
		}
		return formgraph.Invalid(formgraph.Failure{Message: message, Path: path})
	}
}
