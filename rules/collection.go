package rules

import (
	"context"

	"github.com/formgraph/formgraph"
)

// RequiredSlice returns a collection validator rejecting nil and empty
// slices.
func RequiredSlice[E any](message string) formgraph.ValidatorFunc[[]E] {
	return func(ctx context.Context, value []E, path string) formgraph.Result {
		if len(value) > 0 {
			return formgraph.Valid(value)
		}
		return formgraph.Invalid(formgraph.Failure{Message: message, Path: path})
	}
}

// SliceLenBetween returns a collection validator requiring the item count
// to fall within [min, max]. A nil slice counts as zero items.
func SliceLenBetween[E any](min, max int, message string) formgraph.ValidatorFunc[[]E] {
	return func(ctx context.Context, value []E, path string) formgraph.Result {
		if len(value) >= min && len(value) <= max {
			return formgraph.Valid(value)
		}
		return formgraph.Invalid(formgraph.Failure{Message: message, Path: path})
	}
}
