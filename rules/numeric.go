package rules

import (
	"context"

	"github.com/formgraph/formgraph"
)

// Numeric is the generic constraint shared by the numeric factories.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Range returns a validator requiring min <= value <= max.
func Range[N Numeric](min, max N, message string) formgraph.ValidatorFunc[N] {
	return func(ctx context.Context, value N, path string) formgraph.Result {
		if value >= min && value <= max {
			return formgraph.Valid(value)
		}
		return formgraph.Invalid(formgraph.Failure{Message: message, Path: path})
	}
}

// Min returns a validator requiring value >= min.
func Min[N Numeric](min N, message string) formgraph.ValidatorFunc[N] {
	return func(ctx context.Context, value N, path string) formgraph.Result {
		if value >= min {
			return formgraph.Valid(value)
		}
		return formgraph.Invalid(formgraph.Failure{Message: message, Path: path})
	}
}

// Max returns a validator requiring value <= max.
func Max[N Numeric](max N, message string) formgraph.ValidatorFunc[N] {
	return func(ctx context.Context, value N, path string) formgraph.Result {
		if value <= max {
			return formgraph.Valid(value)
		}
		return formgraph.Invalid(formgraph.Failure{Message: message, Path: path})
	}
}
