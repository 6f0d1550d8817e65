package rules

import (
	"context"

	"github.com/formgraph/formgraph"
)

// FieldsEqual builds a comparison validator: it receives the owning
// instance and requires the two accessor results to be equal. Register it
// with formgraph.CompareWithMember so the core passes the whole instance.
func FieldsEqual[O any, V comparable](get, getOther func(O) V, message string) formgraph.ValidatorFunc[O] {
	return func(ctx context.Context, owner O, path string) formgraph.Result {
		if get(owner) == getOther(owner) {
			return formgraph.Valid(owner)
		}
		return formgraph.Invalid(formgraph.Failure{Message: message, Path: path})
	}
}

// EqualsValue returns a validator requiring the field value to equal a
// fixed comparison value captured at factory time. Pairs with
// formgraph.CompareWithValue.
func EqualsValue[V comparable](want V, message string) formgraph.ValidatorFunc[V] {
	return func(ctx context.Context, value V, path string) formgraph.Result {
		if value == want {
			return formgraph.Valid(value)
		}
		return formgraph.Invalid(formgraph.Failure{Message: message, Path: path})
	}
}
