package formgraph

import (
	"context"
	"reflect"
)

// envelope is the uniform, type-erased carrier for one strongly-typed
// validator plus the metadata needed to invoke and interpret it safely.
// Envelopes of different value types share one registry mapping; the
// declared value type tag is what makes recovery checked rather than blind.
// Immutable once constructed.
type envelope struct {
	field       string
	kind        Kind
	optional    bool
	displayName string
	valueType   reflect.Type
	fn          any       // the original ValidatorFunc[T], kept opaque
	call        callThunk // typed recovery thunk; nil for KindNested
}

type callThunk func(ctx context.Context, arg any, path string) (Result, error)

// boxValidator erases fn's static type into an envelope. The thunk recovers
// it at the call site: the argument is downcast against the declared value
// type tag, and a mismatch fails loudly with TypeMismatchError, never
// silently.
func boxValidator[T any](field string, kind Kind, optional bool, display string, fn ValidatorFunc[T]) *envelope {
	want := reflect.TypeOf((*T)(nil)).Elem()
	return &envelope{
		field:       field,
		kind:        kind,
		optional:    optional,
		displayName: display,
		valueType:   want,
		fn:          fn,
		call: func(ctx context.Context, arg any, path string) (Result, error) {
			v, ok := arg.(T)
			if !ok {
				if arg == nil {
					// A required registration on a nilable field sees the
					// zero value rather than a mismatch.
					var zero T
					return fn(ctx, zero, path), nil
				}
				return Result{}, &TypeMismatchError{Path: path, Want: want, Got: reflect.TypeOf(arg)}
			}
			return fn(ctx, v, path), nil
		},
	}
}

// nestedEnvelope records the structural requirement of a nested complex
// member. It carries no callable; the walker interprets it directly.
func nestedEnvelope(field string, optional bool, display string) *envelope {
	return &envelope{
		field:       field,
		kind:        KindNested,
		optional:    optional,
		displayName: display,
	}
}
