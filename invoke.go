package formgraph

import (
	"context"
	"fmt"
	"reflect"
)

// invokeEnvelope reads the current value of field off owner, applies
// optional/null-skip semantics, recovers the envelope's typed function
// through its thunk, and invokes it. A valid outcome carries the root form
// value so callers can chain on it. A registry entry referencing a field
// absent from the live instance is structural drift and fails hard; it is
// never treated as valid.
func invokeEnvelope(ctx context.Context, env *envelope, field string, owner, root any) (Result, error) {
	sch, ov, ok := schemaFor(owner)
	if !ok {
		return Result{}, &DriftError{Type: reflect.TypeOf(owner), Field: field}
	}
	d := sch.field(field)
	if d == nil {
		return Result{}, &DriftError{Type: sch.Type, Field: field}
	}
	if env.call == nil {
		return Result{}, fmt.Errorf("envelope at %s.%s (%s) has no validator function", sch.Name, field, env.kind)
	}

	fv := d.value(ov)
	if isNilValue(fv) && env.optional {
		return Valid(root), nil
	}

	var arg any
	switch env.kind {
	case KindComparison:
		// Comparison validators read sibling fields, so they get the whole
		// owning instance.
		arg = owner
	default:
		v := fv
		if v.Kind() == reflect.Pointer && v.Type().Elem() == env.valueType {
			if v.IsNil() {
				// Required registration on an absent nullable scalar: the
				// recovery thunk substitutes the zero value.
				v = reflect.Value{}
			} else {
				v = v.Elem()
			}
		}
		if v.IsValid() {
			arg = v.Interface()
		}
	}

	res, err := env.call(ctx, arg, "")
	if err != nil {
		return Result{}, err
	}
	if res.IsValid() {
		return Valid(root), nil
	}
	return Result{failures: stampFailures(res.failures, env, field)}, nil
}

// stampFailures fills in positional metadata the validator function could
// not know about, without overwriting anything it did set.
func stampFailures(fs Failures, env *envelope, field string) Failures {
	out := make(Failures, len(fs))
	for i, f := range fs {
		if f.Field == "" {
			f.Field = field
		}
		if f.DisplayName == "" {
			f.DisplayName = env.displayName
		}
		out[i] = f
	}
	return out
}
