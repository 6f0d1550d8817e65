package formgraph

import (
	"context"
	"fmt"
	"reflect"
)

// publishFunc receives per-field failures as the walker finds them, keyed
// by field identity.
type publishFunc func(ref FieldRef, failures Failures)

// visitChain is a persistent identity set passed down the recursion: each
// call extends the chain instead of mutating one shared set, so a node
// reachable through multiple non-cyclic sibling paths is still visited on
// each path while true cycles terminate.
type visitChain struct {
	ptr  uintptr
	prev *visitChain
}

func (c *visitChain) has(p uintptr) bool {
	for n := c; n != nil; n = n.prev {
		if n.ptr == p {
			return true
		}
	}
	return false
}

func (c *visitChain) with(p uintptr) *visitChain {
	return &visitChain{ptr: p, prev: c}
}

type walker struct {
	reg     *Registry
	root    any
	publish publishFunc
}

// walkModel validates the entire graph reachable from root, applying every
// registered validator at its corresponding dotted path. Failures are
// published per field identity as they are found and aggregated into the
// returned result; the traversal is sequential, so emission follows field
// declaration order.
func walkModel(ctx context.Context, root any, reg *Registry, publish publishFunc) (Result, error) {
	sch, _, ok := schemaFor(root)
	if !ok {
		return Result{}, fmt.Errorf("%w: got %T", ErrInvalidModel, root)
	}
	w := &walker{reg: reg, root: root, publish: publish}
	fails, err := w.walk(ctx, root, sch.Name, nil)
	if err != nil {
		return Result{}, err
	}
	if len(fails) == 0 {
		return Valid(root), nil
	}
	return Result{failures: fails}, nil
}

func (w *walker) walk(ctx context.Context, node any, parentName string, seen *visitChain) (Failures, error) {
	if p, ok := refIdentity(reflect.ValueOf(node)); ok {
		if seen.has(p) {
			// Cycle: this branch terminates without failures.
			return nil, nil
		}
		seen = seen.with(p)
	}
	sch, nv, ok := schemaFor(node)
	if !ok {
		return nil, nil
	}

	var all Failures
	for _, d := range sch.Fields {
		fv := d.value(nv)
		key := JoinKey(parentName, d.Name)

		switch classifyValue(d, fv) {
		case fieldCollection:
			fails, err := w.walkCollection(ctx, node, d, fv, key, seen)
			if err != nil {
				return nil, err
			}
			all = append(all, fails...)
		case fieldStruct:
			fails, err := w.walkNested(ctx, node, d, fv, key, seen)
			if err != nil {
				return nil, err
			}
			all = append(all, fails...)
		default:
			env, found := w.reg.lookup(key)
			if !found || env.kind == KindCollection || env.kind == KindNested {
				continue
			}
			fails, err := w.apply(ctx, env, node, d.Name, key)
			if err != nil {
				return nil, err
			}
			all = append(all, fails...)
		}
	}
	return all, nil
}

// classifyValue resolves interface-typed fields from their runtime value;
// statically typed fields keep their schema classification.
func classifyValue(d *fieldDesc, fv reflect.Value) fieldKind {
	if d.Kind != fieldDynamic {
		return d.Kind
	}
	uw := unwrapValue(fv)
	if !uw.IsValid() || isAtomicValue(uw) {
		return fieldScalar
	}
	switch uw.Kind() {
	case reflect.Slice, reflect.Array:
		return fieldCollection
	case reflect.Struct:
		return fieldStruct
	}
	return fieldScalar
}

// walkCollection runs the collection-level validator if one is registered,
// then, independently, recurses into each complex item with the collection
// member's name as the new parent. Primitive and atomic-string items are
// unsupported for per-item validation and skipped silently.
func (w *walker) walkCollection(ctx context.Context, node any, d *fieldDesc, fv reflect.Value, key string, seen *visitChain) (Failures, error) {
	var all Failures
	if env, ok := w.reg.lookup(key); ok && env.kind == KindCollection {
		if !(isNilValue(fv) && env.optional) {
			fails, err := w.apply(ctx, env, node, d.Name, key)
			if err != nil {
				return nil, err
			}
			all = append(all, fails...)
		}
	}

	items := unwrapValue(fv)
	if !items.IsValid() || items.Len() == 0 {
		return all, nil
	}
	for i := 0; i < items.Len(); i++ {
		item := items.Index(i)
		uw := unwrapValue(item)
		if !uw.IsValid() || isAtomicValue(uw) {
			continue
		}
		child := itemNode(item)
		if child == nil {
			continue
		}
		fails, err := w.walk(ctx, child, d.Name, seen)
		if err != nil {
			return nil, err
		}
		all = append(all, fails...)
	}
	return all, nil
}

// walkNested handles a complex non-enumerable member: absent values either
// produce a structural failure (required) or are skipped (nullable or
// unregistered); present values are descended into.
func (w *walker) walkNested(ctx context.Context, node any, d *fieldDesc, fv reflect.Value, key string, seen *visitChain) (Failures, error) {
	if isNilValue(fv) {
		if env, ok := w.reg.lookup(key); ok && env.kind == KindNested && !env.optional {
			f := Failure{
				Message:     d.Name + " cannot be null",
				Path:        key,
				Field:       d.Name,
				DisplayName: env.displayName,
			}
			w.publishFailures(node, d.Name, Failures{f})
			return Failures{f}, nil
		}
		return nil, nil
	}
	child := itemNode(fv)
	if child == nil {
		return nil, nil
	}
	return w.walk(ctx, child, d.Name, seen)
}

// apply invokes one envelope against node's field and publishes any
// failures against the (node, field) identity.
func (w *walker) apply(ctx context.Context, env *envelope, node any, field, key string) (Failures, error) {
	res, err := invokeEnvelope(ctx, env, field, node, w.root)
	if err != nil {
		return nil, err
	}
	if res.IsValid() {
		return nil, nil
	}
	fails := stampPath(res.failures, key)
	w.publishFailures(node, field, fails)
	return fails, nil
}

func (w *walker) publishFailures(node any, field string, fails Failures) {
	if w.publish == nil || len(fails) == 0 {
		return
	}
	w.publish(FieldRef{Owner: node, Field: field}, fails)
}

func stampPath(fs Failures, key string) Failures {
	out := make(Failures, len(fs))
	for i, f := range fs {
		if f.Path == "" {
			f.Path = key
		}
		out[i] = f
	}
	return out
}

// itemNode converts a traversal value into a node instance, preferring a
// pointer so identity-based cycle detection and field identities hold.
func itemNode(item reflect.Value) any {
	v := item
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return nil
	}
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		return v.Interface()
	}
	if v.CanAddr() {
		return v.Addr().Interface()
	}
	return v.Interface()
}
