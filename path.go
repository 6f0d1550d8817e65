package formgraph

import (
	"reflect"
	"strings"
)

// ItemToken is the literal member name an indexer selection resolves to.
const ItemToken = "Item"

// IndexSelector selects a collection element rather than a named member.
type IndexSelector struct{}

// RootSelector selects the root parameter itself rather than one of its
// members.
type RootSelector struct{}

// MemberName resolves a member selector to a name against the root model
// type. Supported selector forms: a plain field name string, IndexSelector
// (resolves to the literal "Item"), and RootSelector or nil (resolves to the
// root type's name). Any other selector resolves to a deterministic fallback
// combining the root type name and the selector's own type name. MemberName
// never fails.
func MemberName(root any, selector any) string {
	rt := reflect.TypeOf(root)
	switch s := selector.(type) {
	case string:
		return s
	case IndexSelector:
		return ItemToken
	case RootSelector:
		return typeName(rt)
	case nil:
		return typeName(rt)
	default:
		return typeName(rt) + "_" + typeName(reflect.TypeOf(s))
	}
}

// JoinKey builds a dotted path key from a parent and member name. A blank
// parent collapses to the bare member name.
func JoinKey(parent, member string) string {
	if strings.TrimSpace(parent) == "" {
		return member
	}
	return parent + "." + member
}

func typeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if n := t.Name(); n != "" {
		return n
	}
	return t.String()
}

// identitySet tracks visited object instances by reference identity. It is
// allocated fresh per top-level request and never shared across requests.
type identitySet map[uintptr]struct{}

func (s identitySet) has(p uintptr) bool {
	_, ok := s[p]
	return ok
}

func (s identitySet) add(p uintptr) {
	s[p] = struct{}{}
}

// PathFromRoot returns the name of the immediate child property of root
// whose value is reference-identical to target, or whose subgraph
// (recursively, or through one unwrap level of a collection) contains
// target. It returns "" when root or target is nil or no path exists.
func PathFromRoot(root, target any) string {
	return pathFromRoot(root, target, make(identitySet))
}

func pathFromRoot(root, target any, seen identitySet) string {
	if root == nil || target == nil {
		return ""
	}
	tp, ok := refIdentity(reflect.ValueOf(target))
	if !ok {
		return ""
	}
	sch, rv, ok := schemaFor(root)
	if !ok {
		return ""
	}
	if p, ok := refIdentity(reflect.ValueOf(root)); ok {
		seen.add(p)
	}
	for _, d := range sch.Fields {
		if fieldHoldsTarget(d.value(rv), tp, seen) {
			return d.Name
		}
	}
	return ""
}

// fieldHoldsTarget reports whether a property value is the target instance
// itself or reaches it through nested structs or collection items.
func fieldHoldsTarget(fv reflect.Value, tp uintptr, seen identitySet) bool {
	if identityMatches(fv, tp) {
		return true
	}
	uw := unwrapValue(fv)
	if !uw.IsValid() || isAtomicValue(uw) {
		return false
	}
	switch uw.Kind() {
	case reflect.Struct:
		return subgraphContains(fv, tp, seen)
	case reflect.Slice, reflect.Array:
		// Collection properties are inspected item by item, never as the
		// collection object itself.
		for i := 0; i < uw.Len(); i++ {
			item := uw.Index(i)
			if identityMatches(item, tp) {
				return true
			}
			iw := unwrapValue(item)
			if !iw.IsValid() || isAtomicValue(iw) {
				continue
			}
			if iw.Kind() == reflect.Struct && subgraphContains(item, tp, seen) {
				return true
			}
		}
	}
	return false
}

func subgraphContains(node reflect.Value, tp uintptr, seen identitySet) bool {
	if p, ok := refIdentity(node); ok {
		if seen.has(p) {
			return false
		}
		seen.add(p)
	}
	uw := unwrapValue(node)
	if !uw.IsValid() || uw.Kind() != reflect.Struct || uw.Type() == timeType {
		return false
	}
	sch := schemaOf(uw.Type())
	if sch == nil {
		return false
	}
	for _, d := range sch.Fields {
		if fieldHoldsTarget(d.value(uw), tp, seen) {
			return true
		}
	}
	return false
}

// identityMatches reports whether v refers to the same instance identified
// by tp. Addressable struct values match through their address so targets
// captured as &root.Member resolve correctly.
func identityMatches(v reflect.Value, tp uintptr) bool {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return false
	}
	if v.Kind() == reflect.Pointer {
		return !v.IsNil() && v.Pointer() == tp
	}
	if v.CanAddr() {
		return v.Addr().Pointer() == tp
	}
	return false
}

// refIdentity returns the reference identity of a node, when it has one.
func refIdentity(v reflect.Value) (uintptr, bool) {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return 0, false
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return 0, false
	}
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return 0, false
		}
		return v.Pointer(), true
	}
	if v.CanAddr() {
		return v.Addr().Pointer(), true
	}
	return 0, false
}
