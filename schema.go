package formgraph

import (
	"reflect"
	"sync"
	"time"
)

// fieldKind is the traversal classification of a declared field.
type fieldKind int

const (
	fieldScalar fieldKind = iota
	fieldStruct
	fieldCollection
	fieldDynamic // interface-typed, classified from the runtime value
)

// fieldDesc describes one exported field of a model type: its name, how the
// walker should treat it, and whether its Go type can hold nil at all.
type fieldDesc struct {
	Name     string
	Index    int
	Kind     fieldKind
	Nullable bool
	Type     reflect.Type
}

// value reads the field off a dereferenced struct value.
func (d *fieldDesc) value(owner reflect.Value) reflect.Value {
	return owner.Field(d.Index)
}

// typeSchema is the descriptor table for one model type, built once per type
// and cached so traversal never repeats per-call metadata lookups. Fields
// preserve declaration order, which fixes failure emission order.
type typeSchema struct {
	Type   reflect.Type
	Name   string
	Fields []*fieldDesc
	byName map[string]*fieldDesc
}

func (s *typeSchema) field(name string) *fieldDesc {
	return s.byName[name]
}

var schemaCache sync.Map // reflect.Type -> *typeSchema

var timeType = reflect.TypeOf(time.Time{})

// schemaOf returns the cached descriptor table for a struct type, building
// it on first use. Pointer types are dereferenced. Returns nil for anything
// that is not a plain struct type.
func schemaOf(t reflect.Type) *typeSchema {
	if t == nil {
		return nil
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || t == timeType {
		return nil
	}
	if cached, ok := schemaCache.Load(t); ok {
		return cached.(*typeSchema)
	}
	built := buildSchema(t)
	actual, _ := schemaCache.LoadOrStore(t, built)
	return actual.(*typeSchema)
}

func buildSchema(t reflect.Type) *typeSchema {
	s := &typeSchema{
		Type:   t,
		Name:   t.Name(),
		byName: make(map[string]*fieldDesc),
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		d := &fieldDesc{
			Name:     f.Name,
			Index:    i,
			Kind:     classifyType(f.Type),
			Nullable: nullableType(f.Type),
			Type:     f.Type,
		}
		s.Fields = append(s.Fields, d)
		s.byName[f.Name] = d
	}
	return s
}

func classifyType(t reflect.Type) fieldKind {
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return fieldCollection
	case reflect.Struct:
		if t == timeType {
			return fieldScalar
		}
		return fieldStruct
	case reflect.Pointer:
		if t.Elem().Kind() == reflect.Struct && t.Elem() != timeType {
			return fieldStruct
		}
		return fieldScalar
	case reflect.Interface:
		return fieldDynamic
	default:
		return fieldScalar
	}
}

func nullableType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return true
	}
	return false
}

// schemaFor resolves the schema and dereferenced struct value of a live
// instance. ok is false for nil values, nil pointers, and non-structs.
func schemaFor(v any) (*typeSchema, reflect.Value, bool) {
	if v == nil {
		return nil, reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, reflect.Value{}, false
	}
	sch := schemaOf(rv.Type())
	if sch == nil {
		return nil, reflect.Value{}, false
	}
	return sch, rv, true
}

// isNilValue reports whether a field value is absent.
func isNilValue(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return v.IsNil()
	}
	return false
}

// unwrapValue strips interface and pointer indirection. The result is
// invalid if the chain ends in nil.
func unwrapValue(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// isAtomicValue reports whether an unwrapped value is a primitive or atomic
// string, which the walker does not descend into.
func isAtomicValue(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.String:
		return true
	case reflect.Struct:
		return v.Type() == timeType
	}
	return false
}
