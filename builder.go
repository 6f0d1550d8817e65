package formgraph

import (
	"fmt"
	"reflect"
)

// Builder accumulates validator registrations for one root model type T.
// The builder owns a private mutable map for the duration of the session;
// Build finalizes it into an immutable Registry snapshot, so concurrent
// validation runs can safely share the result. Registering the same path
// twice replaces the prior entry, last write wins.
type Builder[T any] struct {
	rootType reflect.Type
	rootName string
	entries  map[string]*envelope
}

// NewBuilder creates a registration builder for the model type T.
func NewBuilder[T any]() *Builder[T] {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	return &Builder[T]{
		rootType: rt,
		rootName: typeName(rt),
		entries:  make(map[string]*envelope),
	}
}

// RootName returns the dotted-key root segment used for direct members of T.
func (b *Builder[T]) RootName() string {
	return b.rootName
}

// Build freezes the accumulated registrations into an immutable Registry.
// An empty builder is a configuration error.
func (b *Builder[T]) Build() (*Registry, error) {
	if len(b.entries) == 0 {
		return nil, ErrEmptyRegistry
	}
	entries := make(map[string]*envelope, len(b.entries))
	for k, v := range b.entries {
		entries[k] = v
	}
	return &Registry{rootName: b.rootName, entries: entries}, nil
}

func (b *Builder[T]) register(member string, env *envelope) {
	b.entries[JoinKey(b.rootName, member)] = env
}

// checkField verifies at build time that member exists on the root type and,
// when a declared value type is supplied, that it matches the field's type.
// This catches registry/model drift before any validation run.
func (b *Builder[T]) checkField(member string, want reflect.Type, derefOK bool) error {
	sch := schemaOf(b.rootType)
	if sch == nil {
		return fmt.Errorf("%w: %s", ErrInvalidModel, b.rootType)
	}
	d := sch.field(member)
	if d == nil {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, b.rootName, member)
	}
	if want == nil || d.Type == want {
		return nil
	}
	if derefOK && d.Type.Kind() == reflect.Pointer && d.Type.Elem() == want {
		return nil
	}
	return fmt.Errorf("field %s.%s is %s, validator declared for %s", b.rootName, member, d.Type, want)
}

// FieldOption adjusts a single registration.
type FieldOption func(*fieldOptions)

type fieldOptions struct {
	displayName string
	optional    bool
}

// WithDisplayName sets the human-readable name stamped onto failures for
// this registration, overriding the name derived from the field name.
func WithDisplayName(name string) FieldOption {
	return func(o *fieldOptions) { o.displayName = name }
}

// Optional marks the registration as null-skipping: an absent value
// short-circuits to valid without invoking the validator.
func Optional() FieldOption {
	return func(o *fieldOptions) { o.optional = true }
}

func collectFieldOptions(opts []FieldOption) fieldOptions {
	var o fieldOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Member registers a required validator for a direct member of T. The
// declared value type V must match the field's type (or its pointer
// element), which is verified at registration time.
func Member[T, V any](b *Builder[T], field string, fn ValidatorFunc[V], opts ...FieldOption) error {
	return addMember(b, field, fn, false, opts)
}

// NullableMember registers a member validator that short-circuits to valid
// when the field value is absent.
func NullableMember[T, V any](b *Builder[T], field string, fn ValidatorFunc[V], opts ...FieldOption) error {
	return addMember(b, field, fn, true, opts)
}

// NullableScalar registers a validator for a pointer-typed scalar field
// declared as *V. Present values are dereferenced and validated as V;
// absent values are skipped.
func NullableScalar[T, V any](b *Builder[T], field string, fn ValidatorFunc[V], opts ...FieldOption) error {
	return addMember(b, field, fn, true, opts)
}

func addMember[T, V any](b *Builder[T], field string, fn ValidatorFunc[V], optional bool, opts []FieldOption) error {
	if fn == nil {
		return ErrNilValidator
	}
	want := reflect.TypeOf((*V)(nil)).Elem()
	if err := b.checkField(field, want, true); err != nil {
		return err
	}
	o := collectFieldOptions(opts)
	b.register(field, boxValidator(field, KindMember, optional || o.optional, o.displayName, fn))
	return nil
}

// Nested registers a required nested complex member and, when sub is
// non-nil, attaches the pre-built sub-registry under the member name: every
// sub key's root segment is rewritten to field (two-segment rule, see
// rewriteKey). A nil sub registers only the structural requirement.
func Nested[T any](b *Builder[T], field string, sub *Registry, opts ...FieldOption) error {
	return addNested(b, field, sub, false, opts)
}

// NullableNested is Nested for members that may legitimately be absent: a
// nil value skips both the structural failure and the descent.
func NullableNested[T any](b *Builder[T], field string, sub *Registry, opts ...FieldOption) error {
	return addNested(b, field, sub, true, opts)
}

func addNested[T any](b *Builder[T], field string, sub *Registry, optional bool, opts []FieldOption) error {
	if err := b.checkField(field, nil, false); err != nil {
		return err
	}
	o := collectFieldOptions(opts)
	b.register(field, nestedEnvelope(field, optional || o.optional, o.displayName))
	if sub != nil {
		for k, env := range sub.entries {
			b.entries[rewriteKey(field, k)] = env
		}
	}
	return nil
}

// EachItemMember registers a validator for a member of each complex item of
// a collection field. Keys are rooted at the collection member's name, which
// is exactly how the walker keys its per-item recursion, so the validator
// fires once per item.
func EachItemMember[T, V any](b *Builder[T], collection, itemField string, fn ValidatorFunc[V], opts ...FieldOption) error {
	if fn == nil {
		return ErrNilValidator
	}
	if err := b.checkField(collection, nil, false); err != nil {
		return err
	}
	want := reflect.TypeOf((*V)(nil)).Elem()
	if err := checkItemField[T](b, collection, itemField, want); err != nil {
		return err
	}
	o := collectFieldOptions(opts)
	b.entries[JoinKey(collection, itemField)] = boxValidator(itemField, KindMember, o.optional, o.displayName, fn)
	return nil
}

// checkItemField verifies the item member when the collection's element
// type is statically known. Interface-typed elements are checked at
// invocation time instead.
func checkItemField[T any](b *Builder[T], collection, itemField string, want reflect.Type) error {
	d := schemaOf(b.rootType).field(collection)
	if d == nil {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, b.rootName, collection)
	}
	if d.Type.Kind() != reflect.Slice && d.Type.Kind() != reflect.Array {
		return fmt.Errorf("field %s.%s is %s, not a collection", b.rootName, collection, d.Type)
	}
	elem := d.Type.Elem()
	for elem.Kind() == reflect.Pointer {
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Struct {
		if elem.Kind() == reflect.Interface {
			return nil
		}
		return fmt.Errorf("items of %s.%s are %s, unsupported for per-item validation", b.rootName, collection, elem)
	}
	esch := schemaOf(elem)
	if esch == nil {
		return fmt.Errorf("items of %s.%s are %s, unsupported for per-item validation", b.rootName, collection, elem)
	}
	ed := esch.field(itemField)
	if ed == nil {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, elem.Name(), itemField)
	}
	if ed.Type != want && !(ed.Type.Kind() == reflect.Pointer && ed.Type.Elem() == want) {
		return fmt.Errorf("field %s.%s is %s, validator declared for %s", elem.Name(), itemField, ed.Type, want)
	}
	return nil
}

// Collection registers a collection-level validator invoked once against
// the whole collection instance, independent of any per-item validators
// registered for the same field. S must be the field's own collection type.
func Collection[T, S any](b *Builder[T], field string, fn ValidatorFunc[S], opts ...FieldOption) error {
	if fn == nil {
		return ErrNilValidator
	}
	want := reflect.TypeOf((*S)(nil)).Elem()
	if err := b.checkField(field, want, false); err != nil {
		return err
	}
	o := collectFieldOptions(opts)
	b.register(field, boxValidator(field, KindCollection, o.optional, o.displayName, fn))
	return nil
}

// CompareWithMember registers a comparison validator for field against a
// sibling member. Comparison validators need sibling context, so they
// receive the owning instance rather than the extracted field value.
func CompareWithMember[T any](b *Builder[T], field, other string, fn ValidatorFunc[*T], opts ...FieldOption) error {
	if fn == nil {
		return ErrNilValidator
	}
	if err := b.checkField(field, nil, false); err != nil {
		return err
	}
	if err := b.checkField(other, nil, false); err != nil {
		return err
	}
	o := collectFieldOptions(opts)
	b.register(field, boxValidator(field, KindComparison, o.optional, o.displayName, fn))
	return nil
}

// CompareWithValue registers a validator comparing field against a fixed
// value. The comparison value is captured by the factory closure, so the
// envelope dispatches on the extracted field value like a plain member
// registration.
func CompareWithValue[T, V any](b *Builder[T], field string, fn ValidatorFunc[V], opts ...FieldOption) error {
	return addMember(b, field, fn, false, opts)
}
