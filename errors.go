package formgraph

import (
	"errors"
	"fmt"
	"reflect"
)

// Initialization and configuration errors. These are fatal: a host that hits
// one of them has wired the validator incorrectly and must not start.
var (
	ErrNilModel      = errors.New("root model is nil")
	ErrInvalidModel  = errors.New("root model must be a non-nil pointer to a struct")
	ErrEmptyRegistry = errors.New("registry has no validators")
	ErrNilValidator  = errors.New("validator function is nil")
	ErrUnknownField  = errors.New("field is not declared on the model type")
)

// TypeMismatchError reports a failed recovery of a boxed validator: the
// runtime argument did not match the envelope's declared value type. This
// always indicates a registration bug, never bad user input.
type TypeMismatchError struct {
	Path string
	Want reflect.Type
	Got  reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("validator at %q declared for %s, invoked with %s", e.Path, e.Want, e.Got)
}

// DriftError reports a registry entry referencing a field that does not
// exist on the live instance: the registry and the model have drifted out
// of sync. Fatal at invocation time, never skipped.
type DriftError struct {
	Type  reflect.Type
	Field string
}

func (e *DriftError) Error() string {
	return fmt.Sprintf("registry references field %q which is absent on %s", e.Field, e.Type)
}

// IsTypeMismatch reports whether err is a TypeMismatchError.
func IsTypeMismatch(err error) bool {
	var e *TypeMismatchError
	return errors.As(err, &e)
}

// IsDrift reports whether err is a DriftError.
func IsDrift(err error) bool {
	var e *DriftError
	return errors.As(err, &e)
}
