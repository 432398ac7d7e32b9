// Package buildrt holds the runtime support imported by generated builders.
package buildrt

import (
	"errors"
	"fmt"
)

// ErrMissingField is matched by every *MissingFieldError.
var ErrMissingField = errors.New("required field is not set")

// MissingFieldError is returned by a generated Build method when a required
// field was never given a value.
type MissingFieldError struct {
	// Record is the type the builder produces.
	Record string
	// Field is the first required field, in declared order, that is unset.
	Field string
}

func (e *MissingFieldError) Error() string {
	if e.Record == "" {
		return fmt.Sprintf("field %s is not set", e.Field)
	}

	return fmt.Sprintf("%s: field %s is not set", e.Record, e.Field)
}

// Is reports whether target is ErrMissingField.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// FieldName returns the name of the missing field of err, if err is or wraps
// a *MissingFieldError.
func FieldName(err error) (string, bool) {
	var mf *MissingFieldError
	if errors.As(err, &mf) {
		return mf.Field, true
	}

	return "", false
}
