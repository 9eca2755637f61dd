package structure

import (
	"fmt"

	"github.com/zeebo/errs"
)

var Error = errs.Class("structure")

// FieldError locates a codec error within a struct while preserving the
// underlying error's kind through Unwrap.
type FieldError struct {
	Field      string
	Struct     string
	Underlying error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s of %s: %v", e.Field, e.Struct, e.Underlying)
}

func (e *FieldError) Unwrap() error {
	return e.Underlying
}

func withField(err error, field, owner string) error {
	if err == nil {
		return nil
	}

	return &FieldError{
		Field:      field,
		Struct:     owner,
		Underlying: err,
	}
}
