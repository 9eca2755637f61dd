package bits

import (
	"errors"

	"github.com/zeebo/errs"
)

// Error taxonomy shared by all subpackages. Every failure raised anywhere in
// the module belongs to exactly one of these classes; package-level Error
// classes are layered on top for provenance.
var (
	// ErrInvalidFormat marks malformed base-string input (wrong digit set
	// for the declared base).
	ErrInvalidFormat = errs.Class("invalid format")

	// ErrInvalidArgument marks a negative size, an unsupported base, or a
	// bad format specifier.
	ErrInvalidArgument = errs.Class("invalid argument")

	// ErrSizeMismatch marks a bit vector whose length does not equal an
	// expected declared or computed width.
	ErrSizeMismatch = errs.Class("size mismatch")

	// ErrIndexOutOfRange marks an index or slice bound outside the current
	// length.
	ErrIndexOutOfRange = errs.Class("index out of range")

	// ErrUnderflow marks a pop from an empty sequence.
	ErrUnderflow = errs.Class("underflow")

	// ErrNotFound marks a remove or index call whose target is absent.
	ErrNotFound = errs.Class("not found")

	// ErrRange marks an integer or exponent that does not fit the requested
	// bit length under the requested format.
	ErrRange = errs.Class("out of range")

	// ErrConversion marks a value whose declared type cannot be derived
	// from the supplied source.
	ErrConversion = errs.Class("conversion")
)

// Is reports whether err or any error it wraps belongs to the given class.
// Unlike Class.Has alone, this walks through foreign wrappers such as the
// field-path errors produced by the structure package.
func Is(err error, class *errs.Class) bool {
	for err != nil {
		if class.Has(err) {
			return true
		}
		err = errors.Unwrap(err)
	}

	return false
}
