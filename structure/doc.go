// Package structure serializes Go values to and from bit vectors by
// reflection.
//
// A value's fields are encoded in declaration order with no padding
// between them. Untagged native fields use their natural widths (an int32
// is 32 bits, a bool is a single bit); a `bits:"..."` struct tag declares
// a custom shape:
//
//	type Frame struct {
//		Version uint8                `bits:"uint:3"`
//		Delta   int16                `bits:"int:12,onescomp"`
//		Scale   float32              `bits:"float:8/7"`
//		Name    string               `bits:"string:64,utf-8"`
//		Flags   *bitvector.BitVector `bits:"buffer:4"`
//		scratch int                  `bits:"-"`
//	}
//
// Codecs are resolved once per reflect.Type and cached, so repeated
// marshals of the same type only pay for the reflection walk the first
// time.
//
// Unmarshal of a struct or single value demands the input width match the
// type's width exactly. Slice targets instead consume the input as a run
// of fixed size chunks where the final chunk may be short.
package structure
