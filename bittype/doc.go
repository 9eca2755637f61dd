// Package bittype provides typed values with an exact bit width.
//
// A Type describes a value shape: an unsigned or signed integer of any
// width up to 64, a floating point value with an arbitrary exponent and
// mantissa split, a string in a declared byte encoding, or an opaque bit
// buffer. Types are created through factory functions and are interned, so
// requesting the same shape twice returns the same *Type:
//
//	u5, _ := bittype.UintType(5)
//	f, _ := bittype.FloatType(8, 7)
//
// A Value pairs a Type with a bit vector holding the encoded bits and an
// endianness tag. The value view and the bit view are two projections of
// the same state: setting one immediately re-derives the other. The
// endianness tag only matters when crossing the byte boundary via Bytes and
// FromBytes, where little endian reverses the whole buffer.
//
// Common shapes are predeclared: U1 through U64, S8 through S64, F16, F32,
// F64, BF16, TF19, FP24, Str8 through Str64, and Buf1 through Buf64.
package bittype
