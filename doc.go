// Package bits provides bit-precise binary serialization: typed values
// (integers of arbitrary signedness and representation, floats of arbitrary
// exponent/mantissa split, encoded strings, raw bit buffers, and aggregates
// of these) are encoded into exact-width bit sequences and back, with
// explicit control over endianness, signed-number format, and bit width.
//
// The root package holds only what every subpackage shares: the endianness
// tag and the error taxonomy. The components live below it:
//
//	bitvector - packed mutable sequence of bits, the foundational container
//	integer   - two's-complement / sign-magnitude / one's-complement codec
//	floating  - arbitrary-precision sign/exponent/mantissa float codec
//	native    - fixed-width native integer/float packing (the platform layer)
//	bittype   - fixed-width typed values backed by a bit vector
//	structure - recursive (de)serialization of records and arrays of the above
//
// All operations are synchronous, in-memory transformations. Nothing here
// retries, swallows errors, or holds global state.
package bits
