// Package bitvector provides a packed, mutable, arbitrary-length sequence of
// single-bit elements.
//
// Bit Numbering
//
// Position 0 is the leftmost bit, the first bit on the wire, and the most
// significant bit of the first byte. Within every byte, bits are packed most
// significant first:
//
//	position:  0  1  2  3  4  5  6  7   8  9 ...
//	byte:      [ data[0], MSB first  ]  [ data[1] ...
//
// This is the usual on-disk/wire convention and matches the rendering
// produced by To01, Hex, and friends.
//
// Copy Semantics
//
// Slicing, concatenation, and the transform methods always produce new,
// independent vectors. The single exception is View, which deliberately
// shares the caller's backing bytes; see its documentation for the aliasing
// hazard.
//
// Failure Semantics
//
// Out-of-range indices, malformed base strings, and bit-count mismatches are
// reported as typed errors at the offending call. Nothing is silently
// coerced, truncated, or padded.
package bitvector
