// Package floating encodes floating point values into bit vectors with an
// arbitrary split between exponent and mantissa widths.
//
// The layout follows the usual IEEE 754 arrangement:
//
//	[ sign | exponent (E bits) | mantissa (M bits) ]
//
// The exponent is stored biased by 2^(E-1) - 1 and the mantissa carries an
// implicit leading one. Mantissa bits beyond M are truncated, never rounded.
// Zero, the infinities, and NaN use their conventional patterns; -0.0
// collapses to the all zeros pattern on encode.
//
// The same algorithm serves every width, including the standard 16, 32, and
// 64 bit splits, so narrowing a value behaves identically no matter the
// target.
package floating
