// Package integer encodes arbitrary precision integers into bit vectors of
// an exact width.
//
// Three signed representations are supported:
//
//	two's complement   range [-2^(n-1), 2^(n-1))
//	sign magnitude     range [-(2^(n-1) - 1), 2^(n-1) - 1]
//	one's complement   range [-(2^(n-1) - 1), 2^(n-1) - 1]
//
// Two's complement has the usual asymmetric range; the other two spend one
// pattern on a negative zero and are symmetric. Unsigned encoding ignores
// the representation and covers [0, 2^n).
//
// Values are math/big integers so the width is limited only by memory.
// Fixed width native integers are better served by the native package.
package integer
