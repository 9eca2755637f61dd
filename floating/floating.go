package floating

import (
	"math"
	"math/big"

	"github.com/zeebo/errs"

	"github.com/calebcase/bits"
	"github.com/calebcase/bits/bitvector"
)

var Error = errs.Class("floating")

// Bias returns the exponent bias for the given exponent width.
func Bias(expBits int) int {
	return 1<<(expBits-1) - 1
}

// maxExpBits keeps the biased exponent inside an int. A 62 bit exponent
// already dwarfs the range of a float64, so nothing representable is lost.
const maxExpBits = 62

func checkWidths(expBits, mantBits int) error {
	if expBits < 1 || mantBits < 1 {
		return bits.ErrInvalidArgument.New(
			"exponent and mantissa need at least one bit each, got %d/%d",
			expBits, mantBits)
	}
	if expBits > maxExpBits {
		return bits.ErrInvalidArgument.New(
			"exponent width %d exceeds %d bits", expBits, maxExpBits)
	}

	return nil
}

// pattern assembles sign, exponent, and mantissa where the exponent and
// mantissa generators give the bit at each position.
func pattern(sign uint8, expBits, mantBits int, exp, mant func(i int) uint8) *bitvector.BitVector {
	v, _ := bitvector.FromSize(1 + expBits + mantBits)
	_ = v.Set(0, sign)
	for i := 0; i < expBits; i++ {
		_ = v.Set(1+i, exp(i))
	}
	for i := 0; i < mantBits; i++ {
		_ = v.Set(1+expBits+i, mant(i))
	}

	return v
}

func zeros(int) uint8 { return 0 }
func ones(int) uint8  { return 1 }

// Encode renders v as 1+expBits+mantBits bits. Negative zero collapses to
// the zero pattern. Values whose biased exponent does not fit expBits fail;
// values too small to contribute any bit within the mantissa budget encode
// as zero.
func Encode(v float64, expBits, mantBits int) (_ *bitvector.BitVector, err error) {
	defer Error.WrapP(&err)

	if err := checkWidths(expBits, mantBits); err != nil {
		return nil, err
	}

	switch {
	case v == 0:
		return pattern(0, expBits, mantBits, zeros, zeros), nil
	case math.IsInf(v, 1):
		return pattern(0, expBits, mantBits, ones, zeros), nil
	case math.IsInf(v, -1):
		return pattern(1, expBits, mantBits, ones, zeros), nil
	case math.IsNaN(v):
		return pattern(0, expBits, mantBits, ones, func(i int) uint8 {
			if i == 0 {
				return 1
			}

			return 0
		}), nil
	}

	sign := uint8(0)
	if v < 0 {
		sign = 1
	}
	abs := math.Abs(v)

	// The integral part exactly, then the fraction by repeated doubling.
	// The fraction expansion stops after mantBits+1 bits; anything finer
	// is below the resolution of the target mantissa.
	integral, _ := big.NewFloat(math.Trunc(abs)).Int(nil)

	intLen := integral.BitLen()
	if intLen == 0 {
		intLen = 1
	}

	combined := make([]uint8, 0, intLen+mantBits+1)
	for i := intLen - 1; i >= 0; i-- {
		combined = append(combined, uint8(integral.Bit(i)))
	}

	frac := abs - math.Trunc(abs)
	for n := 0; frac != 0 && n < mantBits+1; n++ {
		frac *= 2
		b := uint8(frac)
		combined = append(combined, b)
		frac -= float64(b)
	}

	firstOne := -1
	for i, b := range combined {
		if b == 1 {
			firstOne = i

			break
		}
	}
	if firstOne < 0 {
		// Too small to register within the mantissa budget.
		return pattern(sign, expBits, mantBits, zeros, zeros), nil
	}

	exponent := intLen - firstOne - 1
	biased := exponent + Bias(expBits)
	if biased < 0 || biased >= 1<<expBits {
		return nil, bits.ErrRange.New(
			"exponent %d does not fit %d bits", exponent, expBits)
	}

	mantissa := combined[firstOne+1:]

	return pattern(sign, expBits, mantBits,
		func(i int) uint8 {
			return uint8(biased >> (expBits - 1 - i) & 1)
		},
		func(i int) uint8 {
			if i < len(mantissa) {
				return mantissa[i]
			}

			return 0
		},
	), nil
}

// Decode interprets v, which must be exactly 1+expBits+mantBits long, as a
// floating point value. The all ones exponent decodes to infinity or NaN
// and the all zeros pattern to zero, so decode inverts every encoding.
func Decode(v *bitvector.BitVector, expBits, mantBits int) (_ float64, err error) {
	defer Error.WrapP(&err)

	if err := checkWidths(expBits, mantBits); err != nil {
		return 0, err
	}
	if v.Len() != 1+expBits+mantBits {
		return 0, bits.ErrSizeMismatch.New(
			"have %d bits, want %d", v.Len(), 1+expBits+mantBits)
	}

	signBit, _ := v.Get(0)
	sign := 1.0
	if signBit == 1 {
		sign = -1.0
	}

	biased := 0
	expAllOnes := true
	expAllZeros := true
	for i := 0; i < expBits; i++ {
		b, _ := v.Get(1 + i)
		if b == 1 {
			expAllZeros = false
		} else {
			expAllOnes = false
		}
		biased = biased<<1 | int(b)
	}

	mantissa := 0.0
	mantAllZeros := true
	for i := 0; i < mantBits; i++ {
		b, _ := v.Get(1 + expBits + i)
		if b == 1 {
			mantAllZeros = false
			mantissa += math.Ldexp(1, -(i + 1))
		}
	}

	switch {
	case expAllOnes && mantAllZeros:
		return sign * math.Inf(1), nil
	case expAllOnes:
		return math.NaN(), nil
	case expAllZeros && mantAllZeros:
		return sign * 0, nil
	}

	return sign * math.Ldexp(1+mantissa, biased-Bias(expBits)), nil
}
