package integer

import (
	"math/big"

	"github.com/zeebo/errs"

	"github.com/calebcase/bits"
	"github.com/calebcase/bits/bitvector"
)

var Error = errs.Class("integer")

// Format selects the representation used for signed values.
type Format string

const (
	TwosComplement Format = "twoscomp"
	SignMagnitude  Format = "signmag"
	OnesComplement Format = "onescomp"
)

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	switch f {
	case TwosComplement, SignMagnitude, OnesComplement:
		return true
	}

	return false
}

func one() *big.Int {
	return big.NewInt(1)
}

// MinBitLength returns the smallest width able to hold val under the given
// interpretation. Zero needs one bit in every representation. Unsigned
// widths are undefined for negative values.
func MinBitLength(val *big.Int, signed bool, format Format) (int, error) {
	if !signed {
		if val.Sign() < 0 {
			return 0, Error.Wrap(bits.ErrRange.New(
				"negative value %v has no unsigned width", val))
		}
		if val.Sign() == 0 {
			return 1, nil
		}

		return val.BitLen(), nil
	}

	if !format.Valid() {
		return 0, Error.Wrap(bits.ErrInvalidArgument.New(
			"unknown format %q", format))
	}

	if format == TwosComplement {
		return bitvector.MinTwosComplementLen(val), nil
	}

	if val.Sign() == 0 {
		return 1, nil
	}

	return new(big.Int).Abs(val).BitLen() + 1, nil
}

// checkMagnitude enforces |val| <= 2^(bitLength-1) - 1, the shared bound of
// the sign magnitude and one's complement representations.
func checkMagnitude(val *big.Int, bitLength int) error {
	abs := new(big.Int).Abs(val)
	if abs.BitLen() > bitLength-1 {
		return bits.ErrRange.New(
			"%v does not fit %d bits", val, bitLength)
	}

	return nil
}

// Encode renders val into exactly bitLength bits. A bitLength of zero or
// less selects the minimal width. Values outside the representable range of
// the width fail.
func Encode(val *big.Int, signed bool, bitLength int, format Format) (_ *bitvector.BitVector, err error) {
	defer Error.WrapP(&err)

	if bitLength <= 0 {
		bitLength, err = MinBitLength(val, signed, format)
		if err != nil {
			return nil, err
		}
	}

	if !signed {
		if val.Sign() < 0 || val.BitLen() > bitLength {
			return nil, bits.ErrRange.New(
				"%v does not fit %d unsigned bits", val, bitLength)
		}

		return encodeMagnitude(val, bitLength)
	}

	switch format {
	case TwosComplement:
		return bitvector.FromBig(val, bitLength)
	case SignMagnitude:
		if err := checkMagnitude(val, bitLength); err != nil {
			return nil, err
		}

		v, err := bitvector.FromSize(bitLength)
		if err != nil {
			return nil, err
		}
		if val.Sign() < 0 {
			if err := v.Set(0, 1); err != nil {
				return nil, err
			}
		}

		abs := new(big.Int).Abs(val)
		for i := 1; i < bitLength; i++ {
			if err := v.Set(i, uint8(abs.Bit(bitLength-1-i))); err != nil {
				return nil, err
			}
		}

		return v, nil
	case OnesComplement:
		if err := checkMagnitude(val, bitLength); err != nil {
			return nil, err
		}

		v, err := encodeMagnitude(new(big.Int).Abs(val), bitLength)
		if err != nil {
			return nil, err
		}
		if val.Sign() < 0 {
			v = v.Not()
		}

		return v, nil
	default:
		return nil, bits.ErrInvalidArgument.New("unknown format %q", format)
	}
}

// encodeMagnitude writes a non-negative value as plain binary.
func encodeMagnitude(val *big.Int, bitLength int) (*bitvector.BitVector, error) {
	v, err := bitvector.FromSize(bitLength)
	if err != nil {
		return nil, err
	}

	for i := 0; i < bitLength; i++ {
		if err := v.Set(i, uint8(val.Bit(bitLength-1-i))); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// Decode interprets every bit of v as an integer. Decoding an empty vector
// is an error.
func Decode(v *bitvector.BitVector, signed bool, format Format) (_ *big.Int, err error) {
	defer Error.WrapP(&err)

	if v.Len() == 0 {
		return nil, bits.ErrInvalidArgument.New("empty bit vector")
	}

	if !signed {
		return decodeMagnitude(v, 0), nil
	}

	msb, err := v.Get(0)
	if err != nil {
		return nil, err
	}

	switch format {
	case TwosComplement:
		z := decodeMagnitude(v, 0)
		if msb == 1 {
			m := new(big.Int).Lsh(one(), uint(v.Len()))
			z.Sub(z, m)
		}

		return z, nil
	case SignMagnitude:
		z := decodeMagnitude(v, 1)
		if msb == 1 {
			z.Neg(z)
		}

		return z, nil
	case OnesComplement:
		if msb == 0 {
			return decodeMagnitude(v, 0), nil
		}

		// -((2^(n-1) - 1) - rest)
		z := new(big.Int).Lsh(one(), uint(v.Len()-1))
		z.Sub(z, one())
		z.Sub(z, decodeMagnitude(v, 1))
		z.Neg(z)

		return z, nil
	default:
		return nil, bits.ErrInvalidArgument.New("unknown format %q", format)
	}
}

// decodeMagnitude reads v[from:] as plain binary.
func decodeMagnitude(v *bitvector.BitVector, from int) *big.Int {
	z := new(big.Int)
	for i := from; i < v.Len(); i++ {
		b, _ := v.Get(i)
		z.Lsh(z, 1)
		if b == 1 {
			z.Or(z, one())
		}
	}

	return z
}

// EncodeInt64 is Encode for an int64.
func EncodeInt64(val int64, signed bool, bitLength int, format Format) (*bitvector.BitVector, error) {
	return Encode(big.NewInt(val), signed, bitLength, format)
}

// DecodeInt64 is Decode for values known to fit an int64.
func DecodeInt64(v *bitvector.BitVector, signed bool, format Format) (_ int64, err error) {
	defer Error.WrapP(&err)

	z, err := Decode(v, signed, format)
	if err != nil {
		return 0, err
	}
	if !z.IsInt64() {
		return 0, bits.ErrRange.New("%v exceeds int64", z)
	}

	return z.Int64(), nil
}
