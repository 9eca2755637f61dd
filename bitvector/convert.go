package bitvector

import (
	"math/big"

	"github.com/calebcase/bits"
)

// ToBytes returns the bits packed into bytes, most significant bit first. A
// final partial byte is padded on the right with zeros.
func (v *BitVector) ToBytes() []byte {
	out := make([]byte, len(v.data))
	copy(out, v.data)

	return out
}

// pad v's bytes to a whole number of bytes with fill on the left.
func (v *BitVector) padded(fill uint8) []byte {
	pad := (8 - v.n&7) & 7
	out := make([]byte, (v.n+pad)/8)
	for i := 0; i < pad; i++ {
		if fill == 1 {
			out[0] |= 0x80 >> i
		}
	}
	for i := 0; i < v.n; i++ {
		if v.bit(i) == 1 {
			out[(pad+i)>>3] |= 0x80 >> ((pad + i) & 7)
		}
	}

	return out
}

// ToBig interprets the bits as an integer. The vector is first padded on the
// left to a whole number of bytes, with the sign bit when signed and zeros
// otherwise; the padded bytes are then read in the given byte order. An
// empty vector is zero.
func (v *BitVector) ToBig(endianness bits.Endianness, signed bool) (*big.Int, error) {
	if !endianness.Valid() {
		return nil, Error.Wrap(bits.ErrInvalidArgument.New(
			"invalid endianness %q", endianness))
	}

	if v.n == 0 {
		return new(big.Int), nil
	}

	fill := uint8(0)
	if signed && v.bit(0) == 1 {
		fill = 1
	}
	pb := v.padded(fill)

	if endianness == bits.LittleEndian {
		for i, j := 0, len(pb)-1; i < j; i, j = i+1, j-1 {
			pb[i], pb[j] = pb[j], pb[i]
		}
	}

	z := new(big.Int).SetBytes(pb)
	if signed && pb[0]&0x80 != 0 {
		m := new(big.Int).Lsh(big.NewInt(1), uint(8*len(pb)))
		z.Sub(z, m)
	}

	return z, nil
}

// ToUint64 interprets the bits as an unsigned integer. Vectors longer than
// 64 bits are out of range.
func (v *BitVector) ToUint64(endianness bits.Endianness) (uint64, error) {
	if v.n > 64 {
		return 0, Error.Wrap(bits.ErrRange.New(
			"%d bits exceed uint64", v.n))
	}

	z, err := v.ToBig(endianness, false)
	if err != nil {
		return 0, err
	}

	return z.Uint64(), nil
}

// ToInt64 interprets the bits as a two's complement signed integer. Vectors
// longer than 64 bits are out of range.
func (v *BitVector) ToInt64(endianness bits.Endianness) (int64, error) {
	if v.n > 64 {
		return 0, Error.Wrap(bits.ErrRange.New(
			"%d bits exceed int64", v.n))
	}

	z, err := v.ToBig(endianness, true)
	if err != nil {
		return 0, err
	}

	return z.Int64(), nil
}

// MinTwosComplementLen returns the smallest number of bits able to hold val
// in two's complement. Zero needs one bit; negative exact powers of two need
// one bit fewer than other values of the same magnitude.
func MinTwosComplementLen(val *big.Int) int {
	if val.Sign() == 0 {
		return 1
	}

	abs := new(big.Int).Abs(val)
	n := abs.BitLen()

	if val.Sign() < 0 {
		pred := new(big.Int).Sub(abs, big.NewInt(1))
		if new(big.Int).And(abs, pred).Sign() == 0 {
			return n
		}
	}

	return n + 1
}

// FromBig constructs a vector holding val in big endian two's complement.
// size fixes the width in bits; values needing more bits than size fail. A
// size of zero or less selects the minimal width.
func FromBig(val *big.Int, size int) (*BitVector, error) {
	min := MinTwosComplementLen(val)
	if size <= 0 {
		size = min
	} else if min > size {
		return nil, Error.Wrap(bits.ErrRange.New(
			"%v needs %d bits, only %d available", val, min, size))
	}

	// Bit on a negative big.Int yields its two's complement expansion.
	v, _ := FromSize(size)
	for i := 0; i < size; i++ {
		v.setbit(i, uint8(val.Bit(size-1-i)))
	}

	return v, nil
}

// FromInt64 is FromBig for an int64.
func FromInt64(val int64, size int) (*BitVector, error) {
	return FromBig(big.NewInt(val), size)
}

// FromUint64 constructs a vector holding val in big endian binary. size
// fixes the width in bits; a size of zero or less selects the minimal
// unsigned width.
func FromUint64(val uint64, size int) (*BitVector, error) {
	z := new(big.Int).SetUint64(val)

	min := z.BitLen()
	if min == 0 {
		min = 1
	}
	if size <= 0 {
		size = min
	} else if min > size {
		return nil, Error.Wrap(bits.ErrRange.New(
			"%v needs %d bits, only %d available", val, min, size))
	}

	v, _ := FromSize(size)
	for i := 0; i < size; i++ {
		v.setbit(i, uint8(z.Bit(size-1-i)))
	}

	return v, nil
}
