// Package native packs fixed width machine integers and IEEE floats into
// bytes. It covers exactly what the platform does natively: widths 8, 16,
// 32, and 64, both byte orders, two's complement for signed values.
package native

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/errs"

	"github.com/calebcase/bits"
)

var Error = errs.Class("native")

func byteOrder(endianness bits.Endianness) (binary.ByteOrder, error) {
	switch endianness {
	case bits.BigEndian:
		return binary.BigEndian, nil
	case bits.LittleEndian:
		return binary.LittleEndian, nil
	}

	return nil, bits.ErrInvalidArgument.New("invalid endianness %q", endianness)
}

func checkWidth(width int) error {
	switch width {
	case 8, 16, 32, 64:
		return nil
	}

	return bits.ErrInvalidArgument.New("width %d is not a native width", width)
}

// PackUint writes v into width/8 bytes in the given byte order. Values that
// do not fit the width fail.
func PackUint(v uint64, width int, endianness bits.Endianness) (_ []byte, err error) {
	defer Error.WrapP(&err)

	if err := checkWidth(width); err != nil {
		return nil, err
	}
	if width < 64 && v >= uint64(1)<<width {
		return nil, bits.ErrRange.New("%d does not fit %d bits", v, width)
	}

	order, err := byteOrder(endianness)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 8)
	order.PutUint64(out, v)
	if order == binary.BigEndian {
		return out[8-width/8:], nil
	}

	return out[:width/8], nil
}

// UnpackUint is the inverse of PackUint. The input must be exactly width/8
// bytes.
func UnpackUint(b []byte, width int, endianness bits.Endianness) (_ uint64, err error) {
	defer Error.WrapP(&err)

	if err := checkWidth(width); err != nil {
		return 0, err
	}
	if len(b) != width/8 {
		return 0, bits.ErrSizeMismatch.New(
			"have %d bytes, want %d", len(b), width/8)
	}

	order, err := byteOrder(endianness)
	if err != nil {
		return 0, err
	}

	full := make([]byte, 8)
	if order == binary.BigEndian {
		copy(full[8-len(b):], b)
	} else {
		copy(full, b)
	}

	return order.Uint64(full), nil
}

// PackInt writes v in two's complement into width/8 bytes in the given byte
// order.
func PackInt(v int64, width int, endianness bits.Endianness) (_ []byte, err error) {
	defer Error.WrapP(&err)

	if err := checkWidth(width); err != nil {
		return nil, err
	}
	if width < 64 {
		lo := int64(-1) << (width - 1)
		hi := int64(1)<<(width-1) - 1
		if v < lo || v > hi {
			return nil, bits.ErrRange.New(
				"%d does not fit %d signed bits", v, width)
		}
	}

	mask := ^uint64(0)
	if width < 64 {
		mask = uint64(1)<<width - 1
	}

	return PackUint(uint64(v)&mask, width, endianness)
}

// UnpackInt is the inverse of PackInt.
func UnpackInt(b []byte, width int, endianness bits.Endianness) (_ int64, err error) {
	defer Error.WrapP(&err)

	u, err := UnpackUint(b, width, endianness)
	if err != nil {
		return 0, err
	}

	// Sign extend.
	shift := 64 - width
	return int64(u<<shift) >> shift, nil
}

// PackFloat32 writes the IEEE 754 single precision bits of v.
func PackFloat32(v float32, endianness bits.Endianness) ([]byte, error) {
	return PackUint(uint64(math.Float32bits(v)), 32, endianness)
}

// UnpackFloat32 is the inverse of PackFloat32.
func UnpackFloat32(b []byte, endianness bits.Endianness) (float32, error) {
	u, err := UnpackUint(b, 32, endianness)
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(uint32(u)), nil
}

// PackFloat64 writes the IEEE 754 double precision bits of v.
func PackFloat64(v float64, endianness bits.Endianness) ([]byte, error) {
	return PackUint(math.Float64bits(v), 64, endianness)
}

// UnpackFloat64 is the inverse of PackFloat64.
func UnpackFloat64(b []byte, endianness bits.Endianness) (float64, error) {
	u, err := UnpackUint(b, 64, endianness)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(u), nil
}
