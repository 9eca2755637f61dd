package native

import (
	"fmt"
	"testing"

	"github.com/calebcase/oops"
	"github.com/stretchr/testify/require"

	"github.com/calebcase/bits"
)

func TestPackUint(t *testing.T) {
	type TC struct {
		name       string
		val        uint64
		width      int
		endianness bits.Endianness
		data       []byte
		Mark       error
	}

	tcs := []TC{
		{
			name:       "u8",
			val:        0xA5,
			width:      8,
			endianness: bits.BigEndian,
			data:       []byte{0xA5},
			Mark:       oops.New("unexpected"),
		},
		{
			name:       "u16 big",
			val:        0x0102,
			width:      16,
			endianness: bits.BigEndian,
			data:       []byte{0x01, 0x02},
			Mark:       oops.New("unexpected"),
		},
		{
			name:       "u16 little",
			val:        0x0102,
			width:      16,
			endianness: bits.LittleEndian,
			data:       []byte{0x02, 0x01},
			Mark:       oops.New("unexpected"),
		},
		{
			name:       "u32 big",
			val:        0x0000017E,
			width:      32,
			endianness: bits.BigEndian,
			data:       []byte{0x00, 0x00, 0x01, 0x7E},
			Mark:       oops.New("unexpected"),
		},
		{
			name:       "u64 little",
			val:        0x0102030405060708,
			width:      64,
			endianness: bits.LittleEndian,
			data:       []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01},
			Mark:       oops.New("unexpected"),
		},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			data, err := PackUint(tc.val, tc.width, tc.endianness)
			require.NoError(t, err, tc.Mark)
			require.Equal(t, tc.data, data, tc.Mark)

			got, err := UnpackUint(data, tc.width, tc.endianness)
			require.NoError(t, err, tc.Mark)
			require.Equal(t, tc.val, got, tc.Mark)
		})
	}

	t.Run("overflow", func(t *testing.T) {
		_, err := PackUint(256, 8, bits.BigEndian)
		require.True(t, bits.Is(err, &bits.ErrRange))
	})

	t.Run("bad width", func(t *testing.T) {
		_, err := PackUint(0, 24, bits.BigEndian)
		require.True(t, bits.Is(err, &bits.ErrInvalidArgument))
	})

	t.Run("bad endianness", func(t *testing.T) {
		_, err := PackUint(0, 8, "middle")
		require.True(t, bits.Is(err, &bits.ErrInvalidArgument))
	})

	t.Run("short input", func(t *testing.T) {
		_, err := UnpackUint([]byte{0x01}, 16, bits.BigEndian)
		require.True(t, bits.Is(err, &bits.ErrSizeMismatch))
	})
}

func TestPackInt(t *testing.T) {
	type TC struct {
		name       string
		val        int64
		width      int
		endianness bits.Endianness
		data       []byte
		Mark       error
	}

	tcs := []TC{
		{
			name:       "minus one is all ones",
			val:        -1,
			width:      8,
			endianness: bits.BigEndian,
			data:       []byte{0b1111_1111},
			Mark:       oops.New("unexpected"),
		},
		{
			name:       "int8 min",
			val:        -128,
			width:      8,
			endianness: bits.BigEndian,
			data:       []byte{0b1000_0000},
			Mark:       oops.New("unexpected"),
		},
		{
			name:       "i16 little",
			val:        -2,
			width:      16,
			endianness: bits.LittleEndian,
			data:       []byte{0xFE, 0xFF},
			Mark:       oops.New("unexpected"),
		},
		{
			name:       "i32 big",
			val:        382,
			width:      32,
			endianness: bits.BigEndian,
			data:       []byte{0x00, 0x00, 0x01, 0x7E},
			Mark:       oops.New("unexpected"),
		},
		{
			name:       "i64 min",
			val:        -9223372036854775808,
			width:      64,
			endianness: bits.BigEndian,
			data:       []byte{0x80, 0, 0, 0, 0, 0, 0, 0},
			Mark:       oops.New("unexpected"),
		},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			data, err := PackInt(tc.val, tc.width, tc.endianness)
			require.NoError(t, err, tc.Mark)
			require.Equal(t, tc.data, data, tc.Mark)

			got, err := UnpackInt(data, tc.width, tc.endianness)
			require.NoError(t, err, tc.Mark)
			require.Equal(t, tc.val, got, tc.Mark)
		})
	}

	t.Run("range", func(t *testing.T) {
		_, err := PackInt(128, 8, bits.BigEndian)
		require.True(t, bits.Is(err, &bits.ErrRange))

		_, err = PackInt(-129, 8, bits.BigEndian)
		require.True(t, bits.Is(err, &bits.ErrRange))
	})
}

func TestPackFloat(t *testing.T) {
	data, err := PackFloat32(1.0, bits.BigEndian)
	require.NoError(t, err)
	require.Equal(t, []byte{0x3F, 0x80, 0x00, 0x00}, data)

	f32, err := UnpackFloat32(data, bits.BigEndian)
	require.NoError(t, err)
	require.Equal(t, float32(1.0), f32)

	data, err = PackFloat64(1.5, bits.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0xF8, 0x3F}, data)

	f64, err := UnpackFloat64(data, bits.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, 1.5, f64)
}
