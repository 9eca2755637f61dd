package structure

import (
	"errors"
	"fmt"
	"testing"

	"github.com/calebcase/oops"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/calebcase/bits"
	"github.com/calebcase/bits/bittype"
	"github.com/calebcase/bits/bitvector"
)

func mustBits(t testing.TB, s string) *bitvector.BitVector {
	t.Helper()

	v, err := bitvector.From01(s)
	require.NoError(t, err)

	return v
}

type record struct {
	Int32   int32
	Float32 float32
	Buffer4 *bitvector.BitVector `bits:"buffer:4"`
}

func TestMarshalRecord(t *testing.T) {
	rec := record{
		Int32:   382,
		Float32: 3.1415927410125732421875,
		Buffer4: mustBits(t, "0100"),
	}

	size, err := BitSize(rec)
	require.NoError(t, err)
	require.Equal(t, 68, size)

	bv, err := Marshal(rec)
	require.NoError(t, err)
	require.Equal(t, 68, bv.Len())

	want := mustBits(t, "0000_0000 0000_0000 0000_0001 0111_1110").
		Concat(
			mustBits(t, "0100_0000 0100_1001 0000_1111 1101_1011"),
			mustBits(t, "0100"),
		)
	require.True(t, bv.Equal(want), bv)

	var back record
	require.NoError(t, Unmarshal(bv, &back))

	t.Logf("Record: %s\n", spew.Sdump(back))

	require.Equal(t, rec.Int32, back.Int32)
	require.Equal(t, rec.Float32, back.Float32)
	require.True(t, back.Buffer4.Equal(rec.Buffer4))

	t.Run("bytes", func(t *testing.T) {
		type TC struct {
			name       string
			endianness bits.Endianness
			data       []byte
			Mark       error
		}

		tcs := []TC{
			{
				name:       "big",
				endianness: bits.BigEndian,
				data: []byte{
					0x00, 0x00, 0x01, 0x7E,
					0x40, 0x49, 0x0F, 0xDB,
					0x40,
				},
				Mark: oops.New("unexpected"),
			},
			{
				name:       "little",
				endianness: bits.LittleEndian,
				data: []byte{
					0x40,
					0xDB, 0x0F, 0x49, 0x40,
					0x7E, 0x01, 0x00, 0x00,
				},
				Mark: oops.New("unexpected"),
			},
		}

		for i, tc := range tcs {
			t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
				data, err := MarshalBytes(rec, tc.endianness)
				require.NoError(t, err, tc.Mark)
				require.Equal(t, tc.data, data, tc.Mark)

				var back record
				require.NoError(t, UnmarshalBytes(data, &back, tc.endianness), tc.Mark)
				require.Equal(t, rec.Int32, back.Int32, tc.Mark)
				require.Equal(t, rec.Float32, back.Float32, tc.Mark)
				require.True(t, back.Buffer4.Equal(rec.Buffer4), tc.Mark)
			})
		}
	})
}

type frame struct {
	Version uint8                `bits:"uint:3"`
	Delta   int16                `bits:"int:12,onescomp"`
	Scale   float32              `bits:"float:8/7"`
	Name    string               `bits:"string:40"`
	Flags   *bitvector.BitVector `bits:"buffer:4"`
	note    string
	Skipped int                  `bits:"-"`
}

func TestTags(t *testing.T) {
	f := frame{
		Version: 5,
		Delta:   -5,
		Scale:   2.0,
		Name:    "hello",
		Flags:   mustBits(t, "1010"),
		Skipped: 99,
	}

	size, err := BitSize(f)
	require.NoError(t, err)
	require.Equal(t, 3+12+16+40+4, size)

	bv, err := Marshal(f)
	require.NoError(t, err)
	require.Equal(t, size, bv.Len())

	prefix, err := bv.Slice(0, 15)
	require.NoError(t, err)

	// 101, then -5 in ones complement at 12 bits.
	require.True(t, prefix.Equal(mustBits(t, "101 1111_1111_1010")))

	var back frame
	require.NoError(t, Unmarshal(bv, &back))
	require.Equal(t, f.Version, back.Version)
	require.Equal(t, f.Delta, back.Delta)
	require.Equal(t, f.Scale, back.Scale)
	require.Equal(t, f.Name, back.Name)
	require.True(t, back.Flags.Equal(f.Flags))
	require.Zero(t, back.Skipped)
}

func TestBool(t *testing.T) {
	type flags struct {
		A bool
		B bool
		C uint8
	}

	bv, err := Marshal(flags{A: true, C: 0xFF})
	require.NoError(t, err)
	require.True(t, bv.Equal(mustBits(t, "10 1111_1111")))

	var back flags
	require.NoError(t, Unmarshal(bv, &back))
	require.Equal(t, flags{A: true, C: 0xFF}, back)
}

func TestValueField(t *testing.T) {
	type sample struct {
		Level *bittype.Value `bits:"uint:5"`
	}

	typ, err := bittype.UintType(5)
	require.NoError(t, err)

	level, err := typ.FromValue(21)
	require.NoError(t, err)

	bv, err := Marshal(sample{Level: level})
	require.NoError(t, err)
	require.True(t, bv.Equal(mustBits(t, "10101")))

	var back sample
	require.NoError(t, Unmarshal(bv, &back))

	u, err := back.Level.Uint()
	require.NoError(t, err)
	require.Equal(t, uint64(21), u)
}

func TestArray(t *testing.T) {
	type cal struct {
		Gains [3]uint8
	}

	bv, err := Marshal(cal{Gains: [3]uint8{1, 2, 3}})
	require.NoError(t, err)
	require.Equal(t, 24, bv.Len())

	var back cal
	require.NoError(t, Unmarshal(bv, &back))
	require.Equal(t, [3]uint8{1, 2, 3}, back.Gains)
}

func TestSlice(t *testing.T) {
	vals := []uint16{1, 2, 0xFFFF}

	size, err := BitSize(vals)
	require.NoError(t, err)
	require.Equal(t, 48, size)

	bv, err := Marshal(vals)
	require.NoError(t, err)
	require.Equal(t, 48, bv.Len())

	var back []uint16
	require.NoError(t, Unmarshal(bv, &back))
	require.Equal(t, vals, back)

	t.Run("short final chunk", func(t *testing.T) {
		// 20 bits into byte sized chunks: two full bytes and a
		// 4 bit tail zero filled on the right.
		bv := mustBits(t, "0000_0001 0000_0010 0100")

		var back []uint8
		require.NoError(t, Unmarshal(bv, &back))
		require.Equal(t, []uint8{1, 2, 0x40}, back)
	})

	t.Run("empty", func(t *testing.T) {
		var back []uint8
		require.NoError(t, Unmarshal(bitvector.New(), &back))
		require.Empty(t, back)
	})
}

func TestFieldError(t *testing.T) {
	_, err := Marshal(record{Int32: 1, Buffer4: nil})
	require.Error(t, err)
	require.True(t, bits.Is(err, &bits.ErrInvalidArgument))

	var ferr *FieldError
	require.True(t, errors.As(err, &ferr))
	require.Equal(t, "Buffer4", ferr.Field)
	require.Equal(t, "record", ferr.Struct)

	t.Run("decode range", func(t *testing.T) {
		type narrow struct {
			N uint8 `bits:"uint:10"`
		}

		var back narrow
		err := Unmarshal(mustBits(t, "10_0101_1000"), &back)
		require.Error(t, err)
		require.True(t, bits.Is(err, &bits.ErrRange))

		var ferr *FieldError
		require.True(t, errors.As(err, &ferr))
		require.Equal(t, "N", ferr.Field)
	})
}

func TestUnmarshalSizeMismatch(t *testing.T) {
	var back record

	err := Unmarshal(mustBits(t, "0100"), &back)
	require.True(t, bits.Is(err, &bits.ErrSizeMismatch))

	err = Unmarshal(mustBits(t, "0100"), back)
	require.True(t, bits.Is(err, &bits.ErrInvalidArgument))
}

func TestUnsupported(t *testing.T) {
	type bad struct {
		M map[string]int
	}

	_, err := Marshal(bad{})
	require.True(t, bits.Is(err, &bits.ErrInvalidArgument))

	type untagged struct {
		S string
	}

	_, err = Marshal(untagged{})
	require.True(t, bits.Is(err, &bits.ErrInvalidArgument))

	type mismatch struct {
		N int `bits:"string:8"`
	}

	_, err = Marshal(mismatch{})
	require.True(t, bits.Is(err, &bits.ErrInvalidArgument))

	type dynamic struct {
		Vals []uint8
	}

	_, err = Marshal(dynamic{})
	require.True(t, bits.Is(err, &bits.ErrInvalidArgument))
}

func TestBadTags(t *testing.T) {
	type TC struct {
		name string
		val  any
		Mark error
	}

	type badKind struct {
		N int `bits:"complex:8"`
	}
	type badWidth struct {
		N int `bits:"uint:x"`
	}
	type badFloat struct {
		F float32 `bits:"float:8"`
	}

	tcs := []TC{
		{
			name: "unknown kind",
			val:  badKind{},
			Mark: oops.New("unexpected"),
		},
		{
			name: "bad width",
			val:  badWidth{},
			Mark: oops.New("unexpected"),
		},
		{
			name: "float missing mantissa",
			val:  badFloat{},
			Mark: oops.New("unexpected"),
		},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			_, err := Marshal(tc.val)
			require.Error(t, err, tc.Mark)
			require.True(t, bits.Is(err, &bits.ErrInvalidFormat), tc.Mark, err)
		})
	}
}

func TestCoderReuse(t *testing.T) {
	c := NewCoder()

	for i := 0; i < 3; i++ {
		bv, err := c.Marshal(record{Int32: int32(i), Buffer4: mustBits(t, "0000")})
		require.NoError(t, err)

		var back record
		require.NoError(t, c.Unmarshal(bv, &back))
		require.Equal(t, int32(i), back.Int32)
	}
}
