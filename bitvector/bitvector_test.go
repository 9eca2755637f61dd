package bitvector

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calebcase/bits"
)

func mustBits(t testing.TB, s string) *BitVector {
	t.Helper()

	v, err := From01(s)
	require.NoError(t, err)

	return v
}

func TestConstruction(t *testing.T) {
	t.Run("new is empty", func(t *testing.T) {
		require.Equal(t, 0, New().Len())
	})

	t.Run("from size", func(t *testing.T) {
		v, err := FromSize(10)
		require.NoError(t, err)
		require.Equal(t, 10, v.Len())
		require.True(t, v.Equal(mustBits(t, "0000000000")))

		_, err = FromSize(-1)
		require.True(t, bits.Is(err, &bits.ErrInvalidArgument))
	})

	t.Run("from bytes", func(t *testing.T) {
		v := FromBytes([]byte{0b0100_0001, 0b1000_0000})
		require.Equal(t, 16, v.Len())
		require.True(t, v.Equal(mustBits(t, "01000001 10000000")))
	})

	t.Run("from bytes copies", func(t *testing.T) {
		b := []byte{0b1111_1111}
		v := FromBytes(b)
		b[0] = 0

		require.True(t, v.Equal(mustBits(t, "11111111")))
	})

	t.Run("view aliases", func(t *testing.T) {
		b := []byte{0b0000_0000}
		v := View(b)

		require.NoError(t, v.Set(0, 1))
		require.Equal(t, byte(0b1000_0000), b[0])
	})

	t.Run("from bits", func(t *testing.T) {
		v, err := FromBits([]uint8{1, 0, 1})
		require.NoError(t, err)
		require.True(t, v.Equal(mustBits(t, "101")))

		_, err = FromBits([]uint8{1, 2})
		require.True(t, bits.Is(err, &bits.ErrInvalidArgument))
	})
}

func TestGetSet(t *testing.T) {
	v := mustBits(t, "01000001")

	b, err := v.Get(1)
	require.NoError(t, err)
	require.Equal(t, uint8(1), b)

	b, err = v.Get(2)
	require.NoError(t, err)
	require.Equal(t, uint8(0), b)

	_, err = v.Get(8)
	require.True(t, bits.Is(err, &bits.ErrIndexOutOfRange))

	_, err = v.Get(-1)
	require.True(t, bits.Is(err, &bits.ErrIndexOutOfRange))

	require.NoError(t, v.Set(0, 1))
	require.True(t, v.Equal(mustBits(t, "11000001")))

	err = v.Set(0, 2)
	require.True(t, bits.Is(err, &bits.ErrInvalidArgument))
}

func TestAppendExtend(t *testing.T) {
	v := New()
	for _, b := range []uint8{0, 1, 0, 0, 0, 0, 0, 1, 1} {
		require.NoError(t, v.Append(b))
	}
	require.True(t, v.Equal(mustBits(t, "01000001 1")))

	v.Extend(mustBits(t, "01"))
	require.True(t, v.Equal(mustBits(t, "01000001 101")))

	t.Run("self extend", func(t *testing.T) {
		v := mustBits(t, "101")
		v.Extend(v)
		require.True(t, v.Equal(mustBits(t, "101101")))

		v = mustBits(t, "01000001 1")
		v.Extend(v)
		require.True(t, v.Equal(mustBits(t, "01000001 1 01000001 1")))
	})
}

func TestInsertDelete(t *testing.T) {
	v := mustBits(t, "0101")

	require.NoError(t, v.Insert(0, 1))
	require.True(t, v.Equal(mustBits(t, "10101")))

	require.NoError(t, v.Insert(5, 1))
	require.True(t, v.Equal(mustBits(t, "101011")))

	require.True(t, bits.Is(v.Insert(7, 0), &bits.ErrIndexOutOfRange))

	require.NoError(t, v.Delete(0))
	require.True(t, v.Equal(mustBits(t, "01011")))

	require.NoError(t, v.DeleteRange(1, 3))
	require.True(t, v.Equal(mustBits(t, "011")))

	require.True(t, bits.Is(v.DeleteRange(2, 4), &bits.ErrIndexOutOfRange))
}

func TestPopRemove(t *testing.T) {
	v := mustBits(t, "011")

	b, err := v.Pop()
	require.NoError(t, err)
	require.Equal(t, uint8(1), b)

	b, err = v.PopIndex(0)
	require.NoError(t, err)
	require.Equal(t, uint8(0), b)

	b, err = v.Pop()
	require.NoError(t, err)
	require.Equal(t, uint8(1), b)

	_, err = v.Pop()
	require.True(t, bits.Is(err, &bits.ErrUnderflow))

	v = mustBits(t, "101")
	require.NoError(t, v.Remove(0))
	require.True(t, v.Equal(mustBits(t, "11")))

	err = v.Remove(0)
	require.True(t, bits.Is(err, &bits.ErrNotFound))
}

func TestClearReverse(t *testing.T) {
	v := mustBits(t, "1101")
	v.Clear()
	require.Equal(t, 0, v.Len())

	v = mustBits(t, "1101 0")
	v.Reverse()
	require.True(t, v.Equal(mustBits(t, "0101 1")))
}

func TestSlice(t *testing.T) {
	v := mustBits(t, "01000001")

	s, err := v.Slice(1, 4)
	require.NoError(t, err)
	require.True(t, s.Equal(mustBits(t, "100")))

	s, err = v.Slice(4, 4)
	require.NoError(t, err)
	require.Equal(t, 0, s.Len())

	_, err = v.Slice(4, 9)
	require.True(t, bits.Is(err, &bits.ErrIndexOutOfRange))

	t.Run("slice copies", func(t *testing.T) {
		s, err := v.Slice(0, 8)
		require.NoError(t, err)
		require.NoError(t, s.Set(0, 1))
		require.True(t, v.Equal(mustBits(t, "01000001")))
	})
}

func TestSliceStep(t *testing.T) {
	type TC struct {
		name  string
		in    string
		start int
		stop  int
		step  int
		want  string
	}

	tcs := []TC{
		{
			name:  "every other",
			in:    "10101010",
			start: 0,
			stop:  8,
			step:  2,
			want:  "1111",
		},
		{
			name:  "offset stride",
			in:    "01000001",
			start: 1,
			stop:  8,
			step:  3,
			want:  "100",
		},
		{
			name:  "reversed",
			in:    "0100",
			start: 3,
			stop:  -1,
			step:  -1,
			want:  "0010",
		},
		{
			name:  "reversed stride",
			in:    "01000001",
			start: 7,
			stop:  -1,
			step:  -2,
			want:  "1000",
		},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			v := mustBits(t, tc.in)

			got, err := v.SliceStep(tc.start, tc.stop, tc.step)
			require.NoError(t, err)
			require.True(t, got.Equal(mustBits(t, tc.want)),
				"got %v want %v", got, tc.want)
		})
	}

	v := mustBits(t, "0100")
	_, err := v.SliceStep(0, 4, 0)
	require.True(t, bits.Is(err, &bits.ErrInvalidArgument))
}

func TestSelect(t *testing.T) {
	v := mustBits(t, "01000001")

	got, err := v.Select([]int{7, 1, 1, 0})
	require.NoError(t, err)
	require.True(t, got.Equal(mustBits(t, "1110")))

	_, err = v.Select([]int{8})
	require.True(t, bits.Is(err, &bits.ErrIndexOutOfRange))
}

func TestSetRange(t *testing.T) {
	v := mustBits(t, "00000000")

	require.NoError(t, v.SetRange(2, mustBits(t, "111")))
	require.True(t, v.Equal(mustBits(t, "00111000")))

	err := v.SetRange(6, mustBits(t, "111"))
	require.True(t, bits.Is(err, &bits.ErrIndexOutOfRange))
}

func TestConcatRepeat(t *testing.T) {
	a := mustBits(t, "01")
	b := mustBits(t, "10")
	c := mustBits(t, "1")

	require.True(t, a.Concat(b, c).Equal(mustBits(t, "01101")))
	require.True(t, b.Concat(a).Equal(mustBits(t, "1001")))

	// The operands are untouched.
	require.True(t, a.Equal(mustBits(t, "01")))
	require.True(t, b.Equal(mustBits(t, "10")))

	r, err := a.Repeat(3)
	require.NoError(t, err)
	require.True(t, r.Equal(mustBits(t, "010101")))

	r, err = a.Repeat(0)
	require.NoError(t, err)
	require.Equal(t, 0, r.Len())

	_, err = a.Repeat(-1)
	require.True(t, bits.Is(err, &bits.ErrInvalidArgument))

	t.Run("length and associativity", func(t *testing.T) {
		a := mustBits(t, "101")
		b := mustBits(t, "0011")
		c := mustBits(t, "1")

		require.Equal(t, a.Len()+b.Len(), a.Concat(b).Len())
		require.True(t, a.Concat(b).Concat(c).Equal(a.Concat(b.Concat(c))))
		require.True(t, a.Concat(New()).Equal(a))
	})
}

func TestEqual(t *testing.T) {
	require.True(t, mustBits(t, "0100").Equal(mustBits(t, "0100")))
	require.False(t, mustBits(t, "0100").Equal(mustBits(t, "01000")))
	require.False(t, mustBits(t, "0100").Equal(mustBits(t, "0101")))
	require.False(t, mustBits(t, "0100").Equal(nil))
	require.True(t, New().Equal(New()))
}

func TestString(t *testing.T) {
	v := mustBits(t, "01000001 01")
	require.Equal(t, `BitVector("01000001 01")`, v.String())
	require.Equal(t, `BitVector("")`, New().String())
}
