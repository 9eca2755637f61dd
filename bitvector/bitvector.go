package bitvector

import (
	"strings"

	"github.com/calebcase/bits"
)

// BitVector is an ordered, mutable, finite sequence of bits.
//
// The zero value is an empty vector ready for use.
type BitVector struct {
	data []byte // bit i lives at data[i>>3] under mask 0x80 >> (i&7)
	n    int
}

// Castable is anything that can produce a bit vector representation of
// itself. BitVector implements it trivially.
type Castable interface {
	AsBits() *BitVector
}

// New returns an empty vector.
func New() *BitVector {
	return &BitVector{}
}

// FromSize returns a vector of n zero bits.
func FromSize(n int) (*BitVector, error) {
	if n < 0 {
		return nil, bits.ErrInvalidArgument.New("negative size %d", n)
	}

	return &BitVector{
		data: make([]byte, (n+7)/8),
		n:    n,
	}, nil
}

// FromBytes returns a vector holding 8 bits per input byte, most significant
// bit first, in input order. The input is copied.
func FromBytes(b []byte) *BitVector {
	data := make([]byte, len(b))
	copy(data, b)

	return &BitVector{
		data: data,
		n:    len(b) * 8,
	}
}

// View returns a vector that shares b as its backing memory instead of
// copying it.
//
// Aliasing hazard: in-place bit writes (Set, SetRange, Reverse, Clear via
// reslicing, etc.) made through either the vector or the original byte slice
// are visible through the other. Operations that change the vector's length
// may reallocate and silently detach the two views. Callers sharing a view
// across goroutines must supply their own synchronization. All other
// construction paths copy; use those unless aliasing is the point.
func View(b []byte) *BitVector {
	return &BitVector{
		data: b,
		n:    len(b) * 8,
	}
}

// FromBits returns a vector of the given bits. Every element must be 0 or 1.
func FromBits(bs []uint8) (*BitVector, error) {
	v := &BitVector{
		data: make([]byte, (len(bs)+7)/8),
		n:    len(bs),
	}

	for i, b := range bs {
		if b > 1 {
			return nil, bits.ErrInvalidArgument.New("bit %d is %d, not 0 or 1", i, b)
		}
		if b == 1 {
			v.data[i>>3] |= 0x80 >> (i & 7)
		}
	}

	return v, nil
}

// Copy returns an independent copy of v.
func (v *BitVector) Copy() *BitVector {
	data := make([]byte, (v.n+7)/8)
	copy(data, v.data)

	return &BitVector{
		data: data,
		n:    v.n,
	}
}

// AsBits implements Castable.
func (v *BitVector) AsBits() *BitVector {
	return v
}

// Len returns the number of bits in v.
func (v *BitVector) Len() int {
	return v.n
}

func (v *BitVector) bit(i int) uint8 {
	if v.data[i>>3]&(0x80>>(i&7)) != 0 {
		return 1
	}

	return 0
}

func (v *BitVector) setbit(i int, b uint8) {
	if b == 1 {
		v.data[i>>3] |= 0x80 >> (i & 7)
	} else {
		v.data[i>>3] &^= 0x80 >> (i & 7)
	}
}

func (v *BitVector) checkIndex(i int) error {
	if i < 0 || i >= v.n {
		return bits.ErrIndexOutOfRange.New("index %d out of range [0, %d)", i, v.n)
	}

	return nil
}

func (v *BitVector) checkBounds(start, stop int) error {
	if start < 0 || stop < start || stop > v.n {
		return bits.ErrIndexOutOfRange.New(
			"bounds [%d, %d) invalid for length %d", start, stop, v.n)
	}

	return nil
}

func checkBit(b uint8) error {
	if b > 1 {
		return bits.ErrInvalidArgument.New("bit is %d, not 0 or 1", b)
	}

	return nil
}

// Get returns the bit at position i.
func (v *BitVector) Get(i int) (uint8, error) {
	if err := v.checkIndex(i); err != nil {
		return 0, err
	}

	return v.bit(i), nil
}

// Set overwrites the bit at position i.
func (v *BitVector) Set(i int, b uint8) error {
	if err := v.checkIndex(i); err != nil {
		return err
	}
	if err := checkBit(b); err != nil {
		return err
	}

	v.setbit(i, b)

	return nil
}

// Append adds a bit at the end.
func (v *BitVector) Append(b uint8) error {
	if err := checkBit(b); err != nil {
		return err
	}

	v.push(b)

	return nil
}

// push appends a bit already known to be 0 or 1.
func (v *BitVector) push(b uint8) {
	if v.n&7 == 0 {
		v.data = append(v.data, 0)
	}
	v.n++
	v.setbit(v.n-1, b)
}

// Extend appends all bits of o at the end. o may alias v.
func (v *BitVector) Extend(o *BitVector) {
	// Snapshot o's length: once v.n grows, o.n is the new length when o
	// aliases v.
	on := o.n

	need := (v.n + on + 7) / 8
	for len(v.data) < need {
		v.data = append(v.data, 0)
	}

	base := v.n
	v.n += on
	for i := 0; i < on; i++ {
		v.setbit(base+i, o.bit(i))
	}
}

// Insert places bit b at position i, shifting later bits right. i may equal
// Len, in which case Insert behaves like Append.
func (v *BitVector) Insert(i int, b uint8) error {
	if i < 0 || i > v.n {
		return bits.ErrIndexOutOfRange.New("index %d out of range [0, %d]", i, v.n)
	}
	if err := checkBit(b); err != nil {
		return err
	}

	if err := v.Append(0); err != nil {
		return err
	}
	for j := v.n - 1; j > i; j-- {
		v.setbit(j, v.bit(j-1))
	}
	v.setbit(i, b)

	return nil
}

// Delete removes the bit at position i, shifting later bits left.
func (v *BitVector) Delete(i int) error {
	if err := v.checkIndex(i); err != nil {
		return err
	}

	for j := i; j < v.n-1; j++ {
		v.setbit(j, v.bit(j+1))
	}
	v.n--
	v.clearTail()

	return nil
}

// DeleteRange removes the bits in [start, stop), shifting later bits left to
// fill the gap.
func (v *BitVector) DeleteRange(start, stop int) error {
	if err := v.checkBounds(start, stop); err != nil {
		return err
	}

	width := stop - start
	for j := start; j < v.n-width; j++ {
		v.setbit(j, v.bit(j+width))
	}
	v.n -= width
	v.clearTail()

	return nil
}

// clearTail zeroes the storage past the logical length so that equality and
// byte rendering never see stale bits.
func (v *BitVector) clearTail() {
	v.data = v.data[:(v.n+7)/8]
	if v.n&7 != 0 {
		v.data[len(v.data)-1] &= ^byte(0) << (8 - v.n&7)
	}
}

// Pop removes and returns the last bit. Popping an empty vector is an
// underflow.
func (v *BitVector) Pop() (uint8, error) {
	if v.n == 0 {
		return 0, bits.ErrUnderflow.New("pop from empty bit vector")
	}

	return v.PopIndex(v.n - 1)
}

// PopIndex removes and returns the bit at position i.
func (v *BitVector) PopIndex(i int) (uint8, error) {
	if err := v.checkIndex(i); err != nil {
		return 0, err
	}

	b := v.bit(i)
	if err := v.Delete(i); err != nil {
		return 0, err
	}

	return b, nil
}

// Remove deletes the first occurrence of bit b.
func (v *BitVector) Remove(b uint8) error {
	if err := checkBit(b); err != nil {
		return err
	}

	for i := 0; i < v.n; i++ {
		if v.bit(i) == b {
			return v.Delete(i)
		}
	}

	return bits.ErrNotFound.New("bit %d not present", b)
}

// Clear removes all bits.
func (v *BitVector) Clear() {
	v.data = v.data[:0]
	v.n = 0
}

// Reverse reverses the bit order in place.
func (v *BitVector) Reverse() {
	for i, j := 0, v.n-1; i < j; i, j = i+1, j-1 {
		bi, bj := v.bit(i), v.bit(j)
		v.setbit(i, bj)
		v.setbit(j, bi)
	}
}

// Slice returns a new vector holding the bits in [start, stop).
func (v *BitVector) Slice(start, stop int) (*BitVector, error) {
	if err := v.checkBounds(start, stop); err != nil {
		return nil, err
	}

	out, _ := FromSize(stop - start)
	for i := start; i < stop; i++ {
		out.setbit(i-start, v.bit(i))
	}

	return out, nil
}

// SliceStep returns a new vector of the bits selected by stepping from start
// toward stop (exclusive). A negative step walks right to left; step must
// not be zero.
func (v *BitVector) SliceStep(start, stop, step int) (*BitVector, error) {
	if step == 0 {
		return nil, bits.ErrInvalidArgument.New("slice step is zero")
	}

	out := New()
	if step > 0 {
		if err := v.checkBounds(start, stop); err != nil {
			return nil, err
		}
		for i := start; i < stop; i += step {
			_ = out.Append(v.bit(i))
		}
	} else {
		if start >= v.n || stop < -1 || stop > start {
			return nil, bits.ErrIndexOutOfRange.New(
				"bounds [%d, %d) invalid for length %d with negative step",
				start, stop, v.n)
		}
		for i := start; i > stop; i += step {
			_ = out.Append(v.bit(i))
		}
	}

	return out, nil
}

// Select returns a new vector gathering exactly the bits at the given
// positions, in the given order. Duplicate positions are allowed.
func (v *BitVector) Select(indices []int) (*BitVector, error) {
	out, _ := FromSize(len(indices))
	for j, i := range indices {
		if err := v.checkIndex(i); err != nil {
			return nil, err
		}
		out.setbit(j, v.bit(i))
	}

	return out, nil
}

// SetRange overwrites the bits starting at position start with the bits of o.
func (v *BitVector) SetRange(start int, o *BitVector) error {
	if err := v.checkBounds(start, start+o.n); err != nil {
		return err
	}

	for i := 0; i < o.n; i++ {
		v.setbit(start+i, o.bit(i))
	}

	return nil
}

// Concat returns a new vector of v's bits followed by each other vector's
// bits in argument order. Concatenation is not commutative.
func (v *BitVector) Concat(others ...*BitVector) *BitVector {
	out := v.Copy()
	for _, o := range others {
		out.Extend(o)
	}

	return out
}

// Repeat returns a new vector of n copies of v in sequence. Zero yields an
// empty vector.
func (v *BitVector) Repeat(n int) (*BitVector, error) {
	if n < 0 {
		return nil, bits.ErrInvalidArgument.New("negative repeat count %d", n)
	}

	out := New()
	for i := 0; i < n; i++ {
		out.Extend(v)
	}

	return out, nil
}

// Equal reports whether v and o have the same length and identical bits.
func (v *BitVector) Equal(o *BitVector) bool {
	if o == nil || v.n != o.n {
		return false
	}

	for i := 0; i < v.n; i++ {
		if v.bit(i) != o.bit(i) {
			return false
		}
	}

	return true
}

// String renders the bits grouped in eights, e.g. BitVector("01000001 01").
func (v *BitVector) String() string {
	sb := &strings.Builder{}
	sb.WriteString("BitVector(\"")
	sb.WriteString(v.To01(" ", 1))
	sb.WriteString("\")")

	return sb.String()
}
