package bitvector

import (
	"github.com/calebcase/bits"
)

// Replace returns a new vector with up to count non-overlapping occurrences
// of old replaced by new, scanning left to right. A negative count replaces
// every occurrence. An empty old leaves the vector unchanged. The receiver
// is never modified.
func (v *BitVector) Replace(old, new *BitVector, count int) *BitVector {
	if old.n == 0 || count == 0 {
		return v.Copy()
	}

	out := New()
	replaced := 0
	for i := 0; i < v.n; {
		if (count < 0 || replaced < count) &&
			i+old.n <= v.n && v.matchAt(old, i) {
			out.Extend(new)
			i += old.n
			replaced++

			continue
		}

		out.push(v.bit(i))
		i++
	}

	return out
}

// Join concatenates the given vectors with the receiver as the separator
// between each pair.
func (v *BitVector) Join(parts []*BitVector) *BitVector {
	out := New()
	for i, p := range parts {
		if i > 0 {
			out.Extend(v)
		}
		out.Extend(p)
	}

	return out
}

// Partition splits the vector around the first occurrence of sep, returning
// the bits before it, the separator itself, and the bits after. When sep
// does not occur the whole vector is returned as the first part.
func (v *BitVector) Partition(sep *BitVector) (before, match, after *BitVector) {
	i := v.Find(sep, 0, v.n)
	if i < 0 || sep.n == 0 {
		return v.Copy(), New(), New()
	}

	before, _ = v.Slice(0, i)
	match, _ = v.Slice(i, i+sep.n)
	after, _ = v.Slice(i+sep.n, v.n)

	return before, match, after
}

// RPartition splits the vector around the last occurrence of sep. When sep
// does not occur the whole vector is returned as the last part.
func (v *BitVector) RPartition(sep *BitVector) (before, match, after *BitVector) {
	i := v.RFind(sep, 0, v.n)
	if i < 0 || sep.n == 0 {
		return New(), New(), v.Copy()
	}

	before, _ = v.Slice(0, i)
	match, _ = v.Slice(i, i+sep.n)
	after, _ = v.Slice(i+sep.n, v.n)

	return before, match, after
}

// LStrip returns a new vector with leading bits equal to b removed.
func (v *BitVector) LStrip(b uint8) (*BitVector, error) {
	if err := checkBit(b); err != nil {
		return nil, Error.Wrap(err)
	}

	i := 0
	for i < v.n && v.bit(i) == b {
		i++
	}
	out, _ := v.Slice(i, v.n)

	return out, nil
}

// RStrip returns a new vector with trailing bits equal to b removed.
func (v *BitVector) RStrip(b uint8) (*BitVector, error) {
	if err := checkBit(b); err != nil {
		return nil, Error.Wrap(err)
	}

	i := v.n
	for i > 0 && v.bit(i-1) == b {
		i--
	}
	out, _ := v.Slice(0, i)

	return out, nil
}

// Strip returns a new vector with both leading and trailing bits equal to b
// removed.
func (v *BitVector) Strip(b uint8) (*BitVector, error) {
	out, err := v.LStrip(b)
	if err != nil {
		return nil, err
	}

	return out.RStrip(b)
}

// LPad returns a new vector left padded with fill bits to the given width.
// Vectors already at least width bits long are returned unchanged (as a
// copy).
func (v *BitVector) LPad(width int, fill uint8) (*BitVector, error) {
	if width < 0 {
		return nil, Error.Wrap(bits.ErrInvalidArgument.New(
			"negative width %d", width))
	}
	if err := checkBit(fill); err != nil {
		return nil, Error.Wrap(err)
	}

	out := New()
	for i := v.n; i < width; i++ {
		out.push(fill)
	}
	out.Extend(v)

	return out, nil
}

// RPad returns a new vector right padded with fill bits to the given width.
func (v *BitVector) RPad(width int, fill uint8) (*BitVector, error) {
	if width < 0 {
		return nil, Error.Wrap(bits.ErrInvalidArgument.New(
			"negative width %d", width))
	}
	if err := checkBit(fill); err != nil {
		return nil, Error.Wrap(err)
	}

	out := v.Copy()
	for out.n < width {
		out.push(fill)
	}

	return out, nil
}
