package bitvector

import "github.com/calebcase/bits"

// binop applies f position-wise. With expand false the result is truncated
// to the shorter operand, measured from the left end. With expand true the
// result takes the longer length and the excess bits of the longer operand
// are carried through unchanged.
func (v *BitVector) binop(o *BitVector, expand bool, f func(a, b uint8) uint8) *BitVector {
	short, long := v.n, o.n
	longer := o
	if short > long {
		short, long = long, short
		longer = v
	}

	size := short
	if expand {
		size = long
	}

	out, _ := FromSize(size)
	for i := 0; i < short; i++ {
		out.setbit(i, f(v.bit(i), o.bit(i)))
	}
	for i := short; i < size; i++ {
		out.setbit(i, longer.bit(i))
	}

	return out
}

// And returns the position-wise AND of v and o.
func (v *BitVector) And(o *BitVector, expand bool) *BitVector {
	return v.binop(o, expand, func(a, b uint8) uint8 { return a & b })
}

// Or returns the position-wise OR of v and o.
func (v *BitVector) Or(o *BitVector, expand bool) *BitVector {
	return v.binop(o, expand, func(a, b uint8) uint8 { return a | b })
}

// Xor returns the position-wise XOR of v and o.
func (v *BitVector) Xor(o *BitVector, expand bool) *BitVector {
	return v.binop(o, expand, func(a, b uint8) uint8 { return a ^ b })
}

// Not returns a new vector with every bit inverted.
func (v *BitVector) Not() *BitVector {
	out, _ := FromSize(v.n)
	for i := 0; i < v.n; i++ {
		out.setbit(i, 1-v.bit(i))
	}

	return out
}

// ShiftLeft returns a new vector of the same length with every bit moved k
// positions toward position 0. Vacated positions are zero filled.
func (v *BitVector) ShiftLeft(k int) (*BitVector, error) {
	if k < 0 {
		return nil, bits.ErrInvalidArgument.New("negative shift count %d", k)
	}

	out, _ := FromSize(v.n)
	for i := 0; i+k < v.n; i++ {
		out.setbit(i, v.bit(i+k))
	}

	return out, nil
}

// ShiftRight returns a new vector of the same length with every bit moved k
// positions away from position 0. Vacated positions are zero filled.
func (v *BitVector) ShiftRight(k int) (*BitVector, error) {
	if k < 0 {
		return nil, bits.ErrInvalidArgument.New("negative shift count %d", k)
	}

	out, _ := FromSize(v.n)
	for i := v.n - 1; i-k >= 0; i-- {
		out.setbit(i, v.bit(i-k))
	}

	return out, nil
}
