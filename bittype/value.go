package bittype

import (
	"fmt"
	"math"

	"github.com/calebcase/bits"
	"github.com/calebcase/bits/bitvector"
	"github.com/calebcase/bits/floating"
	"github.com/calebcase/bits/integer"
	"github.com/calebcase/bits/native"
)

// Value is a Type instance: the encoded bits plus an endianness tag. The
// bit view and the value view are two projections of the same state.
type Value struct {
	typ        *Type
	bits       *bitvector.BitVector
	endianness bits.Endianness
}

// New returns a big endian zero value of t.
func (t *Type) New() *Value {
	v, _ := bitvector.FromSize(t.size)

	return &Value{
		typ:        t,
		bits:       v,
		endianness: bits.BigEndian,
	}
}

// FromBits returns a value of t backed by a copy of bv, which must be
// exactly t.Size() bits.
func (t *Type) FromBits(bv *bitvector.BitVector) (_ *Value, err error) {
	defer Error.WrapP(&err)

	v := t.New()
	if err := v.SetBits(bv); err != nil {
		return nil, err
	}

	return v, nil
}

// FromValue returns a value of t holding val. val may be any native type
// convertible to t's kind, another Value, or a bit vector of exactly
// t.Size() bits.
func (t *Type) FromValue(val any) (_ *Value, err error) {
	defer Error.WrapP(&err)

	v := t.New()
	if err := v.SetValue(val); err != nil {
		return nil, err
	}

	return v, nil
}

// FromBytes returns a big endian value of t decoded from b, undoing Bytes.
func (t *Type) FromBytes(b []byte, endianness bits.Endianness) (_ *Value, err error) {
	defer Error.WrapP(&err)

	if !endianness.Valid() {
		return nil, bits.ErrInvalidArgument.New("invalid endianness %q", endianness)
	}
	if len(b) != (t.size+7)/8 {
		return nil, bits.ErrSizeMismatch.New(
			"have %d bytes, want %d", len(b), (t.size+7)/8)
	}

	if endianness == bits.LittleEndian {
		r := make([]byte, len(b))
		for i, x := range b {
			r[len(b)-1-i] = x
		}
		b = r
	}

	bv, err := bitvector.FromBytes(b).Slice(0, t.size)
	if err != nil {
		return nil, err
	}

	v, err := t.FromBits(bv)
	if err != nil {
		return nil, err
	}
	v.endianness = endianness

	return v, nil
}

// Type returns the descriptor.
func (v *Value) Type() *Type { return v.typ }

// Kind returns the descriptor's kind.
func (v *Value) Kind() Kind { return v.typ.kind }

// Len returns the width in bits.
func (v *Value) Len() int { return v.typ.size }

// Endianness returns the byte order used by Bytes.
func (v *Value) Endianness() bits.Endianness { return v.endianness }

// SetEndianness changes the byte order used by Bytes. The bits are
// unaffected.
func (v *Value) SetEndianness(endianness bits.Endianness) error {
	if !endianness.Valid() {
		return Error.Wrap(bits.ErrInvalidArgument.New(
			"invalid endianness %q", endianness))
	}

	v.endianness = endianness

	return nil
}

// Copy returns an independent copy of v.
func (v *Value) Copy() *Value {
	return &Value{
		typ:        v.typ,
		bits:       v.bits.Copy(),
		endianness: v.endianness,
	}
}

// Bits returns a copy of the encoded bits.
func (v *Value) Bits() *bitvector.BitVector {
	return v.bits.Copy()
}

// SetBits overwrites the encoded bits. bv must be exactly Len() bits.
func (v *Value) SetBits(bv *bitvector.BitVector) error {
	if bv.Len() != v.typ.size {
		return Error.Wrap(bits.ErrSizeMismatch.New(
			"have %d bits, want %d", bv.Len(), v.typ.size))
	}

	v.bits = bv.Copy()

	return nil
}

func (v *Value) kindError(want Kind) error {
	return Error.Wrap(bits.ErrConversion.New(
		"%s is %s, not %s", v.typ.name, v.typ.kind, want))
}

// Uint returns the value of a uint kind.
func (v *Value) Uint() (uint64, error) {
	if v.typ.kind != KindUint {
		return 0, v.kindError(KindUint)
	}

	u, err := v.bits.ToUint64(bits.BigEndian)
	if err != nil {
		return 0, Error.Wrap(err)
	}

	return u, nil
}

// SetUint stores u into a uint kind.
func (v *Value) SetUint(u uint64) (err error) {
	defer Error.WrapP(&err)

	if v.typ.kind != KindUint {
		return v.kindError(KindUint)
	}

	bv, err := bitvector.FromUint64(u, v.typ.size)
	if err != nil {
		return err
	}

	v.bits = bv

	return nil
}

// Int returns the value of an int kind under its declared representation.
func (v *Value) Int() (int64, error) {
	if v.typ.kind != KindInt {
		return 0, v.kindError(KindInt)
	}

	i, err := integer.DecodeInt64(v.bits, true, v.typ.format)
	if err != nil {
		return 0, Error.Wrap(err)
	}

	return i, nil
}

// SetInt stores i into an int kind.
func (v *Value) SetInt(i int64) (err error) {
	defer Error.WrapP(&err)

	if v.typ.kind != KindInt {
		return v.kindError(KindInt)
	}

	bv, err := integer.EncodeInt64(i, true, v.typ.size, v.typ.format)
	if err != nil {
		return err
	}

	v.bits = bv

	return nil
}

// Float returns the value of a float kind.
func (v *Value) Float() (float64, error) {
	if v.typ.kind != KindFloat {
		return 0, v.kindError(KindFloat)
	}

	f, err := floating.Decode(v.bits, v.typ.expBits, v.typ.mantBits)
	if err != nil {
		return 0, Error.Wrap(err)
	}

	return f, nil
}

// SetFloat stores f into a float kind, truncating the mantissa to the
// declared width.
func (v *Value) SetFloat(f float64) (err error) {
	defer Error.WrapP(&err)

	if v.typ.kind != KindFloat {
		return v.kindError(KindFloat)
	}

	bv, err := floating.Encode(f, v.typ.expBits, v.typ.mantBits)
	if err != nil {
		return err
	}

	v.bits = bv

	return nil
}

// Str returns the value of a string kind: the bytes decoded by the declared
// encoding, with the substitution table applied when present.
func (v *Value) Str() (_ string, err error) {
	defer Error.WrapP(&err)

	if v.typ.kind != KindString {
		return "", v.kindError(KindString)
	}

	raw := v.bits.ToBytes()

	s := string(raw)
	if v.typ.codec != nil {
		s, err = v.typ.codec.NewDecoder().String(s)
		if err != nil {
			return "", bits.ErrConversion.Wrap(err)
		}
	}

	if v.typ.subsRE != nil {
		s = v.typ.subsRE.ReplaceAllStringFunc(s, func(m string) string {
			return v.typ.subs[m]
		})
	}

	return s, nil
}

// SetStr stores s into a string kind. The inverse substitution table is
// applied first, then s is encoded; the result must be exactly Len() bits.
func (v *Value) SetStr(s string) (err error) {
	defer Error.WrapP(&err)

	if v.typ.kind != KindString {
		return v.kindError(KindString)
	}

	if v.typ.reverseRE != nil {
		s = v.typ.reverseRE.ReplaceAllStringFunc(s, func(m string) string {
			return v.typ.reverse[m]
		})
	}

	raw := []byte(s)
	if v.typ.codec != nil {
		raw, err = v.typ.codec.NewEncoder().Bytes(raw)
		if err != nil {
			return bits.ErrConversion.Wrap(err)
		}
	}

	bv := bitvector.FromBytes(raw)
	if bv.Len() != v.typ.size {
		return bits.ErrSizeMismatch.New(
			"%q encodes to %d bits, want %d", s, bv.Len(), v.typ.size)
	}

	v.bits = bv

	return nil
}

// Buffer returns the value of a buffer kind: the bits themselves.
func (v *Value) Buffer() (*bitvector.BitVector, error) {
	if v.typ.kind != KindBuffer {
		return nil, v.kindError(KindBuffer)
	}

	return v.bits.Copy(), nil
}

// SetBuffer stores bv into a buffer kind. bv must be exactly Len() bits.
func (v *Value) SetBuffer(bv *bitvector.BitVector) error {
	if v.typ.kind != KindBuffer {
		return v.kindError(KindBuffer)
	}

	return v.SetBits(bv)
}

// SetValue stores any convertible value: native integers for the integer
// kinds, floats for the float kind, strings for the string kind, a bit
// vector of exactly Len() bits for any kind, or another Value of the same
// kind.
func (v *Value) SetValue(val any) (err error) {
	defer Error.WrapP(&err)

	if o, ok := val.(*Value); ok {
		if o.typ.kind != v.typ.kind {
			return bits.ErrConversion.New(
				"cannot store %s into %s", o.typ.name, v.typ.name)
		}
		val, err = o.value()
		if err != nil {
			return err
		}
	}

	// A raw bit vector stores directly as the encoded bits, whatever the
	// kind.
	if c, ok := val.(bitvector.Castable); ok {
		bv := c.AsBits()
		if bv == nil {
			return bits.ErrInvalidArgument.New("nil bit vector")
		}

		return v.SetBits(bv)
	}

	switch v.typ.kind {
	case KindUint:
		u, ok := asUint64(val)
		if !ok {
			return bits.ErrConversion.New(
				"cannot store %T into %s", val, v.typ.name)
		}

		return v.SetUint(u)
	case KindInt:
		i, ok := asInt64(val)
		if !ok {
			return bits.ErrConversion.New(
				"cannot store %T into %s", val, v.typ.name)
		}

		return v.SetInt(i)
	case KindFloat:
		f, ok := asFloat64(val)
		if !ok {
			return bits.ErrConversion.New(
				"cannot store %T into %s", val, v.typ.name)
		}

		return v.SetFloat(f)
	case KindString:
		s, ok := val.(string)
		if !ok {
			return bits.ErrConversion.New(
				"cannot store %T into %s", val, v.typ.name)
		}

		return v.SetStr(s)
	case KindBuffer:
		return bits.ErrConversion.New(
			"cannot store %T into %s", val, v.typ.name)
	}

	return bits.ErrConversion.New("unknown kind %q", v.typ.kind)
}

// value returns the kind-appropriate native view.
func (v *Value) value() (any, error) {
	switch v.typ.kind {
	case KindUint:
		return v.Uint()
	case KindInt:
		return v.Int()
	case KindFloat:
		return v.Float()
	case KindString:
		return v.Str()
	case KindBuffer:
		return v.Buffer()
	}

	return nil, Error.Wrap(bits.ErrConversion.New("unknown kind %q", v.typ.kind))
}

func asUint64(val any) (uint64, bool) {
	switch x := val.(type) {
	case uint64:
		return x, true
	case uint:
		return uint64(x), true
	case uint8:
		return uint64(x), true
	case uint16:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	case int:
		if x < 0 {
			return 0, false
		}

		return uint64(x), true
	case int64:
		if x < 0 {
			return 0, false
		}

		return uint64(x), true
	}

	return 0, false
}

func asInt64(val any) (int64, bool) {
	switch x := val.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case uint:
		return int64(x), x <= math.MaxInt64
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}

		return int64(x), true
	}

	return 0, false
}

func asFloat64(val any) (float64, bool) {
	switch x := val.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}

	return 0, false
}

func isNativeWidth(width int) bool {
	switch width {
	case 8, 16, 32, 64:
		return true
	}

	return false
}

// Bytes renders the value as whole bytes: the bits MSB first, a final
// partial byte zero padded on the right, and the whole buffer reversed for
// little endian values. Byte aligned integers take the native fast path.
func (v *Value) Bytes() (_ []byte, err error) {
	defer Error.WrapP(&err)

	if isNativeWidth(v.typ.size) {
		switch {
		case v.typ.kind == KindUint:
			u, err := v.Uint()
			if err != nil {
				return nil, err
			}

			return native.PackUint(u, v.typ.size, v.endianness)
		case v.typ.kind == KindInt && v.typ.format == integer.TwosComplement:
			i, err := v.Int()
			if err != nil {
				return nil, err
			}

			return native.PackInt(i, v.typ.size, v.endianness)
		}
	}

	b := v.bits.ToBytes()
	if v.endianness == bits.LittleEndian {
		for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
			b[i], b[j] = b[j], b[i]
		}
	}

	return b, nil
}

// Equal reports whether o holds the same kind of value and the values are
// equal, regardless of width or representation. NaN equals NaN here: two
// values holding the NaN pattern are the same value.
func (v *Value) Equal(o *Value) bool {
	if o == nil || v.typ.kind != o.typ.kind {
		return false
	}

	if v.typ.kind == KindFloat {
		a, err := v.Float()
		if err != nil {
			return false
		}
		b, err := o.Float()
		if err != nil {
			return false
		}

		return a == b || (math.IsNaN(a) && math.IsNaN(b))
	}

	av, err := v.value()
	if err != nil {
		return false
	}
	bv, err := o.value()
	if err != nil {
		return false
	}

	if a, ok := av.(*bitvector.BitVector); ok {
		return a.Equal(bv.(*bitvector.BitVector))
	}

	return av == bv
}

// EqualValue reports whether v holds val: the native counterpart of
// Equal.
func (v *Value) EqualValue(val any) bool {
	switch v.typ.kind {
	case KindUint:
		u, ok := asUint64(val)
		if !ok {
			return false
		}
		got, err := v.Uint()

		return err == nil && got == u
	case KindInt:
		i, ok := asInt64(val)
		if !ok {
			return false
		}
		got, err := v.Int()

		return err == nil && got == i
	case KindFloat:
		f, ok := asFloat64(val)
		if !ok {
			return false
		}
		got, err := v.Float()
		if err != nil {
			return false
		}

		return got == f || (math.IsNaN(got) && math.IsNaN(f))
	case KindString:
		s, ok := val.(string)
		if !ok {
			return false
		}
		got, err := v.Str()

		return err == nil && got == s
	case KindBuffer:
		c, ok := val.(bitvector.Castable)
		if !ok {
			return false
		}
		got, err := v.Buffer()

		return err == nil && got.Equal(c.AsBits())
	}

	return false
}

// String renders like U8[big](65 = "01000001").
func (v *Value) String() string {
	val, err := v.value()
	if err != nil {
		val = err
	}

	return fmt.Sprintf("%s[%s](%v = %q)",
		v.typ.name, v.endianness, val, v.bits.To01("", 0))
}
