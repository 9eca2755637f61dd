package structure

import (
	"math"
	"reflect"

	"github.com/calebcase/bits"
	"github.com/calebcase/bits/bittype"
	"github.com/calebcase/bits/bitvector"
)

var (
	valueType  = reflect.TypeOf((*bittype.Value)(nil))
	vectorType = reflect.TypeOf((*bitvector.BitVector)(nil))
)

// codec encodes and decodes values of a single reflect.Type. bitSize is
// the fixed width in bits, or -1 for slices whose width depends on the
// element count.
type codec interface {
	bitSize() int
	encode(v reflect.Value) (*bitvector.BitVector, error)
	decode(bv *bitvector.BitVector, v reflect.Value) error
}

// typedCodec maps a Go field through a bit type descriptor.
type typedCodec struct {
	typ *bittype.Type
}

func (c *typedCodec) bitSize() int { return c.typ.Size() }

// nativeValue widens v to the generic representation of its kind so that
// any integer field width can feed any integer bit type.
func nativeValue(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint()
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.String:
		return v.String()
	}

	return v.Interface()
}

func (c *typedCodec) encode(v reflect.Value) (*bitvector.BitVector, error) {
	if v.Type() == valueType {
		tv, _ := v.Interface().(*bittype.Value)
		if tv == nil {
			return nil, bits.ErrInvalidArgument.New("nil %s value", c.typ)
		}
		if tv.Type() != c.typ {
			return nil, bits.ErrConversion.New(
				"have %s, want %s", tv.Type(), c.typ)
		}

		return tv.Bits(), nil
	}

	if v.Type() == vectorType && v.IsNil() {
		return nil, bits.ErrInvalidArgument.New("nil bit vector")
	}

	tv, err := c.typ.FromValue(nativeValue(v))
	if err != nil {
		return nil, err
	}

	return tv.Bits(), nil
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}

	return false
}

func isUintKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}

	return false
}

func (c *typedCodec) decode(bv *bitvector.BitVector, v reflect.Value) error {
	tv, err := c.typ.FromBits(bv)
	if err != nil {
		return err
	}

	if v.Type() == valueType {
		v.Set(reflect.ValueOf(tv))

		return nil
	}

	switch c.typ.Kind() {
	case bittype.KindUint:
		u, err := tv.Uint()
		if err != nil {
			return err
		}

		switch {
		case isUintKind(v.Kind()):
			if v.OverflowUint(u) {
				return bits.ErrRange.New("%d overflows %s", u, v.Type())
			}
			v.SetUint(u)
		case isIntKind(v.Kind()):
			if u > math.MaxInt64 || v.OverflowInt(int64(u)) {
				return bits.ErrRange.New("%d overflows %s", u, v.Type())
			}
			v.SetInt(int64(u))
		}
	case bittype.KindInt:
		i, err := tv.Int()
		if err != nil {
			return err
		}

		switch {
		case isIntKind(v.Kind()):
			if v.OverflowInt(i) {
				return bits.ErrRange.New("%d overflows %s", i, v.Type())
			}
			v.SetInt(i)
		case isUintKind(v.Kind()):
			if i < 0 || v.OverflowUint(uint64(i)) {
				return bits.ErrRange.New("%d overflows %s", i, v.Type())
			}
			v.SetUint(uint64(i))
		}
	case bittype.KindFloat:
		f, err := tv.Float()
		if err != nil {
			return err
		}

		if v.OverflowFloat(f) {
			return bits.ErrRange.New("%v overflows %s", f, v.Type())
		}
		v.SetFloat(f)
	case bittype.KindString:
		s, err := tv.Str()
		if err != nil {
			return err
		}

		v.SetString(s)
	case bittype.KindBuffer:
		b, err := tv.Buffer()
		if err != nil {
			return err
		}

		v.Set(reflect.ValueOf(b))
	}

	return nil
}

// boolCodec packs a bool into a single bit.
type boolCodec struct{}

func (boolCodec) bitSize() int { return 1 }

func (boolCodec) encode(v reflect.Value) (*bitvector.BitVector, error) {
	b := uint8(0)
	if v.Bool() {
		b = 1
	}

	return bitvector.FromBits([]uint8{b})
}

func (boolCodec) decode(bv *bitvector.BitVector, v reflect.Value) error {
	b, err := bv.Get(0)
	if err != nil {
		return err
	}

	v.SetBool(b == 1)

	return nil
}

type structField struct {
	name  string
	index int
	cd    codec
}

// structCodec concatenates field encodings in declaration order with no
// padding.
type structCodec struct {
	name   string
	size   int
	fields []structField
}

func (c *structCodec) bitSize() int { return c.size }

func (c *structCodec) encode(v reflect.Value) (*bitvector.BitVector, error) {
	out := bitvector.New()

	for _, f := range c.fields {
		fb, err := f.cd.encode(v.Field(f.index))
		if err != nil {
			return nil, withField(err, f.name, c.name)
		}

		out.Extend(fb)
	}

	return out, nil
}

func (c *structCodec) decode(bv *bitvector.BitVector, v reflect.Value) error {
	offset := 0

	for _, f := range c.fields {
		size := f.cd.bitSize()

		fb, err := bv.Slice(offset, offset+size)
		if err != nil {
			return withField(err, f.name, c.name)
		}

		if err := f.cd.decode(fb, v.Field(f.index)); err != nil {
			return withField(err, f.name, c.name)
		}

		offset += size
	}

	return nil
}

// arrayCodec packs a fixed length array as n back to back elements.
type arrayCodec struct {
	elem codec
	n    int
}

func (c *arrayCodec) bitSize() int { return c.n * c.elem.bitSize() }

func (c *arrayCodec) encode(v reflect.Value) (*bitvector.BitVector, error) {
	out := bitvector.New()

	for i := 0; i < c.n; i++ {
		eb, err := c.elem.encode(v.Index(i))
		if err != nil {
			return nil, err
		}

		out.Extend(eb)
	}

	return out, nil
}

func (c *arrayCodec) decode(bv *bitvector.BitVector, v reflect.Value) error {
	size := c.elem.bitSize()

	for i := 0; i < c.n; i++ {
		eb, err := bv.Slice(i*size, (i+1)*size)
		if err != nil {
			return err
		}

		if err := c.elem.decode(eb, v.Index(i)); err != nil {
			return err
		}
	}

	return nil
}

// sliceCodec packs a slice as back to back fixed size chunks. Decoding
// tolerates a short final chunk by zero filling it on the right.
type sliceCodec struct {
	elem codec
}

func (c *sliceCodec) bitSize() int { return -1 }

func (c *sliceCodec) encode(v reflect.Value) (*bitvector.BitVector, error) {
	out := bitvector.New()

	for i := 0; i < v.Len(); i++ {
		eb, err := c.elem.encode(v.Index(i))
		if err != nil {
			return nil, err
		}

		out.Extend(eb)
	}

	return out, nil
}

func (c *sliceCodec) decode(bv *bitvector.BitVector, v reflect.Value) error {
	size := c.elem.bitSize()
	full := bv.Len() / size
	n := full
	if bv.Len()%size != 0 {
		n++
	}

	out := reflect.MakeSlice(v.Type(), n, n)

	for i := 0; i < full; i++ {
		eb, err := bv.Slice(i*size, (i+1)*size)
		if err != nil {
			return err
		}

		if err := c.elem.decode(eb, out.Index(i)); err != nil {
			return err
		}
	}

	if n > full {
		tail, err := bv.Slice(full*size, bv.Len())
		if err != nil {
			return err
		}

		tail, err = tail.RPad(size, 0)
		if err != nil {
			return err
		}

		if err := c.elem.decode(tail, out.Index(full)); err != nil {
			return err
		}
	}

	v.Set(out)

	return nil
}
