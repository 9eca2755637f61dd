package structure

import (
	"reflect"
	"sync"

	"github.com/calebcase/bits"
	"github.com/calebcase/bits/bittype"
	"github.com/calebcase/bits/bitvector"
)

// Coder resolves and caches codecs per reflect.Type. The zero value is
// ready to use and safe for concurrent callers.
type Coder struct {
	codecs sync.Map // codecKey -> codec
}

type codecKey struct {
	t   reflect.Type
	tag string
}

func NewCoder() *Coder {
	return new(Coder)
}

var defaultCoder = NewCoder()

func (c *Coder) resolve(t reflect.Type, tag string) (codec, error) {
	key := codecKey{t, tag}
	if cd, ok := c.codecs.Load(key); ok {
		return cd.(codec), nil
	}

	cd, err := c.build(t, tag)
	if err != nil {
		return nil, err
	}

	actual, _ := c.codecs.LoadOrStore(key, cd)

	return actual.(codec), nil
}

// nativeBitType returns the descriptor matching a Go kind's natural width,
// or nil when the kind has none.
func nativeBitType(k reflect.Kind) *bittype.Type {
	switch k {
	case reflect.Int8:
		return bittype.S8
	case reflect.Int16:
		return bittype.S16
	case reflect.Int32:
		return bittype.S32
	case reflect.Int64, reflect.Int:
		return bittype.S64
	case reflect.Uint8:
		return bittype.U8
	case reflect.Uint16:
		return bittype.U16
	case reflect.Uint32:
		return bittype.U32
	case reflect.Uint64, reflect.Uint:
		return bittype.U64
	case reflect.Float32:
		return bittype.F32
	case reflect.Float64:
		return bittype.F64
	}

	return nil
}

// checkHost verifies that a Go type can hold values of the tagged shape.
func checkHost(t reflect.Type, typ *bittype.Type) error {
	if t == valueType {
		return nil
	}

	ok := false
	switch typ.Kind() {
	case bittype.KindUint, bittype.KindInt:
		ok = isIntKind(t.Kind()) || isUintKind(t.Kind())
	case bittype.KindFloat:
		ok = t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64
	case bittype.KindString:
		ok = t.Kind() == reflect.String
	case bittype.KindBuffer:
		ok = t == vectorType
	}

	if !ok {
		return bits.ErrInvalidArgument.New("cannot encode %s as %s", t, typ)
	}

	return nil
}

func (c *Coder) build(t reflect.Type, tag string) (codec, error) {
	if tag != "" {
		typ, err := parseTag(tag)
		if err != nil {
			return nil, err
		}

		if err := checkHost(t, typ); err != nil {
			return nil, err
		}

		return &typedCodec{typ: typ}, nil
	}

	if t == valueType || t == vectorType ||
		t == valueType.Elem() || t == vectorType.Elem() {
		return nil, bits.ErrInvalidArgument.New(
			"%s needs a width tag", t)
	}

	if typ := nativeBitType(t.Kind()); typ != nil {
		return &typedCodec{typ: typ}, nil
	}

	switch t.Kind() {
	case reflect.Bool:
		return boolCodec{}, nil
	case reflect.String:
		return nil, bits.ErrInvalidArgument.New(
			"string fields need a width tag")
	case reflect.Struct:
		return c.buildStruct(t)
	case reflect.Array:
		elem, err := c.resolve(t.Elem(), "")
		if err != nil {
			return nil, err
		}
		if elem.bitSize() < 0 {
			return nil, bits.ErrInvalidArgument.New(
				"array of dynamic elements %s", t)
		}

		return &arrayCodec{elem: elem, n: t.Len()}, nil
	case reflect.Slice:
		elem, err := c.resolve(t.Elem(), "")
		if err != nil {
			return nil, err
		}
		if elem.bitSize() < 0 {
			return nil, bits.ErrInvalidArgument.New(
				"slice of dynamic elements %s", t)
		}

		return &sliceCodec{elem: elem}, nil
	}

	return nil, bits.ErrInvalidArgument.New("unsupported type %s", t)
}

func (c *Coder) buildStruct(t reflect.Type) (codec, error) {
	sc := &structCodec{name: t.Name()}
	if sc.name == "" {
		sc.name = t.String()
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)

		tag := f.Tag.Get(tagName)
		if tag == skipTag || f.PkgPath != "" {
			continue
		}

		fc, err := c.resolve(f.Type, tag)
		if err != nil {
			return nil, withField(err, f.Name, sc.name)
		}
		if fc.bitSize() < 0 {
			return nil, withField(bits.ErrInvalidArgument.New(
				"dynamic fields are not supported"), f.Name, sc.name)
		}

		sc.size += fc.bitSize()
		sc.fields = append(sc.fields, structField{
			name:  f.Name,
			index: i,
			cd:    fc,
		})
	}

	return sc, nil
}

func valueOf(val any) (reflect.Value, error) {
	v := reflect.ValueOf(val)
	if !v.IsValid() {
		return v, bits.ErrInvalidArgument.New("nil value")
	}

	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return v, bits.ErrInvalidArgument.New("nil pointer")
		}
		v = v.Elem()
	}

	return v, nil
}

// Marshal encodes val into a bit vector: struct fields in declaration
// order, array and slice elements back to back, no padding anywhere.
func (c *Coder) Marshal(val any) (_ *bitvector.BitVector, err error) {
	defer Error.WrapP(&err)

	v, err := valueOf(val)
	if err != nil {
		return nil, err
	}

	cd, err := c.resolve(v.Type(), "")
	if err != nil {
		return nil, err
	}

	return cd.encode(v)
}

// Unmarshal decodes bv into target, which must be a non-nil pointer.
// Fixed width targets demand that bv be exactly as wide as the type;
// slice targets consume bv as fixed size chunks where the final chunk
// may be short.
func (c *Coder) Unmarshal(bv *bitvector.BitVector, target any) (err error) {
	defer Error.WrapP(&err)

	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return bits.ErrInvalidArgument.New(
			"target must be a non-nil pointer, have %T", target)
	}
	v = v.Elem()

	cd, err := c.resolve(v.Type(), "")
	if err != nil {
		return err
	}

	if size := cd.bitSize(); size >= 0 && bv.Len() != size {
		return bits.ErrSizeMismatch.New(
			"have %d bits, want %d", bv.Len(), size)
	}

	return cd.decode(bv, v)
}

// BitSize returns the encoded width of val in bits.
func (c *Coder) BitSize(val any) (_ int, err error) {
	defer Error.WrapP(&err)

	v, err := valueOf(val)
	if err != nil {
		return 0, err
	}

	cd, err := c.resolve(v.Type(), "")
	if err != nil {
		return 0, err
	}

	if size := cd.bitSize(); size >= 0 {
		return size, nil
	}

	sc := cd.(*sliceCodec)

	return v.Len() * sc.elem.bitSize(), nil
}

// MarshalBytes encodes val and renders the result as whole bytes, zero
// padded on the right to a byte boundary, with the whole buffer reversed
// for little endian.
func (c *Coder) MarshalBytes(val any, endianness bits.Endianness) (_ []byte, err error) {
	defer Error.WrapP(&err)

	if !endianness.Valid() {
		return nil, bits.ErrInvalidArgument.New(
			"invalid endianness %q", endianness)
	}

	bv, err := c.Marshal(val)
	if err != nil {
		return nil, err
	}

	b := bv.ToBytes()
	if endianness == bits.LittleEndian {
		for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
			b[i], b[j] = b[j], b[i]
		}
	}

	return b, nil
}

// UnmarshalBytes undoes MarshalBytes.
func (c *Coder) UnmarshalBytes(b []byte, target any, endianness bits.Endianness) (err error) {
	defer Error.WrapP(&err)

	if !endianness.Valid() {
		return bits.ErrInvalidArgument.New(
			"invalid endianness %q", endianness)
	}

	if endianness == bits.LittleEndian {
		r := make([]byte, len(b))
		for i, x := range b {
			r[len(b)-1-i] = x
		}
		b = r
	}

	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return bits.ErrInvalidArgument.New(
			"target must be a non-nil pointer, have %T", target)
	}

	cd, err := c.resolve(v.Elem().Type(), "")
	if err != nil {
		return err
	}

	bv := bitvector.FromBytes(b)
	if size := cd.bitSize(); size >= 0 {
		if len(b) != (size+7)/8 {
			return bits.ErrSizeMismatch.New(
				"have %d bytes, want %d", len(b), (size+7)/8)
		}

		bv, err = bv.Slice(0, size)
		if err != nil {
			return err
		}
	}

	return c.Unmarshal(bv, target)
}

// Marshal encodes val with the shared coder.
func Marshal(val any) (*bitvector.BitVector, error) {
	return defaultCoder.Marshal(val)
}

// Unmarshal decodes bv into target with the shared coder.
func Unmarshal(bv *bitvector.BitVector, target any) error {
	return defaultCoder.Unmarshal(bv, target)
}

// BitSize returns the encoded width of val with the shared coder.
func BitSize(val any) (int, error) {
	return defaultCoder.BitSize(val)
}

// MarshalBytes encodes val to bytes with the shared coder.
func MarshalBytes(val any, endianness bits.Endianness) ([]byte, error) {
	return defaultCoder.MarshalBytes(val, endianness)
}

// UnmarshalBytes decodes bytes into target with the shared coder.
func UnmarshalBytes(b []byte, target any, endianness bits.Endianness) error {
	return defaultCoder.UnmarshalBytes(b, target, endianness)
}
