package bittype

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/zeebo/errs"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/calebcase/bits"
	"github.com/calebcase/bits/integer"
)

var Error = errs.Class("bittype")

// Kind is the closed set of value shapes a Type can describe.
type Kind string

const (
	KindUint   Kind = "uint"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindString Kind = "string"
	KindBuffer Kind = "buffer"
)

// Type is an immutable descriptor of a bit level value shape. Types are
// interned: factories return the same *Type for the same shape, so pointer
// equality means shape equality.
type Type struct {
	kind Kind
	size int

	// KindInt only.
	format integer.Format

	// KindFloat only.
	expBits  int
	mantBits int

	// KindString only.
	encodingName string
	codec        encoding.Encoding // nil means raw UTF-8 passthrough
	subs         map[string]string // stored -> presented
	reverse      map[string]string // presented -> stored
	subsRE       *regexp.Regexp
	reverseRE    *regexp.Regexp

	name string
}

// Kind returns the value shape.
func (t *Type) Kind() Kind { return t.kind }

// Size returns the width in bits.
func (t *Type) Size() int { return t.size }

// Name returns a short descriptor such as "U8" or "F32(8/23)".
func (t *Type) Name() string { return t.name }

func (t *Type) String() string { return t.name }

// types interns descriptors by their canonical key.
var types sync.Map // string -> *Type

func intern(key string, mk func() (*Type, error)) (*Type, error) {
	if t, ok := types.Load(key); ok {
		return t.(*Type), nil
	}

	t, err := mk()
	if err != nil {
		return nil, err
	}

	actual, _ := types.LoadOrStore(key, t)

	return actual.(*Type), nil
}

func checkIntegerWidth(width int) error {
	if width < 1 {
		return bits.ErrInvalidArgument.New("width %d is not positive", width)
	}
	if width > 64 {
		// Wider integers are served by the integer package directly.
		return bits.ErrInvalidArgument.New("width %d exceeds 64 bits", width)
	}

	return nil
}

// UintType returns the unsigned integer type of the given width, 1 to 64
// bits.
func UintType(width int) (_ *Type, err error) {
	defer Error.WrapP(&err)

	if err := checkIntegerWidth(width); err != nil {
		return nil, err
	}

	return intern(fmt.Sprintf("uint:%d", width), func() (*Type, error) {
		return &Type{
			kind: KindUint,
			size: width,
			name: fmt.Sprintf("U%d", width),
		}, nil
	})
}

// IntType returns the signed integer type of the given width and
// representation, 1 to 64 bits.
func IntType(width int, format integer.Format) (_ *Type, err error) {
	defer Error.WrapP(&err)

	if err := checkIntegerWidth(width); err != nil {
		return nil, err
	}
	if !format.Valid() {
		return nil, bits.ErrInvalidArgument.New("unknown format %q", format)
	}

	return intern(fmt.Sprintf("int:%d:%s", width, format), func() (*Type, error) {
		name := fmt.Sprintf("S%d", width)
		if format != integer.TwosComplement {
			name = fmt.Sprintf("S%d[%s]", width, format)
		}

		return &Type{
			kind:   KindInt,
			size:   width,
			format: format,
			name:   name,
		}, nil
	})
}

// FloatType returns the floating point type with the given exponent and
// mantissa widths. The total width is 1+expBits+mantBits.
func FloatType(expBits, mantBits int) (_ *Type, err error) {
	defer Error.WrapP(&err)

	if expBits < 1 || mantBits < 1 {
		return nil, bits.ErrInvalidArgument.New(
			"exponent and mantissa need at least one bit each, got %d/%d",
			expBits, mantBits)
	}

	return intern(fmt.Sprintf("float:%d/%d", expBits, mantBits), func() (*Type, error) {
		size := 1 + expBits + mantBits

		return &Type{
			kind:     KindFloat,
			size:     size,
			expBits:  expBits,
			mantBits: mantBits,
			name:     fmt.Sprintf("F%d(%d/%d)", size, expBits, mantBits),
		}, nil
	})
}

// lookupCodec resolves an encoding by IANA name. UTF-8 is handled natively
// since Go strings already are UTF-8.
func lookupCodec(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "utf-8", "utf8":
		return nil, nil
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), nil
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	}

	codec, err := ianaindex.IANA.Encoding(name)
	if err != nil || codec == nil {
		return nil, bits.ErrInvalidArgument.New("unknown encoding %q", name)
	}

	return codec, nil
}

// StringType returns the string type of the given width whose bytes are in
// the named IANA encoding.
func StringType(width int, encodingName string) (*Type, error) {
	return StringTypeWithTable(width, encodingName, nil)
}

// StringTypeWithTable is StringType with a codepoint substitution table.
// The table maps stored codepoints to presented ones: reading applies the
// table, writing applies its inverse. This models character ROMs and the
// like where a byte decodes to a different glyph than the encoding says.
func StringTypeWithTable(width int, encodingName string, subs map[string]string) (_ *Type, err error) {
	defer Error.WrapP(&err)

	if width < 1 {
		return nil, bits.ErrInvalidArgument.New("width %d is not positive", width)
	}

	codec, err := lookupCodec(encodingName)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("string:%d:%s:%s", width, strings.ToLower(encodingName), subsKey(subs))

	return intern(key, func() (*Type, error) {
		t := &Type{
			kind:         KindString,
			size:         width,
			encodingName: encodingName,
			codec:        codec,
			name:         fmt.Sprintf("Str%d[%s]", width, strings.ToLower(encodingName)),
		}

		if len(subs) > 0 {
			t.subs = make(map[string]string, len(subs))
			t.reverse = make(map[string]string, len(subs))
			for k, v := range subs {
				t.subs[k] = v
				t.reverse[v] = k
			}
			t.subsRE = alternation(t.subs)
			t.reverseRE = alternation(t.reverse)
		}

		return t, nil
	})
}

func subsKey(subs map[string]string) string {
	if len(subs) == 0 {
		return ""
	}

	pairs := make([]string, 0, len(subs))
	for k, v := range subs {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)

	return strings.Join(pairs, ",")
}

// alternation compiles a regexp matching any key of m, longest first so
// that overlapping keys resolve to the longest match.
func alternation(m map[string]string) *regexp.Regexp {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}

		return keys[i] < keys[j]
	})

	for i, k := range keys {
		keys[i] = regexp.QuoteMeta(k)
	}

	return regexp.MustCompile(strings.Join(keys, "|"))
}

// BufferType returns the opaque buffer type of the given width.
func BufferType(width int) (_ *Type, err error) {
	defer Error.WrapP(&err)

	if width < 1 {
		return nil, bits.ErrInvalidArgument.New("width %d is not positive", width)
	}

	return intern(fmt.Sprintf("buffer:%d", width), func() (*Type, error) {
		return &Type{
			kind: KindBuffer,
			size: width,
			name: fmt.Sprintf("Buf%d", width),
		}, nil
	})
}

func mustType(t *Type, err error) *Type {
	if err != nil {
		panic(err)
	}

	return t
}

// Predeclared common shapes.
var (
	U1  = mustType(UintType(1))
	U2  = mustType(UintType(2))
	U3  = mustType(UintType(3))
	U4  = mustType(UintType(4))
	U5  = mustType(UintType(5))
	U6  = mustType(UintType(6))
	U7  = mustType(UintType(7))
	U8  = mustType(UintType(8))
	U16 = mustType(UintType(16))
	U24 = mustType(UintType(24))
	U32 = mustType(UintType(32))
	U64 = mustType(UintType(64))

	S8  = mustType(IntType(8, integer.TwosComplement))
	S16 = mustType(IntType(16, integer.TwosComplement))
	S24 = mustType(IntType(24, integer.TwosComplement))
	S32 = mustType(IntType(32, integer.TwosComplement))
	S64 = mustType(IntType(64, integer.TwosComplement))

	F16  = mustType(FloatType(5, 10))
	F32  = mustType(FloatType(8, 23))
	F64  = mustType(FloatType(11, 52))
	BF16 = mustType(FloatType(8, 7))
	TF19 = mustType(FloatType(8, 10))
	FP24 = mustType(FloatType(7, 16))

	Str8  = mustType(StringType(8, "utf-8"))
	Str16 = mustType(StringType(16, "utf-8"))
	Str32 = mustType(StringType(32, "utf-8"))
	Str64 = mustType(StringType(64, "utf-8"))

	Buf1  = mustType(BufferType(1))
	Buf2  = mustType(BufferType(2))
	Buf4  = mustType(BufferType(4))
	Buf8  = mustType(BufferType(8))
	Buf16 = mustType(BufferType(16))
	Buf32 = mustType(BufferType(32))
	Buf64 = mustType(BufferType(64))
)
