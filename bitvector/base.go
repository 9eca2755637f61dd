package bitvector

import (
	"strings"

	"github.com/calebcase/bits"
)

// Separator characters accepted (and ignored) in every base-string input.
const separators = "_- :"

var alphabets = map[int]string{
	2:  "01",
	4:  "0123",
	8:  "01234567",
	16: "0123456789abcdef",
	32: "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567",
	64: "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/",
}

func bitsPerDigit(base int) int {
	k := 0
	for b := base; b > 1; b >>= 1 {
		k++
	}

	return k
}

func stripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(separators, r) {
			return -1
		}

		return r
	}, s)
}

// Parse constructs a vector from a base string, dispatching on its prefix:
// "0b" binary, "0o" octal, "0x" hexadecimal, no prefix binary. Separator
// characters "_", "-", " ", and ":" are ignored wherever they appear.
func Parse(s string) (*BitVector, error) {
	s = stripSeparators(s)

	switch {
	case strings.HasPrefix(s, "0b"):
		return FromBin(s)
	case strings.HasPrefix(s, "0o"):
		return FromOct(s)
	case strings.HasPrefix(s, "0x"):
		return FromHex(s)
	default:
		return From01(s)
	}
}

func fromDigits(s string, base int) (*BitVector, error) {
	alphabet := alphabets[base]
	k := bitsPerDigit(base)

	v, _ := FromSize(len(s) * k)
	for i, r := range s {
		d := strings.IndexRune(alphabet, r)
		if d < 0 && base == 16 {
			// Hex digits are accepted in either case.
			d = strings.IndexRune(alphabet, r|0x20)
		}
		if d < 0 {
			return nil, bits.ErrInvalidFormat.New(
				"invalid base-%d digit %q", base, r)
		}

		for j := 0; j < k; j++ {
			if d&(1<<(k-1-j)) != 0 {
				v.setbit(i*k+j, 1)
			}
		}
	}

	return v, nil
}

// From01 constructs a vector from a string of 0s and 1s, one bit per digit.
func From01(s string) (_ *BitVector, err error) {
	defer Error.WrapP(&err)

	return fromDigits(stripSeparators(s), 2)
}

// FromBin is From01 with an optional "0b" prefix.
func FromBin(s string) (_ *BitVector, err error) {
	defer Error.WrapP(&err)

	s = stripSeparators(s)
	s = strings.TrimPrefix(s, "0b")

	return fromDigits(s, 2)
}

// FromOct constructs a vector from an octal string with an optional "0o"
// prefix, three bits per digit.
func FromOct(s string) (_ *BitVector, err error) {
	defer Error.WrapP(&err)

	s = stripSeparators(s)
	s = strings.TrimPrefix(s, "0o")

	return fromDigits(s, 8)
}

// FromHex constructs a vector from a hexadecimal string with an optional
// "0x" prefix, four bits per digit. Leading zero digits contribute their
// four bits like any other digit.
func FromHex(s string) (_ *BitVector, err error) {
	defer Error.WrapP(&err)

	s = stripSeparators(s)
	s = strings.TrimPrefix(s, "0x")

	return fromDigits(s, 16)
}

// FromBase constructs a vector from a string in the given base, which must
// be a power of two at most 64. Bases 2, 8, and 16 accept their usual
// prefixes; 32 and 64 use the RFC 4648 alphabets.
func FromBase(s string, base int) (_ *BitVector, err error) {
	defer Error.WrapP(&err)

	switch base {
	case 2:
		return FromBin(s)
	case 8:
		return FromOct(s)
	case 16:
		return FromHex(s)
	}

	if _, ok := alphabets[base]; !ok {
		return nil, bits.ErrInvalidArgument.New("unsupported base %d", base)
	}

	return fromDigits(stripSeparators(s), base)
}

func group(s string, every int, sep string) string {
	if sep == "" || every <= 0 {
		return s
	}

	sb := &strings.Builder{}
	for i := 0; i < len(s); i += every {
		if i > 0 {
			sb.WriteString(sep)
		}
		end := i + every
		if end > len(s) {
			end = len(s)
		}
		sb.WriteString(s[i:end])
	}

	return sb.String()
}

// To01 renders the bits as an unprefixed string of 0s and 1s. A non-empty
// sep is inserted every bytesPerSep bytes' worth of digits.
func (v *BitVector) To01(sep string, bytesPerSep int) string {
	sb := &strings.Builder{}
	sb.Grow(v.n)
	for i := 0; i < v.n; i++ {
		sb.WriteByte('0' + v.bit(i))
	}

	return group(sb.String(), 8*bytesPerSep, sep)
}

// ToBase renders the bits in the given base, which must be a power of two at
// most 64, and whose digit width must divide the vector length exactly. A
// non-empty sep is inserted every bytesPerSep bytes' worth of digits. When
// the digit width does not divide 8 (bases 32 and 64), a byte's worth
// rounds up to the next whole digit, so groups land on digit boundaries
// rather than exact byte boundaries.
func (v *BitVector) ToBase(base int, sep string, bytesPerSep int) (string, error) {
	alphabet, ok := alphabets[base]
	if !ok {
		return "", Error.Wrap(bits.ErrInvalidArgument.New("unsupported base %d", base))
	}

	k := bitsPerDigit(base)
	if v.n%k != 0 {
		return "", Error.Wrap(bits.ErrInvalidArgument.New(
			"length %d is not a multiple of %d bits per base-%d digit",
			v.n, k, base))
	}

	sb := &strings.Builder{}
	sb.Grow(v.n / k)
	for i := 0; i < v.n; i += k {
		d := 0
		for j := 0; j < k; j++ {
			d = d<<1 | int(v.bit(i+j))
		}
		sb.WriteByte(alphabet[d])
	}

	charsPerByte := (8 + k - 1) / k

	return group(sb.String(), charsPerByte*bytesPerSep, sep), nil
}

// Bin renders the bits as a "0b"-prefixed binary string.
func (v *BitVector) Bin(sep string, bytesPerSep int) string {
	return "0b" + v.To01(sep, bytesPerSep)
}

// Oct renders the bits as a "0o"-prefixed octal string. The length must be a
// multiple of three.
func (v *BitVector) Oct(sep string, bytesPerSep int) (string, error) {
	s, err := v.ToBase(8, sep, bytesPerSep)
	if err != nil {
		return "", err
	}

	return "0o" + s, nil
}

// Hex renders the bits as a "0x"-prefixed hexadecimal string. The length
// must be a multiple of four.
func (v *BitVector) Hex(sep string, bytesPerSep int) (string, error) {
	s, err := v.ToBase(16, sep, bytesPerSep)
	if err != nil {
		return "", err
	}

	return "0x" + s, nil
}
