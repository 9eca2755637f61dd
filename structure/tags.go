package structure

import (
	"strconv"
	"strings"

	"github.com/calebcase/bits"
	"github.com/calebcase/bits/bittype"
	"github.com/calebcase/bits/integer"
)

// tagName is the struct tag key.
const tagName = "bits"

// skipTag marks a field to be left out of the encoding.
const skipTag = "-"

func parseWidth(s string) (int, error) {
	width, err := strconv.Atoi(s)
	if err != nil {
		return 0, bits.ErrInvalidFormat.New("bad width %q", s)
	}

	return width, nil
}

// parseTag resolves a `bits:"..."` tag body into a type descriptor.
//
//	uint:5
//	int:12,onescomp
//	float:8/7
//	string:64,utf-8
//	buffer:4
func parseTag(tag string) (_ *bittype.Type, err error) {
	defer Error.WrapP(&err)

	kind, rest, ok := strings.Cut(tag, ":")
	if !ok {
		return nil, bits.ErrInvalidFormat.New("malformed tag %q", tag)
	}

	switch kind {
	case "uint":
		width, err := parseWidth(rest)
		if err != nil {
			return nil, err
		}

		return bittype.UintType(width)
	case "int":
		widthStr, formatStr, ok := strings.Cut(rest, ",")

		width, err := parseWidth(widthStr)
		if err != nil {
			return nil, err
		}

		format := integer.TwosComplement
		if ok {
			format = integer.Format(formatStr)
		}

		return bittype.IntType(width, format)
	case "float":
		expStr, mantStr, ok := strings.Cut(rest, "/")
		if !ok {
			return nil, bits.ErrInvalidFormat.New(
				"float tag %q needs exponent/mantissa widths", tag)
		}

		expBits, err := parseWidth(expStr)
		if err != nil {
			return nil, err
		}

		mantBits, err := parseWidth(mantStr)
		if err != nil {
			return nil, err
		}

		return bittype.FloatType(expBits, mantBits)
	case "string":
		widthStr, encodingName, ok := strings.Cut(rest, ",")

		width, err := parseWidth(widthStr)
		if err != nil {
			return nil, err
		}

		if !ok {
			encodingName = "utf-8"
		}

		return bittype.StringType(width, encodingName)
	case "buffer":
		width, err := parseWidth(rest)
		if err != nil {
			return nil, err
		}

		return bittype.BufferType(width)
	}

	return nil, bits.ErrInvalidFormat.New("unknown tag kind %q", kind)
}
