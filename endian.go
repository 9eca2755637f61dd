package bits

// Endianness selects the byte order of a multi-byte value. Bit order within
// a byte is always most-significant first.
type Endianness string

const (
	BigEndian    Endianness = "big"
	LittleEndian Endianness = "little"
)

// Valid reports whether e is one of the two defined byte orders.
func (e Endianness) Valid() bool {
	return e == BigEndian || e == LittleEndian
}
