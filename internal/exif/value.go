package exif

import (
	"encoding/binary"
	"math"
	"strings"
	"unicode/utf8"
)

// Value is a decoded directory-entry value. Exactly one concrete type
// implements each of the twelve TIFF value kinds.
type Value interface {
	// TypeName returns the kind name used in error messages.
	TypeName() string
}

type (
	// UnsignedByte is type code 1.
	UnsignedByte uint8
	// AsciiString is type code 2. Raw bytes are converted lossily:
	// invalid UTF-8 sequences are replaced, never failed on.
	AsciiString string
	// UnsignedShort is type code 3.
	UnsignedShort uint16
	// UnsignedLong is type code 4.
	UnsignedLong uint32
	// UnsignedRational is type code 5. The numerator/denominator pair is
	// not decoded numerically: no field this parser cares about uses it.
	UnsignedRational struct{}
	// SignedByte is type code 6.
	SignedByte int8
	// Undefined is type code 7: the raw byte sequence, copied out.
	Undefined []byte
	// SignedShort is type code 8.
	SignedShort int16
	// SignedLong is type code 9.
	SignedLong int32
	// SignedRational is type code 10. Not decoded, like UnsignedRational.
	SignedRational struct{}
	// SingleFloat is type code 11.
	SingleFloat float32
	// DoubleFloat is type code 12.
	DoubleFloat float64
)

func (UnsignedByte) TypeName() string     { return "unsigned byte" }
func (AsciiString) TypeName() string      { return "ascii string" }
func (UnsignedShort) TypeName() string    { return "unsigned short" }
func (UnsignedLong) TypeName() string     { return "unsigned long" }
func (UnsignedRational) TypeName() string { return "unsigned rational" }
func (SignedByte) TypeName() string       { return "signed byte" }
func (Undefined) TypeName() string        { return "undefined" }
func (SignedShort) TypeName() string      { return "signed short" }
func (SignedLong) TypeName() string       { return "signed long" }
func (SignedRational) TypeName() string   { return "signed rational" }
func (SingleFloat) TypeName() string      { return "single float" }
func (DoubleFloat) TypeName() string      { return "double float" }

// typeCodec pairs a type code's per-component byte width with its decode
// rule, keeping the two in lockstep. Decode functions read only the
// leading bytes the kind requires; variable-length kinds (ascii string,
// undefined) consume the whole slice and are marked variable so inline
// values can be trimmed to their declared length first.
type typeCodec struct {
	width    int64
	variable bool
	decode   func(b []byte) Value
}

// typeCodecs is indexed by the 16-bit type code of a directory entry.
// Codes without a codec are unrecognized and the entry is skipped.
//
// The single-float read is deliberately big-endian even though the
// directory is little-endian. The asymmetry is preserved from the
// format this parser was built against; it is unverified against real
// files, so do not "fix" it without test data exercising the path.
var typeCodecs = [13]typeCodec{
	1:  {width: 1, decode: func(b []byte) Value { return UnsignedByte(b[0]) }},
	2:  {width: 1, variable: true, decode: func(b []byte) Value { return AsciiString(lossyString(b)) }},
	3:  {width: 2, decode: func(b []byte) Value { return UnsignedShort(binary.LittleEndian.Uint16(b)) }},
	4:  {width: 4, decode: func(b []byte) Value { return UnsignedLong(binary.LittleEndian.Uint32(b)) }},
	5:  {width: 8, decode: func(b []byte) Value { return UnsignedRational{} }},
	6:  {width: 1, decode: func(b []byte) Value { return SignedByte(b[0]) }},
	7:  {width: 1, variable: true, decode: func(b []byte) Value { return Undefined(append([]byte(nil), b...)) }},
	8:  {width: 2, decode: func(b []byte) Value { return SignedShort(binary.LittleEndian.Uint16(b)) }},
	9:  {width: 4, decode: func(b []byte) Value { return SignedLong(binary.LittleEndian.Uint32(b)) }},
	10: {width: 8, decode: func(b []byte) Value { return SignedRational{} }},
	11: {width: 4, decode: func(b []byte) Value { return SingleFloat(math.Float32frombits(binary.BigEndian.Uint32(b))) }},
	12: {width: 8, decode: func(b []byte) Value { return DoubleFloat(math.Float64frombits(binary.LittleEndian.Uint64(b))) }},
}

// codecFor returns the codec for a type code, or false for codes outside
// the table.
func codecFor(typeCode uint16) (typeCodec, bool) {
	if int(typeCode) >= len(typeCodecs) {
		return typeCodec{}, false
	}
	c := typeCodecs[typeCode]
	if c.decode == nil {
		return typeCodec{}, false
	}
	return c, true
}

// lossyString converts raw bytes to a string, replacing invalid UTF-8
// sequences with the replacement character.
func lossyString(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}
