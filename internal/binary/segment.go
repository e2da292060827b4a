// Package binary provides bounds-checked binary reading primitives over
// byte slices.
package binary

import (
	"encoding/binary"

	"github.com/simonhull/photostamp/internal/types"
)

// Segment wraps a byte slice with bounds checking and helpful error
// messages. It is a read-only view: no method copies or mutates the
// underlying data.
type Segment struct {
	data []byte
	name string
}

// NewSegment creates a Segment over data. The name identifies the region
// in error messages ("jpeg", "app1", ...).
func NewSegment(name string, data []byte) *Segment {
	return &Segment{data: data, name: name}
}

// Slice returns n bytes starting at off with context for error messages.
// The returned slice aliases the segment's data.
func (s *Segment) Slice(off, n int, what string) ([]byte, error) {
	if off < 0 || off >= len(s.data) {
		return nil, &types.OutOfBoundsError{
			Region: s.name,
			What:   what,
			Offset: int64(off),
			Length: n,
			Size:   int64(len(s.data)),
		}
	}
	if off+n > len(s.data) {
		return nil, &types.OutOfBoundsError{
			Region: s.name,
			What:   what,
			Offset: int64(off),
			Length: n,
			Size:   int64(len(s.data)),
		}
	}
	return s.data[off : off+n], nil
}

// Endianness represents byte order for multi-byte values.
type Endianness int

const (
	// BigEndian byte order. Used by: JPEG segment lengths, single floats.
	BigEndian Endianness = iota

	// LittleEndian byte order. Used by: the TIFF directory structure
	// (only the Intel byte order is supported).
	LittleEndian
)

// ReadLE reads a numeric value of type T at the given offset using
// little-endian byte order.
func ReadLE[T uint8 | uint16 | uint32 | uint64](s *Segment, off int, what string) (T, error) {
	return ReadEndian[T](s, off, what, LittleEndian)
}

// ReadBE reads a numeric value of type T at the given offset using
// big-endian byte order.
func ReadBE[T uint8 | uint16 | uint32 | uint64](s *Segment, off int, what string) (T, error) {
	return ReadEndian[T](s, off, what, BigEndian)
}

// ReadEndian reads a numeric value of type T at the given offset with the
// specified byte order. Most code should use ReadLE or ReadBE instead.
func ReadEndian[T uint8 | uint16 | uint32 | uint64](s *Segment, off int, what string, endian Endianness) (T, error) {
	var zero T
	var size int

	switch any(zero).(type) {
	case uint8:
		size = 1
	case uint16:
		size = 2
	case uint32:
		size = 4
	case uint64:
		size = 8
	}

	buf, err := s.Slice(off, size, what)
	if err != nil {
		return zero, err
	}

	var val T
	switch any(zero).(type) {
	case uint8:
		val = T(buf[0])
	case uint16:
		if endian == LittleEndian {
			val = T(binary.LittleEndian.Uint16(buf))
		} else {
			val = T(binary.BigEndian.Uint16(buf))
		}
	case uint32:
		if endian == LittleEndian {
			val = T(binary.LittleEndian.Uint32(buf))
		} else {
			val = T(binary.BigEndian.Uint32(buf))
		}
	case uint64:
		if endian == LittleEndian {
			val = T(binary.LittleEndian.Uint64(buf))
		} else {
			val = T(binary.BigEndian.Uint64(buf))
		}
	}

	return val, nil
}
