package exif

import (
	stdbinary "encoding/binary"
	"fmt"

	"github.com/simonhull/photostamp/internal/binary"
	"github.com/simonhull/photostamp/internal/types"
)

// entrySize is the fixed size of one directory entry record: a 16-bit
// tag, a 16-bit type code, a 32-bit component count, and 4 bytes holding
// either the value itself or an offset to it.
const entrySize = 12

// entry is one decoded directory record.
type entry struct {
	tag   uint16
	value Value
}

// findTag walks the root directory looking for the first entry with the
// given tag. Entries are decoded in order and iteration stops at the
// first match, so indirected values of later entries are never read.
// Later duplicates of the tag are ignored by construction.
//
// Entries with unrecognized type codes are skipped and recorded in
// warnings; they must not prevent a later, well-formed entry from being
// found. Returns (nil, nil) when the directory has no matching entry.
func findTag(seg *segment, tag uint16, warnings *[]types.Warning) (*entry, error) {
	count, err := binary.ReadLE[uint16](seg.body, seg.root, "directory entry count")
	if err != nil {
		return nil, err
	}

	for i := 0; i < int(count); i++ {
		off := seg.root + 2 + entrySize*i
		rec, err := seg.body.Slice(off, entrySize, "directory entry")
		if err != nil {
			return nil, err
		}

		e, err := decodeEntry(rec, off, seg.body, warnings)
		if err != nil {
			return nil, err
		}
		if e == nil {
			continue // unrecognized type code, already recorded
		}
		if e.tag == tag {
			return e, nil
		}
	}

	return nil, nil
}

// decodeEntry decodes one 12-byte directory record. Records whose type
// code is outside the codec table yield (nil, nil) with a warning
// appended, since unknown types elsewhere in the directory must not
// abort the whole parse.
//
// Whether the value is inline or indirected is determined solely by its
// total byte length: values of 4 bytes or fewer live in the record's
// last 4 bytes, longer ones live at a little-endian offset relative to
// the TIFF signature (body offset +8).
func decodeEntry(rec []byte, off int, body *binary.Segment, warnings *[]types.Warning) (*entry, error) {
	tag := stdbinary.LittleEndian.Uint16(rec[0:2])
	typeCode := stdbinary.LittleEndian.Uint16(rec[2:4])
	components := stdbinary.LittleEndian.Uint32(rec[4:8])

	codec, ok := codecFor(typeCode)
	if !ok {
		*warnings = append(*warnings, types.Warning{
			Stage:   "directory",
			Offset:  int64(off),
			Message: fmt.Sprintf("entry 0x%04x: type code %d not implemented", tag, typeCode),
		})
		return nil, nil
	}

	total := codec.width * int64(components)

	var valueBytes []byte
	if total <= 4 {
		valueBytes = rec[8:12]
		if codec.variable {
			// Variable-length kinds consume the whole slice; trim the
			// inline bytes to the declared length so trailing record
			// bytes are not treated as content.
			valueBytes = valueBytes[:total]
		}
	} else {
		valueOff := stdbinary.LittleEndian.Uint32(rec[8:12])
		b, err := body.Slice(int(valueOff)+8, int(total), "indirected entry value")
		if err != nil {
			return nil, err
		}
		valueBytes = b
	}

	// A fixed-width kind whose record cannot hold even one component
	// (a zero-count 8-byte value squeezed inline) is malformed.
	if !codec.variable && codec.width > int64(len(valueBytes)) {
		return nil, &types.CorruptedFileError{
			Offset: int64(off),
			Reason: fmt.Sprintf("entry 0x%04x: %d-byte value does not fit its %d inline bytes", tag, codec.width, len(valueBytes)),
		}
	}

	return &entry{tag: tag, value: codec.decode(valueBytes)}, nil
}
