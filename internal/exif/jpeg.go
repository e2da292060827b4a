package exif

import (
	"bytes"

	"github.com/simonhull/photostamp/internal/binary"
	"github.com/simonhull/photostamp/internal/types"
)

// JPEG marker bytes
const (
	markerPrefix = 0xFF
	markerSOI    = 0xD8
	markerAPP1   = 0xE1
)

var (
	// exifSignature identifies an Exif payload inside an APP1 segment.
	exifSignature = []byte{'E', 'x', 'i', 'f', 0x00, 0x00}

	// tiffLittleEndian is the Intel byte-order TIFF signature. The
	// Motorola (big-endian) order is not supported: any other signature
	// is a hard failure rather than a silent misparse.
	tiffLittleEndian = []byte{0x49, 0x49, 0x2A, 0x00}
)

// segment is the located Exif APP1 payload. body starts at the JPEG
// segment length field; the TIFF signature sits at body offset 8, and
// every offset in the TIFF structure is relative to that signature, so
// indirected reads re-base with +8.
type segment struct {
	body *binary.Segment

	// root is the IFD0 offset within body.
	root int
}

// locateSegment finds the Exif metadata segment in a JPEG stream.
//
// Only the very first marker after SOI is inspected: if it is not APP1
// the image is treated as metadata-free and (nil, nil) is returned.
// A stream that is not a JPEG at all, or whose APP1 segment carries a
// bad Exif or TIFF signature, is a structural error.
func locateSegment(data []byte) (*segment, error) {
	jpg := binary.NewSegment("jpeg", data)

	head, err := jpg.Slice(0, 4, "SOI and first marker")
	if err != nil {
		return nil, err
	}
	if head[0] != markerPrefix || head[1] != markerSOI {
		return nil, &types.CorruptedFileError{Reason: "missing SOI marker"}
	}
	if head[2] != markerPrefix {
		return nil, &types.CorruptedFileError{Offset: 2, Reason: "expected start of marker"}
	}
	if head[3] != markerAPP1 {
		// Image does not contain metadata as its first segment.
		return nil, nil
	}

	// Segment length is big-endian and includes the two length bytes.
	length, err := binary.ReadBE[uint16](jpg, 4, "APP1 segment length")
	if err != nil {
		return nil, err
	}
	bodyBytes, err := jpg.Slice(4, int(length), "APP1 segment body")
	if err != nil {
		return nil, err
	}
	body := binary.NewSegment("app1", bodyBytes)

	sig, err := body.Slice(2, len(exifSignature), "Exif signature")
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(sig, exifSignature) {
		return nil, &types.CorruptedFileError{Offset: 6, Reason: "invalid Exif signature"}
	}

	order, err := body.Slice(8, len(tiffLittleEndian), "TIFF byte-order signature")
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(order, tiffLittleEndian) {
		return nil, &types.CorruptedFileError{
			Offset: 12,
			Reason: "invalid TIFF signature: only little-endian byte order is supported",
		}
	}

	// IFD0 offset, relative to the TIFF signature.
	ifd0, err := binary.ReadLE[uint32](body, 12, "IFD0 offset")
	if err != nil {
		return nil, err
	}

	return &segment{body: body, root: int(ifd0) + 8}, nil
}
