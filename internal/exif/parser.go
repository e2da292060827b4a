// Package exif extracts the original-capture timestamp from the Exif
// metadata embedded in JPEG images.
//
// The decoder parses just enough of the JPEG container and the embedded
// TIFF directory structure to locate one field; it is not a general
// metadata reader. Parsing is pure: no I/O, no logging, no state kept
// between calls, so concurrent calls on independent buffers are safe.
package exif

import (
	"fmt"
	"time"

	"github.com/simonhull/photostamp/internal/registry"
	"github.com/simonhull/photostamp/internal/types"
)

// tagDateTimeOriginal identifies the original-capture timestamp field
// in IFD0.
const tagDateTimeOriginal uint16 = 0x0132

// Result holds the outcome of a timestamp extraction.
type Result struct {
	// Taken is the capture timestamp; meaningful only when Found is true.
	Taken time.Time

	// Found reports whether the timestamp field was present.
	Found bool

	// Warnings collects non-fatal diagnostics, such as directory entries
	// with unrecognized type codes.
	Warnings []types.Warning
}

// Extract locates and decodes the capture timestamp in raw JPEG bytes.
//
// A structurally valid JPEG without an Exif segment as its first marker,
// or with a directory lacking the timestamp field, yields Found == false
// with a nil error. Format-contract violations (missing SOI, bad
// signatures, a wrong-typed or unparseable timestamp field, truncated
// data) yield an error.
func Extract(data []byte) (Result, error) {
	var res Result

	seg, err := locateSegment(data)
	if err != nil {
		return res, err
	}
	if seg == nil {
		// No metadata segment; a valid result, not an error.
		return res, nil
	}

	e, err := findTag(seg, tagDateTimeOriginal, &res.Warnings)
	if err != nil {
		return res, err
	}
	if e == nil {
		// Directory parsed fine but carries no timestamp field.
		return res, nil
	}

	s, ok := e.value.(AsciiString)
	if !ok {
		// A wrong-typed field indicates a non-conformant file, not an
		// absence of data.
		return res, &types.CorruptedFileError{
			Reason: fmt.Sprintf("timestamp entry has type %s, expected ascii string", e.value.TypeName()),
		}
	}

	t, err := parseTimestamp(string(s))
	if err != nil {
		return res, err
	}

	res.Taken = t
	res.Found = true
	return res, nil
}

// parser implements the registry.Parser interface for JPEG files.
type parser struct{}

// Parse extracts the capture timestamp and wraps it in a File.
func (p *parser) Parse(data []byte, path string) (*types.File, error) {
	res, err := Extract(data)
	if err != nil {
		return nil, err
	}

	return &types.File{
		Path:         path,
		Format:       types.FormatJPEG,
		Taken:        res.Taken,
		HasTimestamp: res.Found,
		Warnings:     res.Warnings,
	}, nil
}

func init() {
	registry.Register(types.FormatJPEG, &parser{})
}
