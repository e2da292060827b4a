// Package types provides core data structures for photo metadata.
//
// This package defines the File, Warning, and Format types shared between
// the public API and the internal parsers.
package types

import "time"

// File represents a parsed photo with its extracted capture timestamp.
//
// Parsing reads only the JPEG header and the embedded metadata segment,
// never the image payload. A missing timestamp is not an error: most
// JPEGs simply lack this optional metadata, so check HasTimestamp before
// using Taken.
type File struct {
	// Path to the image file ("" when parsed from a byte slice)
	Path string

	// Detected format (currently always JPEG)
	Format Format

	// File size in bytes (0 when parsed from a byte slice of unknown origin)
	Size int64

	// Taken is the original-capture timestamp. The value is naive: the
	// metadata field carries no timezone, so the time is returned in UTC
	// by convention without any offset applied.
	Taken time.Time

	// HasTimestamp reports whether a capture timestamp was present.
	HasTimestamp bool

	// Warnings encountered during parsing (non-fatal issues)
	Warnings []Warning
}
