package types

import "fmt"

// OutOfBoundsError is returned when a read would fall outside the data
// being parsed (a truncated file or a corrupt offset).
type OutOfBoundsError struct {
	Region string
	What   string
	Offset int64
	Length int
	Size   int64
}

func (e *OutOfBoundsError) Error() string {
	if e.Offset >= e.Size {
		return fmt.Sprintf("%s: offset %d out of bounds (size: %d) while reading %s",
			e.Region, e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("%s: read of %d bytes at offset %d would exceed size %d while reading %s",
		e.Region, e.Length, e.Offset, e.Size, e.What)
}

// UnsupportedFormatError is returned when the input is not a JPEG stream.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("unsupported format: %s", e.Reason)
	}
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// CorruptedFileError is returned when the container or metadata structure
// violates the format contract at a point the parser must commit to:
// bad marker sequences, bad signatures, a wrong-typed or unparseable
// timestamp field.
type CorruptedFileError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedFileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("corrupted file at offset %d: %s", e.Offset, e.Reason)
	}
	return fmt.Sprintf("%s: corrupted file at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// Warning represents a non-fatal issue encountered during parsing.
//
// Warnings indicate data that could not be fully decoded but does not
// block locating the capture timestamp. The main source is directory
// entries whose type code is outside the known table: they are skipped,
// not surfaced as errors.
//
// Warnings are collected in File.Warnings during parsing.
type Warning struct {
	// Stage where the warning occurred ("container", "directory", "value")
	Stage string

	// Warning message
	Message string

	// Offset within the metadata segment where the issue occurred
	// (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
