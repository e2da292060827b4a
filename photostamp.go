package photostamp

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/photostamp/internal/exif"
	"github.com/simonhull/photostamp/internal/registry"
	"github.com/simonhull/photostamp/internal/types"
)

// File is the result of parsing a photo: the detected format, the
// capture timestamp if present, and any warnings collected on the way.
type File = types.File

// Timestamp extracts the original-capture timestamp from raw JPEG bytes.
//
// This is the library's primitive operation. It returns:
//   - (t, true, nil) when the timestamp is present and well-formed
//   - (zero, false, nil) when the file is a valid JPEG but carries no
//     Exif segment as its first marker, or the segment has no timestamp
//     field — absence is not an error
//   - (zero, false, err) when the input violates the format contract:
//     not a JPEG, malformed marker sequence, bad Exif/TIFF signature,
//     big-endian byte order, or a wrong-typed or unparseable field
//
// The buffer is borrowed for the duration of the call; no references are
// retained. The call is pure, so repeated calls on the same bytes return
// identical results.
func Timestamp(data []byte) (time.Time, bool, error) {
	res, err := exif.Extract(data)
	if err != nil {
		return time.Time{}, false, err
	}
	return res.Taken, res.Found, nil
}

// FromBytes parses raw image bytes into a File.
//
// Unlike Timestamp, FromBytes goes through format detection and carries
// the full warnings model, so options like WithStrictParsing apply.
func FromBytes(data []byte, opts ...Option) (*File, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return fromBytes(data, "", int64(len(data)), options)
}

// Open opens an image file and extracts its capture timestamp.
//
// Open reads only the JPEG header and the metadata segment, never the
// image payload, so cost is proportional to the metadata size rather
// than the file size.
//
// Options can be provided to customize parsing behavior:
//
//	file, err := photostamp.Open("photo.jpg",
//	    photostamp.WithStrictParsing(),
//	)
func Open(path string, opts ...Option) (*File, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	size := stat.Size()

	data, err := readMetadata(f, size)
	if err != nil {
		return nil, fmt.Errorf("%s: read metadata: %w", path, err)
	}

	return fromBytes(data, path, size, options)
}

// fromBytes runs detection, parsing, and option handling.
func fromBytes(data []byte, path string, size int64, options *openOptions) (*File, error) {
	format, err := DetectFormat(data, path)
	if err != nil {
		return nil, err
	}

	parser := registry.Get(format)
	if parser == nil {
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("no parser available for format %s", format),
		}
	}

	file, err := parser.Parse(data, path)
	if err != nil {
		if path != "" {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return nil, err
	}
	file.Size = size

	if options.ignoreWarnings {
		file.Warnings = nil
	}
	if options.strictParsing && len(file.Warnings) > 0 {
		return nil, fmt.Errorf("strict parsing failed: %s", file.Warnings[0].Message)
	}

	return file, nil
}

// headerLen covers the SOI marker, the first marker, and the segment
// length field.
const headerLen = 6

// readMetadata reads the JPEG header and, when the first marker is APP1,
// the whole marker segment. Truncated files are returned short and left
// for the parser to classify.
func readMetadata(r io.ReaderAt, size int64) ([]byte, error) {
	n := int64(headerLen)
	if size < n {
		n = size
	}
	head := make([]byte, n)
	if _, err := r.ReadAt(head, 0); err != nil && err != io.EOF {
		return nil, err
	}
	if n < headerLen || head[3] != 0xE1 {
		// No APP1 segment; the header alone is enough to classify the
		// file as metadata-free or malformed.
		return head, nil
	}

	// Segment length includes itself; the body spans bytes 4..4+length.
	length := binary.BigEndian.Uint16(head[4:6])
	total := int64(4) + int64(length)
	if total > size {
		total = size // truncated segment, caught by bounds checks later
	}
	data := make([]byte, total)
	if _, err := r.ReadAt(data, 0); err != nil && err != io.EOF {
		return nil, err
	}
	return data, nil
}

// OpenContext opens a file with context support for cancellation.
//
// This is a thin wrapper around Open() that checks context before
// starting; parsing itself is CPU-bound and bounded by the metadata
// segment length, so no further cancellation points are needed.
func OpenContext(ctx context.Context, path string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// OpenMany opens multiple image files concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. If any file
// fails, the first error is returned and the partial results discarded.
func OpenMany(ctx context.Context, paths ...string) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*File, len(paths))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			file, err := Open(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
