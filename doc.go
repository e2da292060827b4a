// Package photostamp extracts original-capture timestamps from JPEG
// photos without a general-purpose metadata library.
//
// photostamp parses just enough of the JPEG container and the embedded
// TIFF-based Exif structure to locate one field: the date and time the
// photo was taken.
//
// # Quick Start
//
// Reading the capture timestamp from a photo:
//
//	file, err := photostamp.Open("photo.jpg")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if file.HasTimestamp {
//		fmt.Printf("taken %s\n", file.Taken)
//	}
//
// Or directly from bytes already in memory:
//
//	taken, ok, err := photostamp.Timestamp(data)
//
// # Philosophy
//
// photostamp embodies three core principles:
//
// 1. Absence is not an error: most JPEGs simply lack Exif metadata, so a
// missing segment or a missing timestamp field is a valid result, not a
// failure.
//
// 2. Malformed input never panics: every read is bounds-checked, and
// format-contract violations surface as descriptive errors.
//
// 3. Read only what is needed: Open reads the JPEG header and the
// metadata segment, never the image payload, and the directory walk
// stops at the first matching entry.
//
// # Error Handling
//
// photostamp distinguishes between fatal errors and warnings:
//
//   - Fatal errors mean the input violates the format contract (missing
//     SOI marker, bad Exif/TIFF signatures, unsupported byte order, a
//     wrong-typed or unparseable timestamp field)
//   - Warnings indicate non-fatal issues, such as directory entries with
//     unrecognized type codes, which are skipped
//
// Always check file.Warnings for issues encountered during parsing:
//
//	if len(file.Warnings) > 0 {
//		for _, w := range file.Warnings {
//			log.Printf("Warning: %s", w)
//		}
//	}
//
// # Limitations
//
//   - Only JPEG containers are supported
//   - Only little-endian (Intel byte order) TIFF structures are parsed
//   - Only the first marker after SOI is inspected for an Exif segment
//   - The timestamp field carries no timezone; times are naive
//
// # Concurrency
//
// Parsing is stateless and side-effect-free. Concurrent calls on
// independent buffers are safe; OpenMany parses files in parallel.
package photostamp
