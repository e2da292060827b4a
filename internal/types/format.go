package types

// Format represents the detected image format.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported format.
	FormatUnknown Format = iota
	// FormatJPEG represents JPEG image files.
	FormatJPEG
)

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatJPEG:
		return []string{".jpg", ".jpeg"}
	case FormatUnknown:
		return nil
	default:
		return nil
	}
}

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "JPEG"
	default:
		return "Unknown"
	}
}

// DetectFormat determines the image format by examining magic bytes.
//
// Only JPEG is supported. Known non-JPEG signatures are rejected with a
// reason naming the format, so callers get a useful error instead of a
// generic one. Detection does not validate the full file structure.
func DetectFormat(data []byte, path string) (Format, error) {
	if len(data) < 2 {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "file too small",
		}
	}

	// JPEG Start-Of-Image marker
	if data[0] == 0xFF && data[1] == 0xD8 {
		return FormatJPEG, nil
	}

	// Recognize a few common formats to produce a better error message.
	if len(data) >= 4 {
		switch {
		case data[0] == 0x89 && string(data[1:4]) == "PNG":
			return FormatUnknown, &UnsupportedFormatError{Path: path, Reason: "PNG is not supported"}
		case string(data[0:4]) == "GIF8":
			return FormatUnknown, &UnsupportedFormatError{Path: path, Reason: "GIF is not supported"}
		case string(data[0:4]) == "RIFF":
			return FormatUnknown, &UnsupportedFormatError{Path: path, Reason: "WebP is not supported"}
		case string(data[0:4]) == "II*\x00" || string(data[0:4]) == "MM\x00*":
			return FormatUnknown, &UnsupportedFormatError{Path: path, Reason: "bare TIFF is not supported"}
		}
	}

	return FormatUnknown, &UnsupportedFormatError{
		Path:   path,
		Reason: "missing SOI marker",
	}
}
