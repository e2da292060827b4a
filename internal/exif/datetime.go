package exif

import (
	"fmt"
	"strings"
	"time"

	"github.com/simonhull/photostamp/internal/types"
)

// timestampLayout is the fixed Exif date-time format. The field carries
// no timezone: the parsed time is naive and returned in UTC by
// convention, with no offset applied.
const timestampLayout = "2006:01:02 15:04:05"

// parseTimestamp parses a capture-timestamp string. Exif ASCII values
// are NUL-terminated; trailing NULs are padding, not content, and are
// stripped before parsing. Anything that does not match the layout
// exactly (wrong separators, non-numeric or out-of-range components)
// is a structural error, not an absence.
func parseTimestamp(s string) (time.Time, error) {
	trimmed := strings.TrimRight(s, "\x00")
	t, err := time.Parse(timestampLayout, trimmed)
	if err != nil {
		return time.Time{}, &types.CorruptedFileError{
			Reason: fmt.Sprintf("invalid timestamp %q: expected YYYY:MM:DD HH:MM:SS", trimmed),
		}
	}
	return t, nil
}
