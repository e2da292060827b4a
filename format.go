package photostamp

import (
	"github.com/simonhull/photostamp/internal/types"
)

// Format is an alias to types.Format.
// Re-exporting from internal/types keeps the public API in one package.
type Format = types.Format

// Re-export all format constants.
const (
	FormatUnknown = types.FormatUnknown
	FormatJPEG    = types.FormatJPEG
)

// DetectFormat is a wrapper around types.DetectFormat.
// Maintains the public API while delegating to internal implementation.
func DetectFormat(data []byte, path string) (Format, error) {
	return types.DetectFormat(data, path)
}
