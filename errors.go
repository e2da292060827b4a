package photostamp

import (
	"github.com/simonhull/photostamp/internal/types"
)

// OutOfBoundsError is an alias to types.OutOfBoundsError.
// Re-exporting from internal/types keeps the public API in one package.
type OutOfBoundsError = types.OutOfBoundsError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
// Re-exporting from internal/types keeps the public API in one package.
type UnsupportedFormatError = types.UnsupportedFormatError

// CorruptedFileError is an alias to types.CorruptedFileError.
// Re-exporting from internal/types keeps the public API in one package.
type CorruptedFileError = types.CorruptedFileError

// Warning is an alias to types.Warning.
// Re-exporting from internal/types keeps the public API in one package.
type Warning = types.Warning
