// Package registry manages format-specific parsers for image file types.
package registry

import "github.com/simonhull/photostamp/internal/types"

// Parser is the interface all format parsers implement.
type Parser interface {
	// Parse extracts metadata from raw image bytes. path is used for
	// error context only and may be empty.
	Parse(data []byte, path string) (*types.File, error)
}

// parsers maps formats to their parsers.
var parsers = make(map[types.Format]Parser)

// Register registers a parser for a format.
// This is called by format packages during initialization (init functions).
func Register(format types.Format, parser Parser) {
	parsers[format] = parser
}

// Get returns the parser for a given format.
// Returns nil if no parser is registered for the format.
func Get(format types.Format) Parser {
	return parsers[format]
}
