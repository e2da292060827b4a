package photostamp

// Option configures behavior when opening image files.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	file, err := photostamp.Open("photo.jpg",
//	    photostamp.WithStrictParsing(),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening files.
type openOptions struct {
	strictParsing  bool // Fail on any warning
	ignoreWarnings bool // Suppress all warnings
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		strictParsing:  false,
		ignoreWarnings: false,
	}
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default, photostamp skips directory entries it cannot decode (such
// as entries with unrecognized type codes), returning warnings alongside
// the parsed data. With strict parsing enabled, any warning becomes a
// fatal error.
//
// Example:
//
//	file, err := photostamp.Open("photo.jpg", photostamp.WithStrictParsing())
//	// err != nil if ANY issue is encountered
func WithStrictParsing() Option {
	return func(o *openOptions) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings suppresses all warnings.
//
// By default, warnings about non-fatal issues (skipped entries, etc.)
// are collected in File.Warnings. This option discards them.
//
// Example:
//
//	file, err := photostamp.Open("photo.jpg", photostamp.WithIgnoreWarnings())
//	// file.Warnings will always be empty
func WithIgnoreWarnings() Option {
	return func(o *openOptions) {
		o.ignoreWarnings = true
	}
}
