// Package errs defines the sentinel errors shared by the lossless codecs and
// the service built around them.
//
// Producers wrap a sentinel with context using fmt.Errorf("%w: ...", errs.ErrX);
// callers match with errors.Is.
package errs

import "errors"

var (
	// ErrDegenerateInput reports an alphabet too small for prefix coding.
	ErrDegenerateInput = errors.New("degenerate input")
	// ErrFormat reports a malformed or corrupt artifact, or text input that is not valid UTF-8.
	ErrFormat = errors.New("invalid format")
	// ErrRange reports a value that does not fit in its fixed-width field.
	ErrRange = errors.New("value out of range")
	// ErrInvalidOption reports a codec configuration value that cannot be used.
	ErrInvalidOption = errors.New("invalid option")
	// ErrUnsupportedCodec reports an unknown codec name or type.
	ErrUnsupportedCodec = errors.New("unsupported codec")
	// ErrUnsupportedFileType reports a file name whose extension has no variant.
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// IsCodecError reports whether err originates from the content of a codec input
// or artifact, as opposed to the codec selection or an I/O failure.
func IsCodecError(err error) bool {
	return errors.Is(err, ErrDegenerateInput) ||
		errors.Is(err, ErrFormat) ||
		errors.Is(err, ErrRange)
}

// IsSelectorError reports whether err was caused by asking for a codec,
// variant or option that does not exist.
func IsSelectorError(err error) bool {
	return errors.Is(err, ErrUnsupportedCodec) ||
		errors.Is(err, ErrUnsupportedFileType) ||
		errors.Is(err, ErrInvalidOption)
}
