package serialization

import "errors"

// Common errors. File problems are recoverable I/O errors reported at this
// boundary, a distinct kind from the core's precondition panics.
var (
	ErrShortFile      = errors.New("file smaller than the expected buffer")
	ErrBadValue       = errors.New("malformed numeric value")
	ErrLengthMismatch = errors.New("value count does not match expected length")
)
