package domain

import "errors"

// Error taxonomy of the viewer core. Operations wrap these with context,
// callers match with errors.Is.
var (
	// ErrDecode means the file exists but is not a valid or supported image
	ErrDecode = errors.New("unsupported or corrupt image")
	// ErrNotFound means the path does not exist, or vanished before a lookup
	ErrNotFound = errors.New("not found")
	// ErrDegenerateGeometry means an image or viewport has a zero dimension
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	// ErrNoImage means an operation needs a loaded image and there is none
	ErrNoImage = errors.New("no image loaded")
)
