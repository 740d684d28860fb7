package codec

import "errors"

var (
	// ErrInvalidQuality indicates a quality factor outside [1,100].
	ErrInvalidQuality = errors.New("quality must be between 1 and 100")
	// ErrInvalidWidth indicates a non-positive maximum raster width.
	ErrInvalidWidth = errors.New("max width must be positive")
	// ErrNoPages indicates the document rendered to zero pages.
	ErrNoPages = errors.New("document contains no renderable pages")
)
