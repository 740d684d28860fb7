package search

import "errors"

var (
	// ErrInvalidTarget indicates a non-positive target size.
	ErrInvalidTarget = errors.New("target size must be positive")
	// ErrNoViableResult indicates every trial failed, or no grid candidate
	// landed at or below the target. No output file was produced.
	ErrNoViableResult = errors.New("no transform produced a viable result")
)
