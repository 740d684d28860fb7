package artifact

import "errors"

var (
	// ErrEmptyDir indicates an empty workspace directory was provided.
	ErrEmptyDir = errors.New("workspace directory must not be empty")
	// ErrUntracked indicates a promotion was attempted for a path the
	// workspace did not create.
	ErrUntracked = errors.New("candidate not tracked by workspace")
)
