package boardkit

import "github.com/pkg/errors"

var (
	// ErrAllocationFailed is the only way a board build can fail.
	ErrAllocationFailed = errors.New("allocation failed")

	ErrUnknownPin   = errors.New("unknown pin")
	ErrCapability   = errors.New("capability not supported")
	ErrUnknownBoard = errors.New("unknown board")
	ErrInvariant    = errors.New("descriptor invariant violated")
)
