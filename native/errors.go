package native

import "errors"

// Common subsystem errors.
var (
	// ErrNotAvailable is returned when a requested backend is not available.
	ErrNotAvailable = errors.New("native: backend not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("native: not initialized")

	// ErrDestroyed is returned when a handle is used after Destroy.
	ErrDestroyed = errors.New("native: handle destroyed")
)
