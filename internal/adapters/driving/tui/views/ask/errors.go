package ask

import "errors"

// Error definitions for the ask view.
var (
	// ErrNoController indicates that no index controller was provided.
	ErrNoController = errors.New("index controller is required")
)
