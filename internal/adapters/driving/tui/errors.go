package tui

import "errors"

// ErrMissingController is returned when the index controller is not provided.
var ErrMissingController = errors.New("tui: index controller is required")

// ErrMissingDirectory is returned when no source directory is named.
var ErrMissingDirectory = errors.New("tui: source directory is required")
