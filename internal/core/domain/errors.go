package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Index Errors.

	// ErrCorruptIndex indicates the persisted index cannot be decoded.
	// It is fatal: the index is never reset without explicit confirmation.
	ErrCorruptIndex = errors.New("corrupt index")

	// ErrInvalidCorpus indicates a page cannot be vectorised.
	ErrInvalidCorpus = errors.New("invalid corpus")

	// ErrSourceNotFound indicates the source directory does not exist
	// or is not a directory.
	ErrSourceNotFound = errors.New("source directory not found")

	// Extraction Errors.

	// ErrExtraction indicates the pages of a single file could not be obtained.
	// Refresh recovers from it by skipping the file.
	ErrExtraction = errors.New("extraction failed")

	// ErrExtractorUnavailable indicates the external extraction tool is missing.
	ErrExtractorUnavailable = errors.New("extractor unavailable")

	// ErrUnsupportedType indicates no extractor handles a file's extension.
	ErrUnsupportedType = errors.New("unsupported type")
)

// Stage names one step of the index controller pipeline.
type Stage string

// Pipeline stages, in execution order.
const (
	StageLoad    Stage = "load"
	StageRefresh Stage = "refresh"
	StageFit     Stage = "fit"
	StageQuery   Stage = "query"
)

// StageError identifies the pipeline stage a fatal error surfaced from.
type StageError struct {
	Stage Stage
	Err   error
}

// Error implements error.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying cause so errors.Is sees through the stage.
func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError wraps err with the stage it occurred in.
// Returns nil when err is nil.
func NewStageError(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}
