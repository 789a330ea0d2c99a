package domain

import (
	"fmt"
	"strings"
	"time"
)

const unknownDescription = "Unknown"

// IndexBackend selects how the index of a source directory is persisted.
type IndexBackend string

// Available index backends.
const (
	// IndexBackendFile stores the index as a single flat binary file.
	IndexBackendFile IndexBackend = "file"

	// IndexBackendSQLite stores the index in a single-file SQLite database.
	IndexBackendSQLite IndexBackend = "sqlite"

	// IndexBackendMemory keeps the index in process memory only.
	IndexBackendMemory IndexBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b IndexBackend) IsValid() bool {
	switch b {
	case IndexBackendFile, IndexBackendSQLite, IndexBackendMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b IndexBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b IndexBackend) Description() string {
	switch b {
	case IndexBackendFile:
		return "Flat file (binary, atomic replace)"
	case IndexBackendSQLite:
		return "SQLite (single-file database)"
	case IndexBackendMemory:
		return "Memory (not persisted)"
	default:
		return unknownDescription
	}
}

// DefaultFileName returns the default index file name for the backend.
func (b IndexBackend) DefaultFileName() string {
	switch b {
	case IndexBackendSQLite:
		return ".askpdf.db"
	default:
		return ".askpdf.idx"
	}
}

// AllIndexBackends returns all available index backends.
func AllIndexBackends() []IndexBackend {
	return []IndexBackend{
		IndexBackendFile,
		IndexBackendSQLite,
		IndexBackendMemory,
	}
}

// DefaultFeatureCount is the dimensionality of the hashed feature space.
const DefaultFeatureCount = 1 << 20

// IndexSettings controls index persistence.
type IndexSettings struct {
	// Backend selects the persistence adapter.
	Backend IndexBackend

	// FileName overrides the index file name inside the source directory.
	// Empty means the backend default.
	FileName string

	// Incremental reuses the persisted index and extracts new files only.
	// When false every run starts from an empty index.
	Incremental bool
}

// ResolvedFileName returns FileName or the backend default.
func (s IndexSettings) ResolvedFileName() string {
	if s.FileName != "" {
		return s.FileName
	}
	return s.Backend.DefaultFileName()
}

// VectorSettings controls the hashed feature space.
type VectorSettings struct {
	// Features is the fixed number of hash buckets.
	Features int

	// StopWords are added to the built-in English stop-word list.
	StopWords []string

	// NoDefaultStopWords disables the built-in list.
	NoDefaultStopWords bool
}

// ExtractSettings controls the external extractor.
type ExtractSettings struct {
	// Timeout bounds a single file's extraction. Zero means no limit.
	Timeout time.Duration
}

// SourceSettings controls which files in a source directory are indexed.
type SourceSettings struct {
	// Extensions are the lower-case file extensions (with dot) to index.
	Extensions []string
}

// Matches reports whether name carries one of the configured extensions.
func (s SourceSettings) Matches(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range s.Extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// WatchSettings controls the watch command.
type WatchSettings struct {
	// Interval is the minimum time between two refreshes.
	Interval time.Duration
	// Settle is how long the directory must stay quiet after an event
	// before a refresh starts, so files still being copied are not read.
	Settle time.Duration
}

// Settings holds all application settings.
type Settings struct {
	Index   IndexSettings
	Vector  VectorSettings
	Extract ExtractSettings
	Source  SourceSettings
	Watch   WatchSettings
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		Index: IndexSettings{
			Backend:     IndexBackendFile,
			Incremental: true,
		},
		Vector: VectorSettings{
			Features: DefaultFeatureCount,
		},
		Source: SourceSettings{
			Extensions: []string{".pdf"},
		},
		Watch: WatchSettings{
			Interval: 2 * time.Second,
			Settle:   500 * time.Millisecond,
		},
	}
}

// Validate checks settings for values the pipeline cannot run with.
func (s Settings) Validate() error {
	if !s.Index.Backend.IsValid() {
		return fmt.Errorf("%w: unknown index backend %q", ErrInvalidInput, s.Index.Backend)
	}
	if s.Vector.Features <= 0 {
		return fmt.Errorf("%w: vector features must be positive, got %d", ErrInvalidInput, s.Vector.Features)
	}
	if len(s.Source.Extensions) == 0 {
		return fmt.Errorf("%w: at least one source extension is required", ErrInvalidInput)
	}
	if s.Extract.Timeout < 0 {
		return fmt.Errorf("%w: extract timeout must not be negative", ErrInvalidInput)
	}
	return nil
}
