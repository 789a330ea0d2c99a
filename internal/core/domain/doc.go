// Package domain defines the core business entities for askpdf.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Index: The persisted record of known source files and their pages
//   - PageHit: A ranked page returned for a question
//   - RefreshReport: What an incremental refresh added or skipped
//   - Settings: Runtime configuration resolved from the config store
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
