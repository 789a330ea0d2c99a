// Package extractors provides implementations of the driven.Extractor
// interface. Each extractor turns one kind of source file into its ordered
// page texts.
//
// Extractors are registered with a Registry at startup; the Registry itself
// implements driven.Extractor and dispatches on file extension.
package extractors
