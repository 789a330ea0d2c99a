// Package file provides the default flat-file implementation of
// driven.IndexStore.
//
// # Format
//
// The index is one little-endian binary file inside the source directory:
//
//	magic    [8]byte  "ASKPDFIX"
//	version  uint32
//	files    uint32 count, then count x (uint32 length, UTF-8 bytes)
//	pages    uint32 count, then count x (uint32 length, UTF-8 bytes)
//	checksum uint32   CRC-32 (IEEE) of every preceding byte
//
// Encoding is deterministic: the same index always produces the same bytes.
//
// # Atomicity
//
// Persist writes to a temporary file in the same directory, syncs it and
// renames it over the index, so readers only ever see a complete file.
package file
