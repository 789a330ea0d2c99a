// Package file provides the TOML-backed configuration store.
// Keys use dot notation in memory and are written as nested tables, so
// "index.backend" appears under an [index] table in config.toml.
package file
