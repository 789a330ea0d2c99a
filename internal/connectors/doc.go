// Package connectors contains adapters that observe document sources.
//
// The filesystem connector watches a local source directory so the index
// can be refreshed as new documents arrive.
package connectors
