// Package mcp provides an MCP (Model Context Protocol) server adapter for askpdf.
// It lets AI assistants rank the pages of one source directory over stdio.
package mcp

import "errors"

// ErrMissingController is returned when the index controller is not provided.
var ErrMissingController = errors.New("mcp: index controller is required")
