package mcp

import (
	"github.com/custodia-labs/askpdf/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the MCP server.
type Ports struct {
	// Controller answers questions for one opened source directory.
	Controller driving.IndexController
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Controller == nil {
		return ErrMissingController
	}
	return nil
}
