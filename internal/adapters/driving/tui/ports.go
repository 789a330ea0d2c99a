// Package tui provides an interactive terminal user interface for askpdf.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/askpdf/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the TUI.
type Ports struct {
	// Controller answers questions and refreshes the index.
	// It must already be opened.
	Controller driving.IndexController

	// Directory is the source directory shown in the header.
	Directory string
}

// NewPorts creates a new Ports aggregate.
func NewPorts(controller driving.IndexController, directory string) *Ports {
	return &Ports{
		Controller: controller,
		Directory:  directory,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Controller == nil {
		return ErrMissingController
	}
	if p.Directory == "" {
		return ErrMissingDirectory
	}
	return nil
}
