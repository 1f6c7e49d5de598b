// Package tui provides the interactive menu for pbi-refresh.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"os/exec"

	"github.com/custodia-labs/pbi-refresh/internal/core/ports/driving"
)

// EditorLauncher builds the process that opens a file for editing.
type EditorLauncher interface {
	Command(path string) (*exec.Cmd, error)
}

// Ports aggregates the services required by the TUI.
type Ports struct {
	// Refresh loads the registry and dispatches refreshes.
	Refresh driving.RefreshService

	// Editor opens the companies file from the Settings entry. Optional.
	Editor EditorLauncher
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(refresh driving.RefreshService, editor EditorLauncher) *Ports {
	return &Ports{
		Refresh: refresh,
		Editor:  editor,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Refresh == nil {
		return ErrMissingRefreshService
	}
	return nil
}
