package mcp

import (
	"github.com/custodia-labs/pbi-refresh/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the MCP server.
type Ports struct {
	// Refresh loads the registry and dispatches refreshes.
	Refresh driving.RefreshService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Refresh == nil {
		return ErrMissingRefreshService
	}
	return nil
}
