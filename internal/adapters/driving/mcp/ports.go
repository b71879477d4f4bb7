package mcp

import (
	"github.com/custodia-labs/docnav/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers questions against the documentation index.
	Query driving.QueryService

	// Index rebuilds the index from a documentation directory.
	// Optional; when nil the rebuild tool is not registered.
	Index driving.IndexService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
