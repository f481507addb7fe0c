package mcp

import (
	"github.com/custodia-labs/ncosearch-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search submits job-code queries.
	Search driving.SearchSession

	// Admin lists job-code records. Optional.
	Admin driving.AdminService

	// SearchLog reads the service's search log. Optional.
	SearchLog driving.SearchLogService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchSession
	}
	return nil
}
