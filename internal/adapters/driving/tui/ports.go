// Package tui provides an interactive terminal user interface for ncosearch.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/ncosearch-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search submits queries and owns the search state.
	Search driving.SearchSession

	// Voice turns speech into a query. Optional.
	Voice driving.VoiceInput

	// Admin manages job-code records. Optional; the admin screen is hidden without it.
	Admin driving.AdminService

	// SearchLog lists recorded queries. Optional.
	SearchLog driving.SearchLogService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the required search session.
func NewPorts(search driving.SearchSession) *Ports {
	return &Ports{Search: search}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchSession
	}
	return nil
}
