// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the query input and result cards.
	ViewSearch
	// ViewAdmin manages job-code records.
	ViewAdmin
	// ViewLogs lists recorded searches.
	ViewLogs
	// ViewSettings edits the connection and voice settings.
	ViewSettings
	// ViewAbout is the static about screen.
	ViewAbout
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewAdmin:
		return "admin"
	case ViewLogs:
		return "logs"
	case ViewSettings:
		return "settings"
	case ViewAbout:
		return "about"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// SearchCompleted carries the outcome of one search ticket back to the model.
type SearchCompleted struct {
	Outcome domain.SearchOutcome
}

// VoiceTranscribed carries a recognised utterance.
type VoiceTranscribed struct {
	Text string
}

// VoiceFailed signals that a recognition session ended without a transcript.
type VoiceFailed struct {
	Err error
}

// RecordsLoaded carries the job-code list.
type RecordsLoaded struct {
	Records []domain.JobCodeRecord
	Err     error
}

// RecordSaved signals a create or update finished.
type RecordSaved struct {
	Record *domain.JobCodeRecord
	Err    error
}

// RecordDeleted signals a delete finished.
type RecordDeleted struct {
	ID  int64
	Err error
}

// NoticeExpired is delivered when a banner's display time is over.
type NoticeExpired struct {
	Seq uint64
}

// LogsLoaded carries one page of search log entries.
type LogsLoaded struct {
	Entries []domain.SearchLogEntry
	Err     error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
