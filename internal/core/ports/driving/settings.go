package driving

import "github.com/custodia-labs/ncosearch-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetBaseURL updates the service base URL.
	SetBaseURL(baseURL string) error

	// SetSearchMethod updates how searches are sent.
	SetSearchMethod(method domain.SearchMethod) error

	// SetVoiceCommand configures the speech recogniser command.
	SetVoiceCommand(command string, args []string) error

	// Validate checks if current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
