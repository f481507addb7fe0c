package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
	"github.com/custodia-labs/ncosearch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ncosearch-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyAPIBaseURL      = "api.base_url"
	KeyAPITimeout      = "api.timeout"
	KeyAPISearchMethod = "api.search_method"
	KeyAPIRateLimit    = "api.rate_limit"
	KeyVoiceCommand    = "voice.command"
	KeyVoiceArgs       = "voice.args"
	KeyVoiceProbe      = "voice.probe_command"
	KeyVoiceLanguage   = "voice.language"
)

// SettingKeys lists every key the settings service understands.
func SettingKeys() []string {
	return []string{
		KeyAPIBaseURL, KeyAPITimeout, KeyAPISearchMethod, KeyAPIRateLimit,
		KeyVoiceCommand, KeyVoiceArgs, KeyVoiceProbe, KeyVoiceLanguage,
	}
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		API: domain.APISettings{
			BaseURL:      s.getString(KeyAPIBaseURL, defaults.API.BaseURL),
			Timeout:      s.getDuration(KeyAPITimeout, defaults.API.Timeout),
			SearchMethod: s.getSearchMethod(defaults.API.SearchMethod),
			RateLimit:    s.getFloat(KeyAPIRateLimit, defaults.API.RateLimit),
		},
		Voice: domain.VoiceSettings{
			Command:      s.configStore.GetString(KeyVoiceCommand),
			Args:         s.configStore.GetStringSlice(KeyVoiceArgs),
			ProbeCommand: s.configStore.GetString(KeyVoiceProbe),
			Language:     s.getString(KeyVoiceLanguage, defaults.Voice.Language),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(KeyAPIBaseURL, settings.API.BaseURL); err != nil {
		return fmt.Errorf("save api base_url: %w", err)
	}
	if err := s.configStore.Set(KeyAPITimeout, settings.API.Timeout.String()); err != nil {
		return fmt.Errorf("save api timeout: %w", err)
	}
	if err := s.configStore.Set(KeyAPISearchMethod, settings.API.SearchMethod.String()); err != nil {
		return fmt.Errorf("save api search_method: %w", err)
	}
	if err := s.configStore.Set(KeyAPIRateLimit, settings.API.RateLimit); err != nil {
		return fmt.Errorf("save api rate_limit: %w", err)
	}

	if err := s.configStore.Set(KeyVoiceCommand, settings.Voice.Command); err != nil {
		return fmt.Errorf("save voice command: %w", err)
	}
	if err := s.setOrUnset(KeyVoiceArgs, settings.Voice.Args, len(settings.Voice.Args) > 0); err != nil {
		return fmt.Errorf("save voice args: %w", err)
	}
	if err := s.setOrUnset(KeyVoiceProbe, settings.Voice.ProbeCommand, settings.Voice.ProbeCommand != ""); err != nil {
		return fmt.Errorf("save voice probe_command: %w", err)
	}
	if err := s.configStore.Set(KeyVoiceLanguage, settings.Voice.Language); err != nil {
		return fmt.Errorf("save voice language: %w", err)
	}

	return nil
}

// SetBaseURL updates the service base URL.
func (s *SettingsService) SetBaseURL(baseURL string) error {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if !(domain.APISettings{BaseURL: baseURL}).IsConfigured() {
		return fmt.Errorf("invalid base URL: %q", baseURL)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.API.BaseURL = baseURL
	return s.Save(settings)
}

// SetSearchMethod updates how searches are sent.
func (s *SettingsService) SetSearchMethod(method domain.SearchMethod) error {
	if !method.IsValid() {
		return fmt.Errorf("invalid search method: %s", method)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.API.SearchMethod = method
	return s.Save(settings)
}

// SetVoiceCommand configures the speech recogniser command. An empty
// command disables voice input.
func (s *SettingsService) SetVoiceCommand(command string, args []string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Voice.Command = strings.TrimSpace(command)
	settings.Voice.Args = args
	return s.Save(settings)
}

// Validate checks if current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.API.IsConfigured() {
		return fmt.Errorf("api.base_url %q is not an absolute http(s) URL", settings.API.BaseURL)
	}
	if !settings.API.SearchMethod.IsValid() {
		return fmt.Errorf("invalid search method: %s", settings.API.SearchMethod)
	}
	if settings.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", settings.API.Timeout)
	}
	if settings.API.RateLimit < 0 {
		return fmt.Errorf("api.rate_limit must not be negative, got %g", settings.API.RateLimit)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) setOrUnset(key string, value any, present bool) error {
	if present {
		return s.configStore.Set(key, value)
	}
	return s.configStore.Unset(key)
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		if secs := s.configStore.GetInt(key); secs > 0 {
			return time.Duration(secs) * time.Second
		}
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getSearchMethod(defaultVal domain.SearchMethod) domain.SearchMethod {
	val := s.configStore.GetString(KeyAPISearchMethod)
	if val == "" {
		return defaultVal
	}
	method := domain.SearchMethod(strings.ToLower(val))
	if !method.IsValid() {
		return defaultVal
	}
	return method
}
