package domain

import (
	"net/url"
	"strings"
	"time"
)

const unknownDescription = "Unknown"

// SearchMethod selects how the query is sent to the search endpoint.
type SearchMethod string

// Available search methods.
const (
	// SearchMethodPost sends {"query": ...} as a JSON body.
	SearchMethodPost SearchMethod = "post"

	// SearchMethodGet sends the query as the ?query= parameter.
	SearchMethodGet SearchMethod = "get"
)

// IsValid returns true if the method is recognised.
func (m SearchMethod) IsValid() bool {
	switch m {
	case SearchMethodPost, SearchMethodGet:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m SearchMethod) String() string {
	return string(m)
}

// Description returns a human-readable description of the method.
func (m SearchMethod) Description() string {
	switch m {
	case SearchMethodPost:
		return "POST with JSON body"
	case SearchMethodGet:
		return "GET with query parameter"
	default:
		return unknownDescription
	}
}

// APISettings configures the connection to the NCO search service.
type APISettings struct {
	// BaseURL is the service root, e.g. http://localhost:8000.
	BaseURL string

	// Timeout bounds each request.
	Timeout time.Duration

	// SearchMethod selects POST or GET for searches.
	SearchMethod SearchMethod

	// RateLimit is the maximum requests per second (0 disables throttling).
	RateLimit float64
}

// IsConfigured returns true if the base URL is an absolute http(s) URL.
func (a APISettings) IsConfigured() bool {
	u, err := url.Parse(strings.TrimSpace(a.BaseURL))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// VoiceSettings configures the external speech recogniser.
type VoiceSettings struct {
	// Command is the speech-to-text executable. Empty disables voice input.
	Command string

	// Args are passed to Command.
	Args []string

	// ProbeCommand checks microphone permission; a non-zero exit means denied.
	ProbeCommand string

	// Language is the recognition language tag.
	Language string
}

// IsConfigured returns true if a recogniser command is set.
func (v VoiceSettings) IsConfigured() bool {
	return strings.TrimSpace(v.Command) != ""
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	API   APISettings
	Voice VoiceSettings
}

// Default setting values.
const (
	DefaultBaseURL   = "http://localhost:8000"
	DefaultTimeout   = 15 * time.Second
	DefaultRateLimit = 5.0
	DefaultLanguage  = "en-IN"
)

// DefaultAppSettings returns the default settings.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL:      DefaultBaseURL,
			Timeout:      DefaultTimeout,
			SearchMethod: SearchMethodPost,
			RateLimit:    DefaultRateLimit,
		},
		Voice: VoiceSettings{
			Language: DefaultLanguage,
		},
	}
}

// AllSearchMethods returns all valid search methods.
func AllSearchMethods() []SearchMethod {
	return []SearchMethod{SearchMethodPost, SearchMethodGet}
}
