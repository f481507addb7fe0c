// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
	"github.com/custodia-labs/ncosearch-cli/internal/core/ports/driving"
)

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionBaseURL
	SectionSearchMethod
	SectionVoice
)

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
)

var errNoSettingsService = errors.New("settings service not available")

var searchMethods = domain.AllSearchMethods()

// View is the settings configuration view. Saved values apply the next time
// the program starts, since the API client is built once at startup.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error
	saved    bool

	section  Section
	selected int

	urlInput   textinput.Model
	voiceInput textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	urlInput := textinput.New()
	urlInput.Placeholder = domain.DefaultBaseURL
	urlInput.CharLimit = 512

	voiceInput := textinput.New()
	voiceInput.Placeholder = "e.g. whisper-stream -m ggml-base.en.bin (empty disables voice)"
	voiceInput.CharLimit = 1024

	return &View{
		styles:          s,
		settingsService: settingsService,
		section:         SectionOverview,
		urlInput:        urlInput,
		voiceInput:      voiceInput,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: errNoSettingsService}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.saved = true
		v.backToOverview()
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == "esc" {
		if v.section == SectionOverview {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		v.backToOverview()
		return v, nil
	}

	switch v.section {
	case SectionOverview:
		return v.handleOverviewKeys(msg)
	case SectionSearchMethod:
		return v.handleSearchMethodKeys(msg)
	case SectionBaseURL:
		return v.handleInputKeys(msg, &v.urlInput, v.setBaseURL)
	case SectionVoice:
		return v.handleInputKeys(msg, &v.voiceInput, v.setVoiceCommand)
	}
	return v, nil
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Overview menu: Service URL, Search Method, Voice Command
	const maxItems = 3

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < maxItems-1 {
			v.selected++
		}
	case keyEnter:
		if v.settings == nil {
			return v, nil
		}
		v.saved = false
		v.err = nil
		switch v.selected {
		case 0:
			v.section = SectionBaseURL
			v.urlInput.SetValue(v.settings.API.BaseURL)
			return v, v.urlInput.Focus()
		case 1:
			v.section = SectionSearchMethod
			v.selected = v.searchMethodIndex()
		case 2:
			v.section = SectionVoice
			v.voiceInput.SetValue(strings.TrimSpace(
				v.settings.Voice.Command + " " + strings.Join(v.settings.Voice.Args, " ")))
			return v, v.voiceInput.Focus()
		}
	}
	return v, nil
}

func (v *View) handleSearchMethodKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(searchMethods)-1 {
			v.selected++
		}
	case keyEnter:
		method := searchMethods[v.selected]
		return v, v.save(func(svc driving.SettingsService) error {
			return svc.SetSearchMethod(method)
		})
	}
	return v, nil
}

func (v *View) handleInputKeys(msg tea.KeyMsg, input *textinput.Model, save func(string) tea.Cmd) (*View, tea.Cmd) {
	if msg.String() == keyEnter {
		return v, save(input.Value())
	}
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	return v, cmd
}

func (v *View) setBaseURL(value string) tea.Cmd {
	return v.save(func(svc driving.SettingsService) error {
		return svc.SetBaseURL(value)
	})
}

func (v *View) setVoiceCommand(value string) tea.Cmd {
	fields := strings.Fields(value)
	command := ""
	var args []string
	if len(fields) > 0 {
		command, args = fields[0], fields[1:]
	}
	return v.save(func(svc driving.SettingsService) error {
		return svc.SetVoiceCommand(command, args)
	})
}

func (v *View) save(apply func(driving.SettingsService) error) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: errNoSettingsService}
		}
		return messages.SettingsSaved{Err: apply(svc)}
	}
}

func (v *View) backToOverview() {
	v.section = SectionOverview
	v.selected = 0
	v.urlInput.Blur()
	v.voiceInput.Blur()
}

func (v *View) searchMethodIndex() int {
	if v.settings == nil {
		return 0
	}
	for i, m := range searchMethods {
		if m == v.settings.API.SearchMethod {
			return i
		}
	}
	return 0
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	} else if v.saved {
		b.WriteString(v.styles.Success.Render("Saved. Restart ncosearch to apply."))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		if v.err == nil {
			b.WriteString(v.styles.Muted.Render("Loading settings..."))
		}
		return b.String()
	}

	switch v.section {
	case SectionOverview:
		b.WriteString(v.renderOverview())
	case SectionBaseURL:
		b.WriteString(v.renderInput("Service URL", v.urlInput))
	case SectionSearchMethod:
		b.WriteString(v.renderSearchMethodSelect())
	case SectionVoice:
		b.WriteString(v.renderInput("Voice Command", v.voiceInput))
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render(v.footer()))
	return b.String()
}

func (v *View) renderOverview() string {
	voice := "disabled"
	if v.settings.Voice.IsConfigured() {
		voice = strings.TrimSpace(v.settings.Voice.Command + " " + strings.Join(v.settings.Voice.Args, " "))
	}

	items := []struct{ label, value string }{
		{"Service URL", v.settings.API.BaseURL},
		{"Search Method", fmt.Sprintf("%s (%s)", v.settings.API.SearchMethod, v.settings.API.SearchMethod.Description())},
		{"Voice Command", voice},
	}

	lines := make([]string, 0, len(items)+3)
	for i, item := range items {
		line := fmt.Sprintf("%-15s %s", item.label, item.value)
		if i == v.selected {
			lines = append(lines, v.styles.Selected.Render("> "+line))
		} else {
			lines = append(lines, v.styles.Normal.Render("  "+line))
		}
	}
	lines = append(lines, "",
		v.styles.Muted.Render(fmt.Sprintf("Timeout %s, rate limit %g req/s", v.settings.API.Timeout, v.settings.API.RateLimit)),
		v.styles.Muted.Render("Environment variables and --api-url take precedence over saved values."))
	return strings.Join(lines, "\n")
}

func (v *View) renderSearchMethodSelect() string {
	lines := []string{v.styles.Subtitle.Render("Search Method"), ""}
	for i, m := range searchMethods {
		line := fmt.Sprintf("%-5s %s", m, m.Description())
		if i == v.selected {
			lines = append(lines, v.styles.Selected.Render("> "+line))
		} else {
			lines = append(lines, v.styles.Normal.Render("  "+line))
		}
	}
	return strings.Join(lines, "\n")
}

func (v *View) renderInput(label string, input textinput.Model) string {
	return v.styles.Subtitle.Render(label) + "\n\n" + v.styles.InputField.Render(input.View())
}

func (v *View) footer() string {
	switch v.section {
	case SectionOverview:
		return "[j/k] Navigate  [Enter] Edit  [Esc] Back"
	case SectionSearchMethod:
		return "[j/k] Navigate  [Enter] Save  [Esc] Cancel"
	case SectionBaseURL, SectionVoice:
	}
	return "[Enter] Save  [Esc] Cancel"
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.urlInput.Width = max(width-8, 20)
	v.voiceInput.Width = max(width-8, 20)
}

// Reset resets the view to its initial state.
func (v *View) Reset() {
	v.backToOverview()
	v.err = nil
	v.saved = false
}

// Section returns the active section.
func (v *View) Section() Section {
	return v.section
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}
