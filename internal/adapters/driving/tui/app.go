package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/views/admin"
	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/views/logs"
	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/views/settings"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	menuView     *menu.View
	searchView   *search.View
	adminView    *admin.View
	logsView     *logs.View
	settingsView *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports. Menu entries
// for admin, logs and settings only appear when their port is set.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	features := menu.Features{
		Admin:    ports.Admin != nil,
		Logs:     ports.SearchLog != nil,
		Settings: ports.Settings != nil,
	}

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		help:         help.New(),
		menuView:     menu.NewView(s, features),
		searchView:   search.NewView(s, km, ports.Search, ports.Voice),
		adminView:    admin.NewView(s, km, ports.Admin),
		logsView:     logs.NewView(s, km, ports.SearchLog),
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and the views that call services.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.adminView.WithContext(ctx)
	a.logsView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("ncosearch - NCO-2015 Job Code Search"),
	)
}

// Update implements tea.Model.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			if keymap.Matches(msg.String(), a.keymap.Help) {
				a.currentView = messages.ViewHelp
				return a, nil
			}
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
		case messages.ViewAdmin:
			a.adminView, cmd = a.adminView.Update(msg)
		case messages.ViewLogs:
			a.logsView, cmd = a.logsView.Update(msg)
		case messages.ViewSettings:
			a.settingsView, cmd = a.settingsView.Update(msg)
		case messages.ViewAbout, messages.ViewHelp:
			if msg.Type == tea.KeyEsc || msg.String() == "q" {
				a.currentView = messages.ViewMenu
			}
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		a.err = nil
		switch msg.View {
		case messages.ViewSearch:
			return a, tea.Batch(a.searchView.Reset(), a.searchView.Init())
		case messages.ViewAdmin:
			return a, a.adminView.Init()
		case messages.ViewLogs:
			return a, a.logsView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewAbout, messages.ViewHelp:
			// Static views need no initialisation
		}
		return a, nil

	// Search and voice results belong to the search view even if the user
	// has navigated away, so the session never stays busy.
	case messages.SearchCompleted, messages.VoiceTranscribed, messages.VoiceFailed:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.RecordsLoaded, messages.RecordSaved, messages.RecordDeleted, messages.NoticeExpired:
		a.adminView, cmd = a.adminView.Update(msg)
		return a, cmd

	case messages.LogsLoaded:
		a.logsView, cmd = a.logsView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blinks and the like) to the active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewAdmin:
		a.adminView, cmd = a.adminView.Update(msg)
	case messages.ViewLogs:
		a.logsView, cmd = a.logsView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewAbout, messages.ViewHelp:
	}

	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewSearch:
		body = a.searchView.View()
	case messages.ViewAdmin:
		body = a.adminView.View()
	case messages.ViewLogs:
		body = a.logsView.View()
	case messages.ViewSettings:
		body = a.settingsView.View()
	case messages.ViewAbout:
		body = a.viewAbout()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}

	if a.err != nil {
		body += "\n\n" + a.styles.Error.Render("Error: "+a.err.Error())
	}
	return body
}

// viewAbout renders the about screen.
func (a *App) viewAbout() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("About ncosearch"))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Normal.Render(
		"Describe a job in your own words and ncosearch asks the NCO search\n" +
			"service for the best matching codes from the National Classification\n" +
			"of Occupations (NCO-2015). Each result shows the occupation title,\n" +
			"its code and a relevance score."))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Normal.Render(
		"Administrators can add, edit and delete job-code records and review\n" +
			"the queries the service has logged."))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Muted.Render("[esc] back to menu"))
	return b.String()
}

// viewHelp renders the keybindings.
func (a *App) viewHelp() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	b.WriteString(a.help.FullHelpView(a.keymap.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Muted.Render("[esc] back to menu"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.adminView.SetDimensions(width, height)
	a.logsView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
