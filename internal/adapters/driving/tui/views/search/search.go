// Package search provides the main search view for the TUI.
package search

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
	"github.com/custodia-labs/ncosearch-cli/internal/core/ports/driving"
)

// View is the query input, result cards and status bar. It never writes the
// search state itself; every transition goes through the session and the
// components re-read it afterwards.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.ResultList
	statusbar *status.Bar

	session driving.SearchSession
	voice   driving.VoiceInput
	ctx     context.Context

	// voiceNote is the last voice problem shown under the input.
	voiceNote string

	width  int
	height int
	ready  bool
}

// NewView creates a new search view. voice may be nil.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	session driving.SearchSession,
	voice driving.VoiceInput,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:    s,
		keymap:    km,
		input:     input.NewQueryInput(s),
		list:      list.NewResultList(s),
		statusbar: status.NewBar(s, km),
		session:   session,
		voice:     voice,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
	v.statusbar.SetBindings(km.SearchHelp(v.voiceAvailable()))
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		if v.session != nil {
			v.session.Resolve(msg.Outcome)
		}
		return v, v.refresh()

	case messages.VoiceTranscribed:
		v.voiceNote = ""
		v.input.SetValue(msg.Text)
		return v, v.submit(msg.Text)

	case messages.VoiceFailed:
		if !errors.Is(msg.Err, domain.ErrCancelled) {
			v.voiceNote = domain.UserMessage(msg.Err)
		}
		return v, v.refresh()
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		v.stopVoice()
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case keymap.Matches(keyStr, v.keymap.Search):
		// Submitting is disabled while a request is in flight.
		if v.Busy() {
			return v, nil
		}
		return v, v.submit(v.input.Value())

	case keymap.Matches(keyStr, v.keymap.Voice):
		return v, v.toggleVoice()

	case keymap.Matches(keyStr, v.keymap.Dismiss):
		if v.session != nil {
			v.session.Dismiss()
		}
		return v, v.refresh()

	case keyStr == "up":
		v.list.MoveUp()
		return v, nil

	case keyStr == "down":
		v.list.MoveDown()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submit begins a search and returns the command that runs it.
// Blank text leaves everything unchanged.
func (v *View) submit(text string) tea.Cmd {
	if v.session == nil {
		return func() tea.Msg { return messages.ErrorOccurred{Err: ErrNoSearchSession} }
	}

	ticket, ok := v.session.Begin(text)
	if !ok {
		return nil
	}

	session, ctx := v.session, v.ctx
	run := func() tea.Msg {
		return messages.SearchCompleted{Outcome: session.Execute(ctx, ticket)}
	}
	return tea.Batch(v.refresh(), run)
}

// toggleVoice starts a recognition session, or stops the active one.
func (v *View) toggleVoice() tea.Cmd {
	if !v.voiceAvailable() {
		v.voiceNote = domain.UserMessage(domain.ErrVoiceUnavailable)
		return nil
	}

	started, err := v.voice.Toggle(v.ctx)
	if err != nil {
		v.voiceNote = domain.UserMessage(err)
		return v.refresh()
	}
	v.voiceNote = ""
	if !started {
		return v.refresh()
	}

	voice, ctx := v.voice, v.ctx
	listen := func() tea.Msg {
		text, err := voice.Listen(ctx)
		if err != nil {
			return messages.VoiceFailed{Err: err}
		}
		return messages.VoiceTranscribed{Text: text}
	}
	return tea.Batch(v.refresh(), listen)
}

func (v *View) stopVoice() {
	if v.voice != nil && v.voice.State() == domain.VoiceListening {
		v.voice.Stop()
	}
}

func (v *View) voiceAvailable() bool {
	return v.voice != nil && v.voice.Available()
}

// refresh re-reads the session and voice state into the components.
func (v *View) refresh() tea.Cmd {
	state := v.state()

	voiceState := domain.VoiceIdle
	if v.voice != nil {
		voiceState = v.voice.State()
	}

	v.list.Sync(state)
	v.statusbar.Sync(state, voiceState)
	if state.Status == domain.SearchFailed {
		v.statusbar.SetBindings(v.keymap.AlertHelp())
	} else {
		v.statusbar.SetBindings(v.keymap.SearchHelp(v.voiceAvailable()))
	}

	if state.Busy() != v.input.Disabled() {
		return v.input.SetDisabled(state.Busy())
	}
	return nil
}

func (v *View) state() domain.SearchState {
	if v.session == nil {
		return domain.SearchState{}
	}
	return v.session.State()
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render("Search NCO-2015 job codes"), "", v.input.View())

	if v.voice != nil && v.voice.State() == domain.VoiceListening {
		sections = append(sections, v.styles.Warning.Render("Listening... speak now, ctrl+v to stop"))
	} else if v.voiceNote != "" {
		sections = append(sections, v.styles.Error.Render(v.voiceNote))
	}

	sections = append(sections, "")
	if body := v.list.Render(v.state()); body != "" {
		sections = append(sections, body, "")
	}
	sections = append(sections, v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-9) // Reserve space for header, input, status
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Busy reports whether a search is in flight.
func (v *View) Busy() bool {
	return v.state().Busy()
}

// Query returns the current input text.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the input text.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// InputDisabled returns whether the input is blocked by an in-flight search.
func (v *View) InputDisabled() bool {
	return v.input.Disabled()
}

// VoiceNote returns the voice message shown under the input, if any.
func (v *View) VoiceNote() string {
	return v.voiceNote
}

// SelectedIndex returns the index of the selected card.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Reset clears the input and re-syncs with the session. The session state
// itself survives so returning to the screen shows the last results.
func (v *View) Reset() tea.Cmd {
	v.stopVoice()
	v.voiceNote = ""
	v.input.Reset()
	return v.refresh()
}
