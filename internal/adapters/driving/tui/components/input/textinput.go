// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/styles"
)

// QueryInput wraps a bubbles textinput for the job description query.
// While disabled it ignores keystrokes and renders muted.
type QueryInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
	disabled  bool
}

// NewQueryInput creates a new query input component.
func NewQueryInput(s *styles.Styles) *QueryInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Describe the job, e.g. repairs sewing machines"
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 50

	return &QueryInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the query input.
func (q *QueryInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (q *QueryInput) Update(msg tea.Msg) (*QueryInput, tea.Cmd) {
	if q.disabled {
		if _, ok := msg.(tea.KeyMsg); ok {
			return q, nil
		}
	}
	var cmd tea.Cmd
	q.textinput, cmd = q.textinput.Update(msg)
	return q, cmd
}

// View renders the query input.
func (q *QueryInput) View() string {
	label := q.styles.Title.Render("Job: ")
	field := q.styles.InputField
	if q.disabled {
		field = field.Foreground(q.styles.Theme().Muted)
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field.Render(q.textinput.View()))
}

// Value returns the current input value.
func (q *QueryInput) Value() string {
	return q.textinput.Value()
}

// SetValue sets the input value.
func (q *QueryInput) SetValue(value string) {
	q.textinput.SetValue(value)
	q.textinput.CursorEnd()
}

// SetDisabled blurs the input while a search is in flight and restores
// focus afterwards.
func (q *QueryInput) SetDisabled(disabled bool) tea.Cmd {
	q.disabled = disabled
	if disabled {
		q.textinput.Blur()
		return nil
	}
	return q.textinput.Focus()
}

// Disabled reports whether the input currently ignores keystrokes.
func (q *QueryInput) Disabled() bool {
	return q.disabled
}

// Focused returns whether the input is focused.
func (q *QueryInput) Focused() bool {
	return q.textinput.Focused()
}

// SetWidth sets the width of the input.
func (q *QueryInput) SetWidth(width int) {
	q.width = width
	// Account for label and padding
	inputWidth := width - 12
	if inputWidth < 20 {
		inputWidth = 20
	}
	q.textinput.Width = inputWidth
}

// Width returns the current width.
func (q *QueryInput) Width() int {
	return q.width
}

// Reset clears the input and re-enables it.
func (q *QueryInput) Reset() {
	q.textinput.Reset()
	q.disabled = false
	q.textinput.Focus()
}
