// Package logs provides the search log viewer for the TUI.
package logs

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
	"github.com/custodia-labs/ncosearch-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ncosearch-cli/internal/core/services"
)

// View shows recorded searches. The list is fetched once each time the
// screen is entered; a failure is shown as-is without retrying.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	logs   driving.SearchLogService
	ctx    context.Context
	page   domain.LogPage

	entries []domain.SearchLogEntry
	loading bool
	failed  bool
	offset  int

	width  int
	height int
	ready  bool
}

// NewView creates a new search log view.
func NewView(s *styles.Styles, km *keymap.KeyMap, logs driving.SearchLogService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles: s,
		keymap: km,
		logs:   logs,
		ctx:    context.Background(),
		width:  80,
		height: 24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithPage sets the skip/limit sent with each fetch.
func (v *View) WithPage(page domain.LogPage) *View {
	v.page = page
	return v
}

// Init starts the single fetch for this visit.
func (v *View) Init() tea.Cmd {
	v.entries = nil
	v.failed = false
	v.offset = 0

	if v.logs == nil {
		v.failed = true
		return nil
	}

	v.loading = true
	logs, ctx, page := v.logs, v.ctx, v.page
	return func() tea.Msg {
		entries, err := logs.List(ctx, page)
		return messages.LogsLoaded{Entries: entries, Err: err}
	}
}

// Update handles messages for the log view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.LogsLoaded:
		v.loading = false
		v.failed = msg.Err != nil
		v.entries = msg.Entries

	case tea.KeyMsg:
		keyStr := msg.String()
		switch {
		case keymap.Matches(keyStr, v.keymap.Back):
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case keymap.Matches(keyStr, v.keymap.Up):
			if v.offset > 0 {
				v.offset--
			}
		case keymap.Matches(keyStr, v.keymap.Down):
			if v.offset < len(v.entries)-v.visibleRows() {
				v.offset++
			}
		}
	}
	return v, nil
}

func (v *View) visibleRows() int {
	return max(v.height-10, 3)
}

// View renders the log screen.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{v.styles.Title.Render("Search Logs"), "", v.renderBody(), ""}
	sections = append(sections, v.styles.Help.Render("[j/k] Scroll  [esc] Back"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderBody() string {
	switch {
	case v.loading:
		return v.styles.Muted.Render("Loading search logs...")
	case v.failed:
		return v.styles.Error.Render(services.MsgSearchLogsFailed)
	case len(v.entries) == 0:
		return v.styles.Muted.Render("No searches logged yet.")
	}

	end := min(v.offset+v.visibleRows(), len(v.entries))
	rows := make([][]string, 0, end-v.offset)
	for _, e := range v.entries[v.offset:end] {
		category := e.Category
		if category == "" {
			category = "-"
		}
		rows = append(rows, []string{fmt.Sprint(e.ID), FormatTime(e.Timestamp), e.Query, category})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(v.styles.Muted).
		Headers("ID", "TIME", "QUERY", "CATEGORY").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return v.styles.Subtitle.Padding(0, 1)
			}
			return v.styles.Normal.Padding(0, 1)
		})

	out := t.String()
	if end-v.offset < len(v.entries) {
		out += "\n" + v.styles.Muted.Render(fmt.Sprintf("%d-%d of %d", v.offset+1, end, len(v.entries)))
	}
	return out
}

// FormatTime renders a log timestamp in local time, or "-" when absent.
func FormatTime(ts domain.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format(time.DateTime)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Entries returns the loaded entries.
func (v *View) Entries() []domain.SearchLogEntry {
	return v.entries
}

// Failed reports whether the last fetch failed.
func (v *View) Failed() bool {
	return v.failed
}
