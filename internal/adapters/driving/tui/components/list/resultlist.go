// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
)

// Fixed renderer text.
const (
	SearchingText = "Searching..."
	NoResultsText = "No results found."
)

// cardLines is the height of one rendered card including its border.
const cardLines = 5

// ResultList renders a SearchState as result cards. Output depends only on
// the state plus the cursor position and size, which Sync resets whenever a
// new generation arrives.
type ResultList struct {
	styles     *styles.Styles
	generation uint64
	count      int
	selected   int
	width      int
	height     int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 20,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// Sync adopts the result count of state and resets the cursor when the
// generation changed.
func (r *ResultList) Sync(state domain.SearchState) {
	if state.Generation != r.generation {
		r.generation = state.Generation
		r.selected = 0
	}
	r.count = 0
	if state.Status == domain.SearchSucceeded {
		r.count = len(state.Results)
	}
	if r.selected >= r.count {
		r.selected = max(r.count-1, 0)
	}
}

// Render renders state:
//   - idle: nothing
//   - searching: the loading indicator only
//   - failed: the alert only
//   - succeeded: one card per result, or the empty message.
func (r *ResultList) Render(state domain.SearchState) string {
	switch state.Status {
	case domain.SearchSearching:
		return r.styles.Muted.Render(SearchingText)

	case domain.SearchFailed:
		alert := r.styles.Alert.Width(r.cardWidth()).Render(state.Message)
		return alert + "\n" + r.styles.Help.Render("ctrl+x dismiss")

	case domain.SearchSucceeded:
		if len(state.Results) == 0 {
			return r.styles.Muted.Render(NoResultsText)
		}
		return r.renderCards(state.Results)

	case domain.SearchIdle:
	}
	return ""
}

func (r *ResultList) renderCards(results []domain.SearchResult) string {
	lines := make([]string, 0, len(results)+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(results))))

	visible := max(r.height/cardLines, 1)
	selected := min(r.selected, len(results)-1)
	start := 0
	if selected >= visible {
		start = selected - visible + 1
	}
	end := min(start+visible, len(results))

	for i := start; i < end; i++ {
		lines = append(lines, r.renderCard(i, &results[i], i == selected))
	}
	if end < len(results) || start > 0 {
		lines = append(lines, r.styles.Muted.Render(fmt.Sprintf("%d-%d of %d", start+1, end, len(results))))
	}
	return strings.Join(lines, "\n")
}

// renderCard formats one result: title, code, score and an optional description.
func (r *ResultList) renderCard(index int, result *domain.SearchResult, selected bool) string {
	title := result.Title
	if strings.TrimSpace(title) == "" {
		title = "(Untitled)"
	}

	heading := r.styles.Normal.Bold(true).Render(fmt.Sprintf("[%d] %s", index+1, title))
	if selected {
		heading = r.styles.Selected.Render(fmt.Sprintf("[%d] %s", index+1, title))
	}

	body := []string{
		heading,
		r.styles.Code.Render("Code: "+result.NCOCode) + "   " +
			r.styles.Score.Render(fmt.Sprintf("Score: %.4f", result.Score)),
	}
	if result.HasDescription() {
		body = append(body, r.styles.Muted.Render("Description: "+strings.TrimSpace(result.Description)))
	}

	card := r.styles.Card.Width(r.cardWidth())
	if selected {
		card = card.BorderForeground(r.styles.Theme().Primary)
	}
	return card.Render(strings.Join(body, "\n"))
}

func (r *ResultList) cardWidth() int {
	return max(r.width-2, 20)
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < r.count-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}

// Count returns the number of results in the synced state.
func (r *ResultList) Count() int {
	return r.count
}
