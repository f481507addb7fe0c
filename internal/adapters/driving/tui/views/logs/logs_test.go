package logs

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
	"github.com/custodia-labs/ncosearch-cli/internal/core/services"
)

// fakeLogAPI implements driven.SearchLogAPI.
type fakeLogAPI struct {
	entries []domain.SearchLogEntry
	err     error
	calls   int
	page    domain.LogPage
}

func (f *fakeLogAPI) ListSearchLogs(_ context.Context, page domain.LogPage) ([]domain.SearchLogEntry, error) {
	f.calls++
	f.page = page
	return f.entries, f.err
}

func sampleEntries() []domain.SearchLogEntry {
	return []domain.SearchLogEntry{
		{ID: 1, Query: "tailor", Timestamp: domain.Timestamp{Time: time.Date(2024, 5, 1, 10, 20, 30, 0, time.UTC)}},
		{ID: 2, Query: "data analyst", Category: "IT"},
	}
}

func newView(api *fakeLogAPI) *View {
	v := NewView(nil, nil, services.NewSearchLogService(api))
	v.SetDimensions(120, 40)
	return v
}

func TestNewView_NilStyles(t *testing.T) {
	v := NewView(nil, nil, nil)

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.NotNil(t, v.keymap)
	assert.Contains(t, v.View(), "Initialising")
}

func TestView_FetchOncePerEntry(t *testing.T) {
	api := &fakeLogAPI{entries: sampleEntries()}
	v := newView(api)

	cmd := v.Init()
	require.NotNil(t, cmd)
	assert.Contains(t, v.View(), "Loading search logs...")
	v.Update(cmd())

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, api.calls)

	out := v.View()
	assert.Contains(t, out, "QUERY")
	assert.Contains(t, out, "tailor")
	assert.Contains(t, out, "data analyst")
	assert.Contains(t, out, "IT")

	v.Update(v.Init()())
	assert.Equal(t, 2, api.calls, "re-entering fetches again")
}

func TestView_PagePassedThrough(t *testing.T) {
	api := &fakeLogAPI{}
	v := newView(api).WithPage(domain.LogPage{Skip: 5, Limit: 500})

	v.Update(v.Init()())

	assert.Equal(t, domain.LogPage{Skip: 5, Limit: domain.MaxLogLimit}, api.page)
}

func TestView_FailureMessage(t *testing.T) {
	api := &fakeLogAPI{err: errors.New("connection refused")}
	v := newView(api)

	v.Update(v.Init()())

	assert.True(t, v.Failed())
	out := v.View()
	assert.Contains(t, out, "Failed to load search logs. Please try again.")
	assert.NotContains(t, out, "connection refused")
	assert.Equal(t, 1, api.calls, "no automatic retry")
}

func TestView_Empty(t *testing.T) {
	v := newView(&fakeLogAPI{})

	v.Update(v.Init()())

	assert.Contains(t, v.View(), "No searches logged yet.")
}

func TestView_NoService(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.SetDimensions(80, 24)

	assert.Nil(t, v.Init())
	assert.Contains(t, v.View(), "Failed to load search logs")
}

func TestView_Scroll(t *testing.T) {
	entries := make([]domain.SearchLogEntry, 20)
	for i := range entries {
		entries[i] = domain.SearchLogEntry{ID: int64(i + 1), Query: fmt.Sprintf("query-%02d", i+1)}
	}
	v := newView(&fakeLogAPI{entries: entries})
	v.SetDimensions(120, 13) // three rows visible
	v.Update(v.Init()())

	assert.Contains(t, v.View(), "1-3 of 20")

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	out := v.View()
	assert.Contains(t, out, "2-4 of 20")
	assert.NotContains(t, out, "query-01")
}

func TestView_EscReturnsToMenu(t *testing.T) {
	v := newView(&fakeLogAPI{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "-", FormatTime(domain.Timestamp{}))

	ts := domain.Timestamp{Time: time.Date(2024, 5, 1, 10, 20, 30, 0, time.UTC)}
	assert.Equal(t, ts.Local().Format(time.DateTime), FormatTime(ts))
}
