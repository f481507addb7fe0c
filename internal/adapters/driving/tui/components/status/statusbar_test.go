package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.ResultCount())
	assert.Nil(t, bar.Init())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestBar_Sync(t *testing.T) {
	tests := []struct {
		name   string
		search domain.SearchState
		voice  domain.VoiceState
		want   State
		text   string
	}{
		{
			name: "idle",
			want: StateReady,
			text: "Ready",
		},
		{
			name:   "searching",
			search: domain.SearchState{Status: domain.SearchSearching},
			want:   StateSearching,
			text:   "Searching...",
		},
		{
			name:   "failed",
			search: domain.SearchState{Status: domain.SearchFailed, Message: "nope"},
			want:   StateError,
			text:   "Search failed",
		},
		{
			name:   "results",
			search: domain.SearchState{Status: domain.SearchSucceeded, Results: make([]domain.SearchResult, 3)},
			want:   StateResults,
			text:   "3 results",
		},
		{
			name:   "single result",
			search: domain.SearchState{Status: domain.SearchSucceeded, Results: make([]domain.SearchResult, 1)},
			want:   StateResults,
			text:   "1 result",
		},
		{
			name:   "listening wins over searching",
			search: domain.SearchState{Status: domain.SearchSearching},
			voice:  domain.VoiceListening,
			want:   StateListening,
			text:   "Listening...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(120)

			bar.Sync(tt.search, tt.voice)

			assert.Equal(t, tt.want, bar.State())
			assert.Contains(t, bar.View(), tt.text)
		})
	}
}

func TestBar_SyncKeepsFailureMessage(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.Sync(domain.SearchState{Status: domain.SearchFailed, Message: "Could not reach"}, domain.VoiceIdle)
	assert.Equal(t, "Could not reach", bar.Message())

	bar.Sync(domain.SearchState{}, domain.VoiceIdle)
	assert.Empty(t, bar.Message())
}

func TestBar_Bindings(t *testing.T) {
	km := keymap.DefaultKeyMap()
	bar := NewBar(nil, km)
	bar.SetWidth(120)

	assert.Contains(t, bar.View(), "enter: search")

	bar.SetBindings(km.AdminHelp())
	assert.Contains(t, bar.View(), "a: add")

	bar.SetBindings(nil)
	assert.NotContains(t, bar.View(), "a: add")
}

func TestBar_SetWidth(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetWidth(100)

	assert.Equal(t, 100, bar.Width())
}
