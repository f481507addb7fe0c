package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
	"github.com/custodia-labs/ncosearch-cli/internal/core/services"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_Short(t *testing.T) {
	assert.Equal(t, "Search NCO-2015 job codes", searchCmd.Short)
}

func TestSearchCmd_HasFlags(t *testing.T) {
	for _, name := range []string{"json", "voice"} {
		flag := searchCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "%s flag should exist", name)
		assert.Equal(t, "false", flag.DefValue)
	}
}

func TestSearchCmd_RendersCard(t *testing.T) {
	env := setupTestServices(t)

	out, err := executeCommand(t, "search", "data", "analyst")

	require.NoError(t, err)
	assert.Equal(t, []string{"data analyst"}, env.backend.queries)
	assert.Contains(t, out, "Data Analyst")
	assert.Contains(t, out, "Code: 2431.0201")
	assert.Contains(t, out, "Score: 0.9200")
	assert.NotContains(t, out, "Description:")
	assert.NotContains(t, out, "Searching...")
}

func TestSearchCmd_NoResults(t *testing.T) {
	env := setupTestServices(t)
	env.backend.results = []domain.SearchResult{}

	out, err := executeCommand(t, "search", "astronaut")

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_BlankQuery(t *testing.T) {
	env := setupTestServices(t)

	_, err := executeCommand(t, "search", "   ")

	require.Error(t, err)
	assert.Equal(t, "Please enter a search query.", err.Error())
	assert.Empty(t, env.backend.queries)
}

func TestSearchCmd_ServerError(t *testing.T) {
	env := setupTestServices(t)
	env.backend.searchErr = domain.ServerError("search", 500, "")

	_, err := executeCommand(t, "search", "welder")

	require.Error(t, err)
	assert.Equal(t, "The service could not complete the request. Please try again.", err.Error())
	assert.False(t, searchSession.State().Busy())
	assert.Equal(t, domain.SearchFailed, searchSession.State().Status)
}

func TestSearchCmd_JSON(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "search", "--json", "analyst")

	require.NoError(t, err)
	var results []domain.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.Equal(t, "2431.0201", results[0].NCOCode)
}

func TestSearchCmd_VoiceUnavailable(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "search", "--voice")

	require.Error(t, err)
	assert.Equal(t, "Voice input is not available on this system.", err.Error())
}

func TestSearchCmd_VoiceRejectsTypedQuery(t *testing.T) {
	setupTestServices(t)
	voiceInput = services.NewVoiceInput(&fakeRecognizer{transcript: "tailor"})

	_, err := executeCommand(t, "search", "--voice", "cook")

	assert.Error(t, err)
}

func TestSearchCmd_VoiceTranscriptIsSubmitted(t *testing.T) {
	env := setupTestServices(t)
	voiceInput = services.NewVoiceInput(&fakeRecognizer{transcript: "data analyst"})

	out, err := executeCommand(t, "search", "--voice")

	require.NoError(t, err)
	assert.Equal(t, []string{"data analyst"}, env.backend.queries)
	assert.Contains(t, out, "Heard: data analyst")
	assert.Contains(t, out, "Code: 2431.0201")
}

func TestSearchCmd_VoicePermissionDenied(t *testing.T) {
	env := setupTestServices(t)
	voiceInput = services.NewVoiceInput(&fakeRecognizer{permErr: errors.New("denied")})

	_, err := executeCommand(t, "search", "--voice")

	require.Error(t, err)
	assert.Equal(t, "Please allow microphone access in your system settings.", err.Error())
	assert.Empty(t, env.backend.queries)
}

func TestSearchCmd_NotConfigured(t *testing.T) {
	setupTestServices(t)
	searchSession = nil

	_, err := executeCommand(t, "search", "x")

	assert.EqualError(t, err, "search service not configured")
}

func TestRenderSearchState(t *testing.T) {
	tests := []struct {
		name    string
		state   domain.SearchState
		want    []string
		notWant []string
	}{
		{
			name:  "idle renders nothing",
			state: domain.SearchState{},
		},
		{
			name:    "searching shows only the indicator",
			state:   domain.SearchState{Status: domain.SearchSearching, Results: []domain.SearchResult{{Title: "Old"}}},
			want:    []string{"Searching..."},
			notWant: []string{"Old"},
		},
		{
			name:    "empty success",
			state:   domain.SearchState{Status: domain.SearchSucceeded, Results: []domain.SearchResult{}},
			want:    []string{"No results found."},
			notWant: []string{"Searching..."},
		},
		{
			name: "description only when present",
			state: domain.SearchState{Status: domain.SearchSucceeded, Results: []domain.SearchResult{
				{Title: "Tailor", NCOCode: "7531.0100", Score: 1.5, Description: "Cuts cloth"},
			}},
			want: []string{"[1] Tailor", "Code: 7531.0100", "Score: 1.5000", "Description: Cuts cloth"},
		},
		{
			name:    "failure shows message only",
			state:   domain.SearchState{Status: domain.SearchFailed, Message: "Could not reach the search service."},
			want:    []string{"Could not reach the search service."},
			notWant: []string{"Code:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			renderSearchState(&buf, tt.state)

			if len(tt.want) == 0 {
				assert.Empty(t, buf.String())
			}
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, buf.String(), nw)
			}
		})
	}
}
