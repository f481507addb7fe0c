package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewMenu, "menu"},
		{ViewSearch, "search"},
		{ViewAdmin, "admin"},
		{ViewLogs, "logs"},
		{ViewSettings, "settings"},
		{ViewAbout, "about"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.String())
		})
	}
}

func TestViewType_MenuIsZero(t *testing.T) {
	var v ViewType
	assert.Equal(t, ViewMenu, v)
}

func TestSearchCompleted_CarriesTicket(t *testing.T) {
	q, err := domain.ParseQuery("tailor")
	assert.NoError(t, err)

	msg := SearchCompleted{Outcome: domain.SearchOutcome{
		Ticket: domain.SearchTicket{Generation: 3, Query: q},
		Err:    errors.New("boom"),
	}}

	assert.Equal(t, uint64(3), msg.Outcome.Ticket.Generation)
	assert.Equal(t, "tailor", msg.Outcome.Ticket.Query.String())
	assert.Error(t, msg.Outcome.Err)
}
