package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
	"github.com/custodia-labs/ncosearch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ncosearch-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ncosearch-cli/internal/logger"
)

// Ensure SearchSession implements the interface.
var _ driving.SearchSession = (*SearchSession)(nil)

// ErrNoSearchAPI is returned when a session has no search backend.
var ErrNoSearchAPI = errors.New("search API is required")

// SearchSession submits queries to the search service and owns the
// resulting SearchState. Each submission supersedes the previous one:
// the older request is cancelled and its response, if it still arrives,
// is discarded.
type SearchSession struct {
	api driven.SearchAPI

	mu     sync.RWMutex
	state  domain.SearchState
	cancel context.CancelFunc
}

// NewSearchSession creates a search session over the given API.
func NewSearchSession(api driven.SearchAPI) *SearchSession {
	return &SearchSession{api: api}
}

// Begin moves the state to Searching for non-blank text.
func (s *SearchSession) Begin(text string) (domain.SearchTicket, bool) {
	q, err := domain.ParseQuery(text)
	if err != nil {
		logger.Debug("Ignoring blank query")
		return domain.SearchTicket{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		logger.Debug("Superseding search generation %d", s.state.Generation)
		s.cancel()
		s.cancel = nil
	}

	s.state = domain.SearchState{
		Status:     domain.SearchSearching,
		Query:      q.String(),
		Generation: s.state.Generation + 1,
		Submitted:  true,
	}

	return domain.SearchTicket{Generation: s.state.Generation, Query: q}, true
}

// Execute performs the search for ticket. Cancelling a superseded ticket
// aborts its request.
func (s *SearchSession) Execute(ctx context.Context, ticket domain.SearchTicket) domain.SearchOutcome {
	logger.Section("Search")
	logger.Debug("Generation %d, query %q", ticket.Generation, ticket.Query.String())

	outcome := domain.SearchOutcome{Ticket: ticket}
	if s.api == nil {
		outcome.Err = ErrNoSearchAPI
		return outcome
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.state.Generation != ticket.Generation {
		s.mu.Unlock()
		outcome.Err = context.Canceled
		return outcome
	}
	s.cancel = cancel
	s.mu.Unlock()

	outcome.Results, outcome.Err = s.api.Search(ctx, ticket.Query.String())
	if outcome.Err != nil {
		logger.Warn("Search generation %d failed: %v", ticket.Generation, outcome.Err)
	} else {
		logger.Debug("Search generation %d returned %d results", ticket.Generation, len(outcome.Results))
	}
	return outcome
}

// Resolve applies the outcome when it belongs to the latest submission.
// The busy state is left on both the success and the failure path.
func (s *SearchSession) Resolve(outcome domain.SearchOutcome) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if outcome.Ticket.Generation != s.state.Generation {
		logger.Debug("Discarding stale search generation %d (current %d)",
			outcome.Ticket.Generation, s.state.Generation)
		return false
	}

	s.cancel = nil
	if outcome.Err != nil {
		s.state.Status = domain.SearchFailed
		s.state.Results = nil
		s.state.Message = domain.UserMessage(outcome.Err)
		return true
	}

	results := outcome.Results
	if results == nil {
		results = []domain.SearchResult{}
	}
	s.state.Status = domain.SearchSucceeded
	s.state.Results = results
	s.state.Message = ""
	return true
}

// Submit runs a complete search. Blank text leaves the state unchanged and
// returns a validation error.
func (s *SearchSession) Submit(ctx context.Context, text string) (domain.SearchState, error) {
	ticket, ok := s.Begin(text)
	if !ok {
		return s.State(), domain.ValidationError("search", "Please enter a search query.")
	}

	outcome := s.Execute(ctx, ticket)
	s.Resolve(outcome)
	return s.State(), outcome.Err
}

// Dismiss clears a failure alert.
func (s *SearchSession) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status == domain.SearchFailed {
		s.state.Status = domain.SearchIdle
		s.state.Message = ""
	}
}

// State returns a snapshot of the current state.
func (s *SearchSession) State() domain.SearchState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state
	if st.Results != nil {
		st.Results = append([]domain.SearchResult(nil), st.Results...)
	}
	return st
}
