package mcp

import (
	"context"
	"sync"

	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
	"github.com/custodia-labs/ncosearch-cli/internal/core/ports/driven"
)

// mockSearchSession is a mock implementation of driving.SearchSession.
type mockSearchSession struct {
	mu      sync.Mutex
	results []domain.SearchResult
	err     error
	queries []string
}

func (m *mockSearchSession) Begin(text string) (domain.SearchTicket, bool) {
	q, err := domain.ParseQuery(text)
	return domain.SearchTicket{Query: q}, err == nil
}

func (m *mockSearchSession) Execute(_ context.Context, t domain.SearchTicket) domain.SearchOutcome {
	return domain.SearchOutcome{Ticket: t, Results: m.results, Err: m.err}
}

func (m *mockSearchSession) Resolve(domain.SearchOutcome) bool { return true }

func (m *mockSearchSession) Submit(_ context.Context, text string) (domain.SearchState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, text)
	if m.err != nil {
		return domain.SearchState{Status: domain.SearchFailed, Query: text, Message: domain.UserMessage(m.err)}, m.err
	}
	return domain.SearchState{Status: domain.SearchSucceeded, Query: text, Results: m.results}, nil
}

func (m *mockSearchSession) Dismiss() {}

func (m *mockSearchSession) State() domain.SearchState { return domain.SearchState{} }

// mockAdminService is a mock implementation of driving.AdminService.
type mockAdminService struct {
	records []domain.JobCodeRecord
	err     error
}

func (m *mockAdminService) List(context.Context) ([]domain.JobCodeRecord, error) {
	return m.records, m.err
}

func (m *mockAdminService) Records() []domain.JobCodeRecord { return m.records }

func (m *mockAdminService) Create(context.Context, domain.JobCodeInput) (*domain.JobCodeRecord, error) {
	return nil, m.err
}

func (m *mockAdminService) Update(context.Context, int64, domain.JobCodeInput) (*domain.JobCodeRecord, error) {
	return nil, m.err
}

func (m *mockAdminService) Delete(context.Context, int64, driven.Confirmer) error { return m.err }

func (m *mockAdminService) Notice() domain.Notice { return domain.Notice{} }

func (m *mockAdminService) ClearNotice(uint64) bool { return false }

// mockSearchLogService is a mock implementation of driving.SearchLogService.
type mockSearchLogService struct {
	entries []domain.SearchLogEntry
	err     error
	page    domain.LogPage
}

func (m *mockSearchLogService) List(_ context.Context, page domain.LogPage) ([]domain.SearchLogEntry, error) {
	m.page = page
	return m.entries, m.err
}
