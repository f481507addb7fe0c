package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
	"github.com/custodia-labs/ncosearch-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockSearchAPI implements driven.SearchAPI for testing.
// When block is set, Search waits for the channel or ctx cancellation.
type mockSearchAPI struct {
	mu      sync.Mutex
	results map[string][]domain.SearchResult
	err     error
	block   chan struct{}
	queries []string
}

func (m *mockSearchAPI) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	block := m.block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.results[query], nil
}

func (m *mockSearchAPI) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queries)
}

// mockAdminAPI implements driven.AdminAPI with an in-memory table.
type mockAdminAPI struct {
	mu        sync.Mutex
	records   []domain.JobCodeRecord
	nextID    int64
	listErr   error
	createErr error
	updateErr error
	deleteErr error

	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int
}

func (m *mockAdminAPI) ListJobCodes(_ context.Context) ([]domain.JobCodeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]domain.JobCodeRecord(nil), m.records...), nil
}

func (m *mockAdminAPI) CreateJobCode(_ context.Context, input domain.JobCodeInput) (*domain.JobCodeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	rec := domain.JobCodeRecord{
		ID: m.nextID, NCOCode: input.NCOCode, Title: input.Title, Description: input.Description,
	}
	m.records = append(m.records, rec)
	return &rec, nil
}

func (m *mockAdminAPI) UpdateJobCode(
	_ context.Context, id int64, input domain.JobCodeInput,
) (*domain.JobCodeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	for i := range m.records {
		if m.records[i].ID == id {
			m.records[i].NCOCode = input.NCOCode
			m.records[i].Title = input.Title
			m.records[i].Description = input.Description
			rec := m.records[i]
			return &rec, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockAdminAPI) DeleteJobCode(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCalls++
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i := range m.records {
		if m.records[i].ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockAdminAPI) transportCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls + m.createCalls + m.updateCalls + m.deleteCalls
}

// mockSearchLogAPI implements driven.SearchLogAPI for testing.
type mockSearchLogAPI struct {
	entries  []domain.SearchLogEntry
	err      error
	calls    int
	lastPage domain.LogPage
}

func (m *mockSearchLogAPI) ListSearchLogs(_ context.Context, page domain.LogPage) ([]domain.SearchLogEntry, error) {
	m.calls++
	m.lastPage = page
	if m.err != nil {
		return nil, m.err
	}
	return m.entries, nil
}

// mockRecognizer implements driven.Recognizer for testing.
// Recognize waits on release (if set) or ctx cancellation.
type mockRecognizer struct {
	mu            sync.Mutex
	available     bool
	permissionErr error
	transcript    string
	err           error
	release       chan struct{}
	started       chan struct{}
	permChecks    int
}

func (m *mockRecognizer) Available() bool {
	return m.available
}

func (m *mockRecognizer) CheckPermission(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.permChecks++
	return m.permissionErr
}

func (m *mockRecognizer) Recognize(ctx context.Context) (string, error) {
	if m.started != nil {
		close(m.started)
	}
	if m.release != nil {
		select {
		case <-m.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return m.transcript, m.err
}

func (m *mockRecognizer) checks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.permChecks
}

// fixedConfirmer answers every prompt the same way.
type fixedConfirmer struct {
	answer  bool
	err     error
	prompts []string
}

func (c *fixedConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	c.prompts = append(c.prompts, prompt)
	return c.answer, c.err
}

var (
	_ driven.SearchAPI    = (*mockSearchAPI)(nil)
	_ driven.AdminAPI     = (*mockAdminAPI)(nil)
	_ driven.SearchLogAPI = (*mockSearchLogAPI)(nil)
	_ driven.Recognizer   = (*mockRecognizer)(nil)
	_ driven.Confirmer    = (*fixedConfirmer)(nil)
)
