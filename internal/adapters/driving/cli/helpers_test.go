package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driven/config"
	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
	"github.com/custodia-labs/ncosearch-cli/internal/core/services"
)

// fakeBackend stands in for the search service behind every API port.
type fakeBackend struct {
	mu sync.Mutex

	results   []domain.SearchResult
	searchErr error
	queries   []string

	records   []domain.JobCodeRecord
	nextID    int64
	adminErr  error
	mutations int

	logs     []domain.SearchLogEntry
	logErr   error
	lastPage domain.LogPage
}

func (f *fakeBackend) Search(_ context.Context, query string) ([]domain.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results, nil
}

func (f *fakeBackend) ListJobCodes(_ context.Context) ([]domain.JobCodeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.adminErr != nil {
		return nil, f.adminErr
	}
	return append([]domain.JobCodeRecord{}, f.records...), nil
}

func (f *fakeBackend) CreateJobCode(_ context.Context, in domain.JobCodeInput) (*domain.JobCodeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mutations++
	if f.adminErr != nil {
		return nil, f.adminErr
	}
	f.nextID++
	rec := domain.JobCodeRecord{ID: f.nextID, NCOCode: in.NCOCode, Title: in.Title, Description: in.Description}
	f.records = append(f.records, rec)
	return &rec, nil
}

func (f *fakeBackend) UpdateJobCode(_ context.Context, id int64, in domain.JobCodeInput) (*domain.JobCodeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mutations++
	if f.adminErr != nil {
		return nil, f.adminErr
	}
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i] = domain.JobCodeRecord{ID: id, NCOCode: in.NCOCode, Title: in.Title, Description: in.Description}
			rec := f.records[i]
			return &rec, nil
		}
	}
	return nil, domain.ServerError("update job code", 404, "Job not found or update failed.")
}

func (f *fakeBackend) DeleteJobCode(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mutations++
	if f.adminErr != nil {
		return f.adminErr
	}
	for i := range f.records {
		if f.records[i].ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return domain.ServerError("delete job code", 404, "Job not found")
}

func (f *fakeBackend) ListSearchLogs(_ context.Context, page domain.LogPage) ([]domain.SearchLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPage = page
	if f.logErr != nil {
		return nil, f.logErr
	}
	return f.logs, nil
}

// fakeRecognizer returns a fixed transcript.
type fakeRecognizer struct {
	transcript string
	permErr    error
}

func (r *fakeRecognizer) Available() bool { return true }

func (r *fakeRecognizer) CheckPermission(context.Context) error { return r.permErr }

func (r *fakeRecognizer) Recognize(context.Context) (string, error) { return r.transcript, nil }

// testEnv bundles what a test may want to poke at after setup.
type testEnv struct {
	backend *fakeBackend
	store   *memory.ConfigStore
}

// setupTestServices wires real services over a fake backend and restores the
// package state when the test ends.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	saved := Services{
		Search:    searchSession,
		Voice:     voiceInput,
		Admin:     adminService,
		SearchLog: searchLogService,
		Settings:  settingsService,
		Config:    configView,
		LogPath:   debugLogPath,
	}
	savedFactory := serviceFactory
	savedInput, savedInteractive := confirmInput, isInteractive

	backend := &fakeBackend{
		results: []domain.SearchResult{
			{Title: "Data Analyst", NCOCode: "2431.0201", Score: 0.92},
		},
		records: []domain.JobCodeRecord{
			{ID: 1, NCOCode: "7531.0100", Title: "Tailor", Description: "Cuts and sews garments"},
		},
		nextID: 1,
	}
	store := memory.NewConfigStore()

	serviceFactory = nil
	useServices(&Services{
		Search:    services.NewSearchSession(backend),
		Voice:     services.NewVoiceInput(nil),
		Admin:     services.NewAdminService(backend),
		SearchLog: services.NewSearchLogService(backend),
		Settings:  services.NewSettingsService(store),
		Config:    config.NewEnvOverlay(store, func(string) (string, bool) { return "", false }),
	})

	t.Cleanup(func() {
		useServices(&saved)
		serviceFactory = savedFactory
		confirmInput, isInteractive = savedInput, savedInteractive
	})

	return &testEnv{backend: backend, store: store}
}

// executeCommand runs the root command with args and returns combined output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default; cobra keeps parsed values
// between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func interactiveAnswer(answer string) {
	confirmInput = strings.NewReader(answer)
	isInteractive = func() bool { return true }
}
