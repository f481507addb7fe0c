package driving

import (
	"context"

	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
	"github.com/custodia-labs/ncosearch-cli/internal/core/ports/driven"
)

// AdminService manages job-code records through the admin service.
type AdminService interface {
	// List fetches all records and refreshes the cached list.
	List(ctx context.Context) ([]domain.JobCodeRecord, error)

	// Records returns the cached list from the last successful fetch.
	Records() []domain.JobCodeRecord

	// Create validates input locally, creates the record and re-fetches the list.
	Create(ctx context.Context, input domain.JobCodeInput) (*domain.JobCodeRecord, error)

	// Update validates input locally, updates the record and re-fetches the list.
	Update(ctx context.Context, id int64, input domain.JobCodeInput) (*domain.JobCodeRecord, error)

	// Delete asks confirmer first and only then deletes and re-fetches.
	Delete(ctx context.Context, id int64, confirmer driven.Confirmer) error

	// Notice returns the current banner, if it has not expired.
	Notice() domain.Notice

	// ClearNotice clears the banner with the given sequence number.
	ClearNotice(seq uint64) bool
}

// SearchLogService reads the service's search log.
type SearchLogService interface {
	// List fetches one page of log entries.
	List(ctx context.Context, page domain.LogPage) ([]domain.SearchLogEntry, error)
}
