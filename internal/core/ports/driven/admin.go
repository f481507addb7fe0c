package driven

import (
	"context"

	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
)

// AdminAPI proxies the job-code REST resource of the admin service.
type AdminAPI interface {
	// ListJobCodes returns every job-code record.
	ListJobCodes(ctx context.Context) ([]domain.JobCodeRecord, error)

	// CreateJobCode creates a record and returns it as stored by the service.
	CreateJobCode(ctx context.Context, input domain.JobCodeInput) (*domain.JobCodeRecord, error)

	// UpdateJobCode replaces the fields of an existing record.
	UpdateJobCode(ctx context.Context, id int64, input domain.JobCodeInput) (*domain.JobCodeRecord, error)

	// DeleteJobCode removes a record.
	DeleteJobCode(ctx context.Context, id int64) error
}

// SearchLogAPI reads the search log recorded by the service.
type SearchLogAPI interface {
	// ListSearchLogs returns log entries for the requested page.
	ListSearchLogs(ctx context.Context, page domain.LogPage) ([]domain.SearchLogEntry, error)
}
