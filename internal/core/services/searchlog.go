package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
	"github.com/custodia-labs/ncosearch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ncosearch-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ncosearch-cli/internal/logger"
)

// Ensure SearchLogService implements the interface.
var _ driving.SearchLogService = (*SearchLogService)(nil)

// ErrNoSearchLogAPI is returned when the log service has no backend.
var ErrNoSearchLogAPI = errors.New("search log API is required")

// MsgSearchLogsFailed is shown for any failure to load the log.
const MsgSearchLogsFailed = "Failed to load search logs. Please try again."

// SearchLogService reads the search log. It never retries.
type SearchLogService struct {
	api driven.SearchLogAPI
}

// NewSearchLogService creates a search log service.
func NewSearchLogService(api driven.SearchLogAPI) *SearchLogService {
	return &SearchLogService{api: api}
}

// List fetches one page of entries. Any failure is reported with the
// static MsgSearchLogsFailed message wrapping the cause.
func (s *SearchLogService) List(ctx context.Context, page domain.LogPage) ([]domain.SearchLogEntry, error) {
	if s.api == nil {
		return nil, ErrNoSearchLogAPI
	}

	page = page.Clamp()
	logger.Debug("Fetching search logs skip=%d limit=%d", page.Skip, page.Limit)

	entries, err := s.api.ListSearchLogs(ctx, page)
	if err != nil {
		logger.Warn("Search log fetch failed: %v", err)
		return nil, &LogLoadError{Err: err}
	}
	if entries == nil {
		entries = []domain.SearchLogEntry{}
	}
	return entries, nil
}

// LogLoadError is returned when the search log could not be loaded.
type LogLoadError struct {
	Err error
}

// Error implements the error interface.
func (e *LogLoadError) Error() string {
	return fmt.Sprintf("%s: %v", MsgSearchLogsFailed, e.Err)
}

// Unwrap returns the cause.
func (e *LogLoadError) Unwrap() error {
	return e.Err
}
