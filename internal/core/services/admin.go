package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
	"github.com/custodia-labs/ncosearch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ncosearch-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ncosearch-cli/internal/logger"
)

// Ensure AdminService implements the interface.
var _ driving.AdminService = (*AdminService)(nil)

// ErrNoAdminAPI is returned when the admin service has no backend.
var ErrNoAdminAPI = errors.New("admin API is required")

// User-facing admin messages.
const (
	msgFillBothFields = "Please fill in both fields."
	msgFieldTooLong   = "NCO code must be at most 20 characters and title at most 255."
	msgJobAdded       = "Job added successfully!"
	msgJobUpdated     = "Job updated successfully!"
	msgJobDeleted     = "Job deleted successfully!"
)

// MsgConfirmDelete is the question asked before a record is deleted.
const MsgConfirmDelete = "Are you sure you want to delete this job?"

// AdminService manages job-code records. After every successful mutation
// the full list is re-read from the service instead of being patched locally.
type AdminService struct {
	api      driven.AdminAPI
	validate *validator.Validate
	notices  *NoticeBoard

	mu      sync.RWMutex
	records []domain.JobCodeRecord
}

// NewAdminService creates an admin service.
func NewAdminService(api driven.AdminAPI) *AdminService {
	return &AdminService{
		api:      api,
		validate: validator.New(),
		notices:  NewNoticeBoard(),
	}
}

// Notices exposes the banner board so renderers can schedule expiry.
func (s *AdminService) Notices() *NoticeBoard {
	return s.notices
}

// List fetches every record and refreshes the cache.
func (s *AdminService) List(ctx context.Context) ([]domain.JobCodeRecord, error) {
	if s.api == nil {
		return nil, ErrNoAdminAPI
	}

	records, err := s.api.ListJobCodes(ctx)
	if err != nil {
		s.notices.Post(domain.NoticeError, domain.UserMessage(err))
		return nil, fmt.Errorf("list job codes: %w", err)
	}
	if records == nil {
		records = []domain.JobCodeRecord{}
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	logger.Debug("Loaded %d job codes", len(records))
	return s.Records(), nil
}

// Records returns a copy of the cached list.
func (s *AdminService) Records() []domain.JobCodeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.JobCodeRecord(nil), s.records...)
}

// Create validates input before any network call, then creates the record.
func (s *AdminService) Create(ctx context.Context, input domain.JobCodeInput) (*domain.JobCodeRecord, error) {
	input = input.Normalize()
	if err := s.checkInput("admin.create", input); err != nil {
		return nil, err
	}
	if s.api == nil {
		return nil, ErrNoAdminAPI
	}

	logger.Debug("Creating job code %s", input.NCOCode)
	record, err := s.api.CreateJobCode(ctx, input)
	if err != nil {
		s.notices.Post(domain.NoticeError, domain.UserMessage(err))
		return nil, fmt.Errorf("create job code: %w", err)
	}

	s.notices.Post(domain.NoticeSuccess, msgJobAdded)
	s.refresh(ctx)
	return record, nil
}

// Update validates input before any network call, then updates the record.
func (s *AdminService) Update(
	ctx context.Context, id int64, input domain.JobCodeInput,
) (*domain.JobCodeRecord, error) {
	input = input.Normalize()
	if err := s.checkInput("admin.update", input); err != nil {
		return nil, err
	}
	if s.api == nil {
		return nil, ErrNoAdminAPI
	}

	logger.Debug("Updating job code %d", id)
	record, err := s.api.UpdateJobCode(ctx, id, input)
	if err != nil {
		s.notices.Post(domain.NoticeError, domain.UserMessage(err))
		return nil, fmt.Errorf("update job code: %w", err)
	}

	s.notices.Post(domain.NoticeSuccess, msgJobUpdated)
	s.refresh(ctx)
	return record, nil
}

// Delete removes a record after the confirmer agrees. A nil confirmer
// refuses the deletion.
func (s *AdminService) Delete(ctx context.Context, id int64, confirmer driven.Confirmer) error {
	if confirmer == nil {
		return fmt.Errorf("delete job code: %w", domain.ErrCancelled)
	}

	ok, err := confirmer.Confirm(ctx, MsgConfirmDelete)
	if err != nil {
		return fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		logger.Debug("Delete of job code %d declined", id)
		return fmt.Errorf("delete job code: %w", domain.ErrCancelled)
	}
	if s.api == nil {
		return ErrNoAdminAPI
	}

	if err := s.api.DeleteJobCode(ctx, id); err != nil {
		s.notices.Post(domain.NoticeError, domain.UserMessage(err))
		return fmt.Errorf("delete job code: %w", err)
	}

	s.notices.Post(domain.NoticeSuccess, msgJobDeleted)
	s.refresh(ctx)
	return nil
}

// Notice returns the current banner.
func (s *AdminService) Notice() domain.Notice {
	return s.notices.Current()
}

// ClearNotice clears the banner with the given sequence number.
func (s *AdminService) ClearNotice(seq uint64) bool {
	return s.notices.Clear(seq)
}

// checkInput runs the struct validation rules.
func (s *AdminService) checkInput(op string, input domain.JobCodeInput) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return domain.ValidationError(op, msgFillBothFields)
			}
		}
		return domain.ValidationError(op, msgFieldTooLong)
	}
	return domain.ValidationError(op, msgFillBothFields)
}

// refresh re-reads the list after a mutation. A failed re-read keeps the
// previous cache; the mutation itself already succeeded.
func (s *AdminService) refresh(ctx context.Context) {
	records, err := s.api.ListJobCodes(ctx)
	if err != nil {
		logger.Warn("Refreshing job codes failed: %v", err)
		return
	}
	if records == nil {
		records = []domain.JobCodeRecord{}
	}
	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
}
