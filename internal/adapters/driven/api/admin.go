package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
)

// jobPayload is the create/update body. The service requires description
// to be present even when empty.
type jobPayload struct {
	NCOCode     string `json:"nco_code"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func toPayload(in domain.JobCodeInput) jobPayload {
	return jobPayload{NCOCode: in.NCOCode, Title: in.Title, Description: in.Description}
}

// ListJobCodes returns every job-code record.
func (c *Client) ListJobCodes(ctx context.Context) ([]domain.JobCodeRecord, error) {
	const op = "admin.list"

	data, err := c.do(ctx, op, http.MethodGet, adminPath, nil)
	if err != nil {
		return nil, err
	}

	records := []domain.JobCodeRecord{}
	if err := decode(op, data, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.JobCodeRecord{}
	}
	return records, nil
}

// CreateJobCode creates a record.
func (c *Client) CreateJobCode(ctx context.Context, input domain.JobCodeInput) (*domain.JobCodeRecord, error) {
	const op = "admin.create"

	data, err := c.do(ctx, op, http.MethodPost, adminPath, toPayload(input))
	if err != nil {
		return nil, err
	}

	var rec domain.JobCodeRecord
	if err := decode(op, data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateJobCode replaces an existing record.
func (c *Client) UpdateJobCode(
	ctx context.Context, id int64, input domain.JobCodeInput,
) (*domain.JobCodeRecord, error) {
	const op = "admin.update"

	data, err := c.do(ctx, op, http.MethodPut, recordPath(id), toPayload(input))
	if err != nil {
		return nil, err
	}

	var rec domain.JobCodeRecord
	if err := decode(op, data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// DeleteJobCode removes a record. The response body is ignored.
func (c *Client) DeleteJobCode(ctx context.Context, id int64) error {
	_, err := c.do(ctx, "admin.delete", http.MethodDelete, recordPath(id), nil)
	return err
}

// ListSearchLogs returns one page of the search log. Zero skip and limit
// are omitted so the service defaults apply.
func (c *Client) ListSearchLogs(ctx context.Context, page domain.LogPage) ([]domain.SearchLogEntry, error) {
	const op = "logs.list"

	page = page.Clamp()
	path := searchLogsPath
	params := url.Values{}
	if page.Skip > 0 {
		params.Set("skip", strconv.Itoa(page.Skip))
	}
	if page.Limit > 0 {
		params.Set("limit", strconv.Itoa(page.Limit))
	}
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	data, err := c.do(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	entries := []domain.SearchLogEntry{}
	if err := decode(op, data, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.SearchLogEntry{}
	}
	return entries, nil
}

func recordPath(id int64) string {
	return adminPath + strconv.FormatInt(id, 10)
}
