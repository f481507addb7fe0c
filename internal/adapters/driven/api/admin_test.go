package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
)

func TestClient_ListJobCodes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/admin/", r.URL.Path)
		_, _ = io.WriteString(w, `[{"id":1,"nco_code":"2431.0201","title":"Data Analyst","description":null}]`)
	})

	records, err := c.ListJobCodes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.JobCodeRecord{{ID: 1, NCOCode: "2431.0201", Title: "Data Analyst"}}, records)
}

func TestClient_ListJobCodes_Null(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `null`)
	})

	records, err := c.ListJobCodes(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestClient_CreateJobCode_SendsDescription(t *testing.T) {
	var raw map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/admin/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = io.WriteString(w, `{"id":9,"nco_code":"5120.0100","title":"Cook","description":""}`)
	})

	rec, err := c.CreateJobCode(context.Background(), domain.JobCodeInput{NCOCode: "5120.0100", Title: "Cook"})

	require.NoError(t, err)
	assert.Equal(t, int64(9), rec.ID)
	assert.Equal(t, map[string]any{"nco_code": "5120.0100", "title": "Cook", "description": ""}, raw)
}

func TestClient_CreateJobCode_DetailSurfaced(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"detail":"Job creation failed, possibly due to duplicate or invalid data."}`)
	})

	_, err := c.CreateJobCode(context.Background(), domain.JobCodeInput{NCOCode: "1", Title: "x"})

	require.Error(t, err)
	assert.Equal(t, "Job creation failed, possibly due to duplicate or invalid data.", domain.UserMessage(err))
}

func TestClient_UpdateJobCode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/admin/42", r.URL.Path)
		_, _ = io.WriteString(w, `{"id":42,"nco_code":"7531.0100","title":"Master Tailor"}`)
	})

	rec, err := c.UpdateJobCode(context.Background(), 42, domain.JobCodeInput{NCOCode: "7531.0100", Title: "Master Tailor"})

	require.NoError(t, err)
	assert.Equal(t, "Master Tailor", rec.Title)
}

func TestClient_UpdateJobCode_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"Job not found or update failed."}`)
	})

	_, err := c.UpdateJobCode(context.Background(), 7, domain.JobCodeInput{NCOCode: "1", Title: "x"})

	var de *domain.Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, http.StatusNotFound, de.Status)
	assert.Equal(t, "Job not found or update failed.", domain.UserMessage(err))
}

func TestClient_DeleteJobCode(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/admin/3", r.URL.Path)
		_, _ = io.WriteString(w, `{"message":"Job deleted successfully"}`)
	})

	require.NoError(t, c.DeleteJobCode(context.Background(), 3))
	assert.True(t, called)
}

func TestClient_ListSearchLogs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/admin/search-logs", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("skip"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		_, _ = io.WriteString(w, `[{"id":5,"query":"welder","timestamp":"2025-01-15T09:30:00.123456"}]`)
	})

	entries, err := c.ListSearchLogs(context.Background(), domain.LogPage{Skip: 10, Limit: 500})

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "welder", entries[0].Query)
	assert.Equal(t, time.Date(2025, 1, 15, 9, 30, 0, 123456000, time.UTC), entries[0].Timestamp.Time)
}

func TestClient_ListSearchLogs_DefaultPageOmitsParams(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		_, _ = io.WriteString(w, `[]`)
	})

	entries, err := c.ListSearchLogs(context.Background(), domain.LogPage{})

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClient_ListSearchLogs_BadTimestamp(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"id":5,"query":"welder","timestamp":"yesterday"}]`)
	})

	_, err := c.ListSearchLogs(context.Background(), domain.LogPage{})

	assert.True(t, errors.Is(err, domain.ErrParse))
}
