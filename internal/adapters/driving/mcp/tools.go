package mcp

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
	"github.com/custodia-labs/ncosearch-cli/internal/core/services"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"free-text job description, e.g. 'repairs sewing machines'"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Query   string               `json:"query"`
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single ranked job code.
type SearchResultOutput struct {
	Title       string  `json:"title"`
	NCOCode     string  `json:"nco_code"`
	Score       float64 `json:"score"`
	Description string  `json:"description,omitempty"`
}

// ListJobCodesInput is the (empty) input schema for the job-code listing tool.
type ListJobCodesInput struct{}

// JobCodesOutput is the output schema for the job-code listing tool.
type JobCodesOutput struct {
	Records []domain.JobCodeRecord `json:"records"`
	Count   int                    `json:"count"`
}

// ListSearchLogsInput is the input schema for the search log tool.
type ListSearchLogsInput struct {
	Skip  int `json:"skip,omitempty" jsonschema:"number of entries to skip"`
	Limit int `json:"limit,omitempty" jsonschema:"maximum entries to return, at most 100 (default: service default)"`
}

// SearchLogsOutput is the output schema for the search log tool.
type SearchLogsOutput struct {
	Entries []SearchLogOutput `json:"entries"`
	Count   int               `json:"count"`
}

// SearchLogOutput is one logged query. Timestamp is RFC 3339 in UTC, or
// empty when the service sent none.
type SearchLogOutput struct {
	ID        int64  `json:"id"`
	Query     string `json:"query"`
	Timestamp string `json:"timestamp,omitempty"`
	Category  string `json:"category,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
// Admin and search log tools are only offered when their ports are set.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_job_codes",
		Description: "Find NCO-2015 occupation codes matching a free-text job description",
	}, s.handleSearch)

	if s.ports.Admin != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_job_codes",
			Description: "List the job-code records held by the NCO search service",
		}, s.handleListJobCodes)
	}

	if s.ports.SearchLog != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_search_logs",
			Description: "List recent queries recorded by the NCO search service",
		}, s.handleListSearchLogs)
	}
}

// handleSearch handles the search_job_codes tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, SearchOutput{}, errEmptyQuery
	}

	s.searchMu.Lock()
	state, err := s.ports.Search.Submit(ctx, input.Query)
	s.searchMu.Unlock()
	if err != nil {
		return nil, SearchOutput{}, errors.New(domain.UserMessage(err))
	}

	output := SearchOutput{
		Query:   state.Query,
		Results: make([]SearchResultOutput, len(state.Results)),
		Count:   len(state.Results),
	}

	for i := range state.Results {
		r := &state.Results[i]
		output.Results[i] = SearchResultOutput{
			Title:       r.Title,
			NCOCode:     r.NCOCode,
			Score:       r.Score,
			Description: r.Description,
		}
	}

	return nil, output, nil
}

// handleListJobCodes handles the list_job_codes tool invocation.
func (s *Server) handleListJobCodes(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListJobCodesInput,
) (*mcp.CallToolResult, JobCodesOutput, error) {
	records, err := s.ports.Admin.List(ctx)
	if err != nil {
		return nil, JobCodesOutput{}, errors.New(domain.UserMessage(err))
	}
	if records == nil {
		records = []domain.JobCodeRecord{}
	}
	return nil, JobCodesOutput{Records: records, Count: len(records)}, nil
}

// handleListSearchLogs handles the list_search_logs tool invocation.
func (s *Server) handleListSearchLogs(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListSearchLogsInput,
) (*mcp.CallToolResult, SearchLogsOutput, error) {
	entries, err := s.ports.SearchLog.List(ctx, domain.LogPage{Skip: input.Skip, Limit: input.Limit})
	if err != nil {
		return nil, SearchLogsOutput{}, errors.New(services.MsgSearchLogsFailed)
	}

	output := SearchLogsOutput{
		Entries: make([]SearchLogOutput, len(entries)),
		Count:   len(entries),
	}
	for i := range entries {
		e := &entries[i]
		output.Entries[i] = SearchLogOutput{ID: e.ID, Query: e.Query, Category: e.Category}
		if !e.Timestamp.IsZero() {
			output.Entries[i].Timestamp = e.Timestamp.UTC().Format(time.RFC3339Nano)
		}
	}
	return nil, output, nil
}
