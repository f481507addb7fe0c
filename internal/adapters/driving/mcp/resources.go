package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for ncosearch resources.
	uriScheme = "ncosearch://"
)

// registerResources registers all resource handlers with the MCP server.
// Both resources read the admin record list and are skipped without it.
func (s *Server) registerResources() {
	if s.ports.Admin == nil {
		return
	}

	// Static resource for the full record list.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "job-codes",
		Name:        "job-codes",
		Description: "All job-code records held by the NCO search service",
		MIMEType:    "application/json",
	}, s.handleJobCodesResource)

	// Template for one record by NCO code.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "job-codes/{ncoCode}",
		Name:        "job-code",
		Description: "A single job-code record looked up by its NCO-2015 code",
		MIMEType:    "application/json",
	}, s.handleJobCodeResource)
}

// handleJobCodesResource returns every job-code record.
func (s *Server) handleJobCodesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	records, err := s.ports.Admin.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing job codes: %s", domain.UserMessage(err))
	}
	if records == nil {
		records = []domain.JobCodeRecord{}
	}

	return jsonResource(req.Params.URI, records)
}

// handleJobCodeResource returns the record whose NCO code matches the URI.
func (s *Server) handleJobCodeResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	code := extractNCOCode(req.Params.URI)
	if code == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	records, err := s.ports.Admin.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing job codes: %s", domain.UserMessage(err))
	}

	for i := range records {
		if records[i].NCOCode == code {
			return jsonResource(req.Params.URI, records[i])
		}
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractNCOCode extracts the code from a URI like ncosearch://job-codes/{ncoCode}.
func extractNCOCode(uri string) string {
	const prefix = uriScheme + "job-codes/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	code, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil || strings.Contains(code, "/") {
		return ""
	}
	return strings.TrimSpace(code)
}
