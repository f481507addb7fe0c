package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
)

// searchRequest is the POST /api/v1/search/ body.
type searchRequest struct {
	Query string `json:"query"`
}

// Search sends the raw query text and returns the ranked results.
// The service answers with either a bare array or {"results": [...]}.
func (c *Client) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	const op = "search"

	var (
		data []byte
		err  error
	)
	switch c.method {
	case domain.SearchMethodGet:
		data, err = c.do(ctx, op, http.MethodGet, searchGetPath+"?query="+url.QueryEscape(query), nil)
	default:
		data, err = c.do(ctx, op, http.MethodPost, searchPath, searchRequest{Query: query})
	}
	if err != nil {
		return nil, err
	}

	return decodeResults(op, data)
}

// decodeResults accepts both response shapes. A null body is an empty list.
func decodeResults(op string, data []byte) ([]domain.SearchResult, error) {
	trimmed := bytes.TrimSpace(data)
	results := []domain.SearchResult{}

	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		return results, nil
	case trimmed[0] == '[':
		if err := decode(op, trimmed, &results); err != nil {
			return nil, err
		}
	case trimmed[0] == '{':
		var wrapped struct {
			Results *[]domain.SearchResult `json:"results"`
		}
		if err := decode(op, trimmed, &wrapped); err != nil {
			return nil, err
		}
		if wrapped.Results == nil {
			return nil, domain.NewError(domain.KindParse, op, "", errMissingResults)
		}
		results = *wrapped.Results
	default:
		var v any
		err := json.Unmarshal(trimmed, &v)
		return nil, domain.NewError(domain.KindParse, op, "", unexpectedShape(v, err))
	}

	if results == nil {
		results = []domain.SearchResult{}
	}
	return results, nil
}
