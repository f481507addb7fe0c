package driven

import (
	"context"

	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
)

// SearchAPI calls the external NCO search service.
type SearchAPI interface {
	// Search sends the raw query text and returns the ranked candidates.
	// Errors are classified domain errors (network, server, parse).
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)
}
