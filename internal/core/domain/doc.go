// Package domain defines the core business entities for ncosearch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Query: validated search text
//   - SearchResult: one ranked NCO-2015 candidate
//   - SearchState: the phase of the search interaction
//   - JobCodeRecord: an occupation entry managed by administrators
//   - SearchLogEntry: one query recorded by the search service
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
