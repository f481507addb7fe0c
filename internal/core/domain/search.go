package domain

import "strings"

// Query is a search text that is non-empty after trimming.
// The raw text is kept as typed and sent unchanged. It is immutable once created.
type Query struct {
	text string
}

// ParseQuery validates free text and returns a Query.
// Whitespace-only input is rejected with a validation error.
func ParseQuery(text string) (Query, error) {
	if strings.TrimSpace(text) == "" {
		return Query{}, ValidationError("query", "Please enter a search query.")
	}
	return Query{text: text}, nil
}

// String returns the raw query text.
func (q Query) String() string {
	return q.text
}

// IsZero reports whether the query was never parsed.
func (q Query) IsZero() bool {
	return q.text == ""
}

// SearchResult is one ranked candidate returned by the search service.
// The client never constructs or mutates one outside the API adapter.
type SearchResult struct {
	// Title is the occupation title.
	Title string `json:"title"`

	// NCOCode is the NCO-2015 classification code, e.g. "2431.0201".
	NCOCode string `json:"nco_code"`

	// Score is the similarity reported by the service. It may be 0..1 or an
	// unbounded distance depending on the index.
	Score float64 `json:"score"`

	// Description is optional and rendered only when non-empty.
	Description string `json:"description,omitempty"`
}

// HasDescription reports whether the result carries a non-blank description.
func (r *SearchResult) HasDescription() bool {
	return strings.TrimSpace(r.Description) != ""
}

// SearchStatus is the phase of the search interaction.
type SearchStatus int

const (
	// SearchIdle means no request is outstanding and nothing failed.
	SearchIdle SearchStatus = iota
	// SearchSearching means a request is in flight.
	SearchSearching
	// SearchSucceeded means the latest request returned results.
	SearchSucceeded
	// SearchFailed means the latest request failed.
	SearchFailed
)

// String returns the status name.
func (s SearchStatus) String() string {
	switch s {
	case SearchIdle:
		return "idle"
	case SearchSearching:
		return "searching"
	case SearchSucceeded:
		return "succeeded"
	case SearchFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SearchState is the single value shared between the submitter and its renderers.
type SearchState struct {
	Status SearchStatus

	// Query is the text of the most recent submission.
	Query string

	// Results is set only when Status is SearchSucceeded.
	Results []SearchResult

	// Message is the user-facing failure text when Status is SearchFailed.
	Message string

	// Generation identifies the most recent submission.
	Generation uint64

	// Submitted is true once any query has been submitted.
	Submitted bool
}

// Busy reports whether a search is in flight.
func (s SearchState) Busy() bool {
	return s.Status == SearchSearching
}

// SearchTicket identifies one submission. Only the outcome of the ticket
// with the current generation is applied to the state.
type SearchTicket struct {
	Generation uint64
	Query      Query
}

// SearchOutcome is the response to a ticket.
type SearchOutcome struct {
	Ticket  SearchTicket
	Results []SearchResult
	Err     error
}
