package driving

import (
	"context"

	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
)

// SearchSession submits queries and owns the SearchState.
// It is the only writer of that state.
type SearchSession interface {
	// Begin validates text and, when non-blank, moves the state to Searching
	// before returning. Blank text is a no-op and returns false.
	Begin(text string) (domain.SearchTicket, bool)

	// Execute performs the network call for a ticket.
	Execute(ctx context.Context, ticket domain.SearchTicket) domain.SearchOutcome

	// Resolve applies an outcome if it belongs to the latest ticket.
	// It returns false when the outcome was superseded and discarded.
	Resolve(outcome domain.SearchOutcome) bool

	// Submit runs Begin, Execute and Resolve in sequence.
	Submit(ctx context.Context, text string) (domain.SearchState, error)

	// Dismiss clears a failure alert.
	Dismiss()

	// State returns a snapshot of the current state.
	State() domain.SearchState
}

// VoiceInput turns a spoken utterance into a query.
type VoiceInput interface {
	// Available reports whether voice input can be offered at all.
	Available() bool

	// State returns the current voice state.
	State() domain.VoiceState

	// Toggle starts listening when idle, or stops the active session.
	// It returns true when a new session was started.
	Toggle(ctx context.Context) (bool, error)

	// Listen runs the active session until a transcript, an error or Stop.
	Listen(ctx context.Context) (string, error)

	// Stop ends the active session, if any.
	Stop()
}
