package driven

import "context"

// Recognizer captures one spoken utterance and returns its transcript.
// Implementations are platform specific and optional.
type Recognizer interface {
	// Available reports whether speech recognition can run on this system.
	Available() bool

	// CheckPermission verifies microphone access. It is called before every
	// session and must not cache a previous answer.
	CheckPermission(ctx context.Context) error

	// Recognize listens until an utterance is transcribed, an error occurs
	// or ctx is cancelled.
	Recognize(ctx context.Context) (string, error)
}
