package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent failures a user can act on.
// Every operation converts infrastructure failures into one of these before
// the result reaches a renderer.
var (
	// ErrValidation indicates empty or malformed input caught before any network call.
	ErrValidation = errors.New("validation failed")

	// ErrNetwork indicates the request could not be sent or no response was received.
	ErrNetwork = errors.New("network error")

	// ErrServer indicates the service answered with a non-2xx status.
	ErrServer = errors.New("server error")

	// ErrParse indicates a malformed response body.
	ErrParse = errors.New("malformed response")

	// ErrPermission indicates microphone access was denied.
	ErrPermission = errors.New("permission denied")

	// ErrCancelled indicates the user declined a confirmation.
	ErrCancelled = errors.New("cancelled")

	// ErrVoiceUnavailable indicates no speech recogniser is available on this platform.
	ErrVoiceUnavailable = errors.New("voice input unavailable")

	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("not found")
)

// ErrorKind classifies an Error.
type ErrorKind int

const (
	// KindUnknown is the zero kind.
	KindUnknown ErrorKind = iota
	// KindValidation maps to ErrValidation.
	KindValidation
	// KindNetwork maps to ErrNetwork.
	KindNetwork
	// KindServer maps to ErrServer.
	KindServer
	// KindParse maps to ErrParse.
	KindParse
	// KindPermission maps to ErrPermission.
	KindPermission
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	case KindParse:
		return "parse"
	case KindPermission:
		return "permission"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindNetwork:
		return ErrNetwork
	case KindServer:
		return ErrServer
	case KindParse:
		return ErrParse
	case KindPermission:
		return ErrPermission
	default:
		return nil
	}
}

// Error is a classified failure carrying a user-facing message.
// Message is safe to show; Err holds the underlying cause for logs only.
type Error struct {
	Kind    ErrorKind
	Op      string
	Message string
	// Status is the HTTP status for KindServer errors.
	Status int
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String() + " error"
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// NewError creates a classified error.
func NewError(kind ErrorKind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

// ValidationError creates a KindValidation error.
func ValidationError(op, message string) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: message}
}

// ServerError creates a KindServer error for the given status.
// detail is the service-supplied explanation, if any.
func ServerError(op string, status int, detail string) *Error {
	msg := detail
	if msg == "" {
		msg = fmt.Sprintf("service returned status %d", status)
	}
	return &Error{Kind: KindServer, Op: op, Message: msg, Status: status}
}

// Fallback user messages per kind.
const (
	msgNetwork    = "Could not reach the search service. Check your connection and try again."
	msgServer     = "The service could not complete the request. Please try again."
	msgParse      = "The service returned an unexpected response."
	msgPermission = "Please allow microphone access in your system settings."
	msgUnknown    = "Something went wrong. Please try again."
)

// UserMessage converts any error into text suitable for display.
// Underlying causes (transport errors, decoder positions) are never included.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var de *Error
	if errors.As(err, &de) {
		switch de.Kind {
		case KindValidation:
			if de.Message != "" {
				return de.Message
			}
			return "Please check your input."
		case KindServer:
			// 4xx details come from the service and are meant for users.
			if de.Status >= 400 && de.Status < 500 && de.Message != "" {
				return de.Message
			}
			return msgServer
		case KindNetwork:
			return msgNetwork
		case KindParse:
			return msgParse
		case KindPermission:
			return msgPermission
		case KindUnknown:
		}
	}

	switch {
	case errors.Is(err, ErrCancelled):
		return "Cancelled."
	case errors.Is(err, ErrVoiceUnavailable):
		return "Voice input is not available on this system."
	case errors.Is(err, ErrNotFound):
		return "Record not found."
	case errors.Is(err, ErrNetwork):
		return msgNetwork
	case errors.Is(err, ErrPermission):
		return msgPermission
	}
	return msgUnknown
}
