package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrValidation", ErrValidation},
		{"ErrNetwork", ErrNetwork},
		{"ErrServer", ErrServer},
		{"ErrParse", ErrParse},
		{"ErrPermission", ErrPermission},
		{"ErrCancelled", ErrCancelled},
		{"ErrVoiceUnavailable", ErrVoiceUnavailable},
		{"ErrNotFound", ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestError_IsMatchesKindSentinel(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		sentinel error
	}{
		{KindValidation, ErrValidation},
		{KindNetwork, ErrNetwork},
		{KindServer, ErrServer},
		{KindParse, ErrParse},
		{KindPermission, ErrPermission},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := NewError(tt.kind, "op", "msg", nil)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.NotErrorIs(t, err, ErrCancelled)
		})
	}
}

func TestError_IsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("search: %w", NewError(KindNetwork, "search", "", errors.New("dial tcp: refused")))

	assert.ErrorIs(t, err, ErrNetwork)
	var de *Error
	assert.ErrorAs(t, err, &de)
	assert.Equal(t, KindNetwork, de.Kind)
}

func TestError_UnknownKindMatchesNothing(t *testing.T) {
	err := NewError(KindUnknown, "", "", nil)

	assert.NotErrorIs(t, err, ErrValidation)
	assert.Equal(t, "unknown error", err.Error())
}

func TestError_ErrorString(t *testing.T) {
	cause := errors.New("boom")
	err := NewError(KindParse, "search", "bad body", cause)

	assert.Equal(t, "search: bad body: boom", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestServerError_DefaultMessage(t *testing.T) {
	err := ServerError("admin.list", 503, "")

	assert.Equal(t, 503, err.Status)
	assert.Contains(t, err.Message, "503")
	assert.ErrorIs(t, err, ErrServer)
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validation", ValidationError("admin.create", "Please fill in both fields."), "Please fill in both fields."},
		{"validation without message", NewError(KindValidation, "", "", nil), "Please check your input."},
		{"client error detail", ServerError("admin.create", 400, "duplicate code"), "duplicate code"},
		{"server error hides detail", ServerError("search", 500, "Traceback (most recent call last)"), msgServer},
		{"network", NewError(KindNetwork, "search", "", errors.New("dial tcp 127.0.0.1:8000")), msgNetwork},
		{"parse", NewError(KindParse, "search", "", errors.New("invalid character")), msgParse},
		{"permission", NewError(KindPermission, "voice", "", nil), msgPermission},
		{"cancelled", fmt.Errorf("delete: %w", ErrCancelled), "Cancelled."},
		{"voice unavailable", ErrVoiceUnavailable, "Voice input is not available on this system."},
		{"not found", ErrNotFound, "Record not found."},
		{"plain", errors.New("goroutine 1 [running]"), msgUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}
