package command

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("recogniser tests use /bin/sh")
	}
}

func shellRecognizer(script string) *Recognizer {
	return New(domain.VoiceSettings{Command: "sh", Args: []string{"-c", script}, Language: "en-IN"})
}

func TestNew_UnconfiguredReturnsNil(t *testing.T) {
	r := New(domain.VoiceSettings{Command: "  "})

	assert.Nil(t, r)
	assert.False(t, r.Available())
}

func TestRecognizer_Available(t *testing.T) {
	r := New(domain.VoiceSettings{Command: "whisper-stream"})
	r.lookPath = func(string) (string, error) { return "", errors.New("not found") }
	assert.False(t, r.Available())

	r.lookPath = func(string) (string, error) { return "/usr/bin/whisper-stream", nil }
	assert.True(t, r.Available())
}

func TestRecognizer_Recognize_LastLine(t *testing.T) {
	requireShell(t)
	r := shellRecognizer(`echo "listening..."; echo ""; echo "  data analyst  "; echo ""`)

	text, err := r.Recognize(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "data analyst", text)
}

func TestRecognizer_Recognize_PassesLanguage(t *testing.T) {
	requireShell(t)
	r := shellRecognizer(`echo "$` + LanguageEnv + `"`)

	text, err := r.Recognize(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "en-IN", text)
}

func TestRecognizer_Recognize_NoSpeech(t *testing.T) {
	requireShell(t)
	r := shellRecognizer(`true`)

	_, err := r.Recognize(context.Background())

	assert.ErrorIs(t, err, ErrNoSpeech)
}

func TestRecognizer_Recognize_Failure(t *testing.T) {
	requireShell(t)
	r := shellRecognizer(`echo "no capture device" >&2; exit 3`)

	_, err := r.Recognize(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "run recogniser")
}

func TestRecognizer_Recognize_Cancelled(t *testing.T) {
	requireShell(t)
	r := shellRecognizer(`sleep 5`)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := r.Recognize(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestRecognizer_CheckPermission(t *testing.T) {
	requireShell(t)

	tests := []struct {
		name    string
		probe   string
		wantErr bool
	}{
		{"no probe", "", false},
		{"granted", "true", false},
		{"denied", "false", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(domain.VoiceSettings{Command: "sh", ProbeCommand: tt.probe})

			err := r.CheckPermission(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLastLine(t *testing.T) {
	assert.Equal(t, "b", lastLine("a\nb\n\n"))
	assert.Equal(t, "", lastLine("\n \n"))
	assert.Equal(t, "only", lastLine("only"))
}
