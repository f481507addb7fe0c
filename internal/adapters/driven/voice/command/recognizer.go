// Package command provides a speech recogniser that runs an external
// speech-to-text program, such as a whisper.cpp stream binary, and reads the
// transcript from its standard output.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
	"github.com/custodia-labs/ncosearch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ncosearch-cli/internal/logger"
)

// Ensure Recognizer implements the interface.
var _ driven.Recognizer = (*Recognizer)(nil)

// LanguageEnv is set for the recogniser process to the configured language tag.
const LanguageEnv = "NCO_VOICE_LANGUAGE"

// ErrNoSpeech is returned when the recogniser exits without a transcript.
var ErrNoSpeech = errors.New("no speech recognised")

// Recognizer runs one process per recognition attempt. The microphone is
// held only for the lifetime of that process.
type Recognizer struct {
	settings domain.VoiceSettings
	lookPath func(string) (string, error)
}

// New creates a recogniser from voice settings. It returns nil when no
// command is configured so callers can pass the result straight to
// services.NewVoiceInput.
func New(settings domain.VoiceSettings) *Recognizer {
	if !settings.IsConfigured() {
		return nil
	}
	return &Recognizer{settings: settings, lookPath: exec.LookPath}
}

// Available reports whether the configured command can be found.
func (r *Recognizer) Available() bool {
	if r == nil {
		return false
	}
	if _, err := r.lookPath(r.settings.Command); err != nil {
		logger.Debug("Voice command %q not found: %v", r.settings.Command, err)
		return false
	}
	return true
}

// CheckPermission runs the probe command, if configured. A non-zero exit
// means microphone access was denied. It runs on every attempt.
func (r *Recognizer) CheckPermission(ctx context.Context) error {
	fields := strings.Fields(r.settings.ProbeCommand)
	if len(fields) == 0 {
		return nil
	}

	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		logger.Debug("Microphone probe output: %s", strings.TrimSpace(string(out)))
		return fmt.Errorf("microphone probe %q: %w", fields[0], err)
	}
	return nil
}

// Recognize runs the recogniser until it exits or ctx is cancelled, and
// returns the last non-empty line it printed.
func (r *Recognizer) Recognize(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, r.settings.Command, r.settings.Args...)
	cmd.Env = append(os.Environ(), LanguageEnv+"="+r.settings.Language)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("Starting recogniser %s %v", r.settings.Command, r.settings.Args)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			logger.Warn("Recogniser stderr: %s", msg)
		}
		return "", fmt.Errorf("run recogniser: %w", err)
	}

	transcript := lastLine(stdout.String())
	if transcript == "" {
		return "", ErrNoSpeech
	}
	return transcript, nil
}

func lastLine(out string) string {
	lines := strings.Split(out, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
