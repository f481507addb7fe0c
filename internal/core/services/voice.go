package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
	"github.com/custodia-labs/ncosearch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ncosearch-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ncosearch-cli/internal/logger"
)

// Ensure VoiceInput implements the interface.
var _ driving.VoiceInput = (*VoiceInput)(nil)

// VoiceInput runs at most one recognition session at a time.
// The recogniser is optional; without one every call reports
// ErrVoiceUnavailable and typed input is unaffected.
type VoiceInput struct {
	recognizer driven.Recognizer

	mu     sync.Mutex
	state  domain.VoiceState
	cancel context.CancelFunc
	// session counts started sessions so a late Listen cannot reset a newer one.
	session uint64
}

// NewVoiceInput creates a voice input over an optional recogniser.
func NewVoiceInput(recognizer driven.Recognizer) *VoiceInput {
	return &VoiceInput{recognizer: recognizer}
}

// Available reports whether a recogniser is present and usable.
func (v *VoiceInput) Available() bool {
	return v.recognizer != nil && v.recognizer.Available()
}

// State returns the current voice state.
func (v *VoiceInput) State() domain.VoiceState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Toggle stops an active session, or starts a new one after checking
// microphone permission. Permission is checked on every start.
func (v *VoiceInput) Toggle(ctx context.Context) (bool, error) {
	if !v.Available() {
		return false, domain.ErrVoiceUnavailable
	}

	v.mu.Lock()
	if v.state == domain.VoiceListening {
		v.stopLocked()
		v.mu.Unlock()
		logger.Debug("Voice session stopped by toggle")
		return false, nil
	}
	v.mu.Unlock()

	if err := v.recognizer.CheckPermission(ctx); err != nil {
		logger.Warn("Microphone permission check failed: %v", err)
		return false, domain.NewError(domain.KindPermission, "voice",
			"Please allow microphone access in your system settings.", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = domain.VoiceListening
	v.session++
	logger.Debug("Voice session %d listening", v.session)
	return true, nil
}

// Listen runs the active session. It returns to Idle on a transcript, an
// error or Stop.
func (v *VoiceInput) Listen(ctx context.Context) (string, error) {
	if !v.Available() {
		return "", domain.ErrVoiceUnavailable
	}

	v.mu.Lock()
	if v.state != domain.VoiceListening {
		v.mu.Unlock()
		return "", domain.ErrCancelled
	}
	ctx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	session := v.session
	v.mu.Unlock()

	transcript, err := v.recognizer.Recognize(ctx)
	stopped := ctx.Err() != nil
	cancel()

	v.mu.Lock()
	if v.session == session {
		v.state = domain.VoiceIdle
		v.cancel = nil
	}
	v.mu.Unlock()

	if err != nil {
		if stopped {
			return "", domain.ErrCancelled
		}
		return "", err
	}
	logger.Debug("Voice transcript: %q", transcript)
	return transcript, nil
}

// Stop ends the active session, if any.
func (v *VoiceInput) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stopLocked()
}

func (v *VoiceInput) stopLocked() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.state = domain.VoiceIdle
}
