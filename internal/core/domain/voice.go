package domain

// VoiceState is the phase of the voice input adapter.
type VoiceState int

const (
	// VoiceIdle means no recognition session is active.
	VoiceIdle VoiceState = iota
	// VoiceListening means a recognition session is capturing audio.
	VoiceListening
)

// String returns the state name.
func (s VoiceState) String() string {
	if s == VoiceListening {
		return "listening"
	}
	return "idle"
}
