package tts

import (
	"context"
	"errors"
)

// Synthesizer defines the interface for text-to-speech synthesis.
// Implementations return raw signed 16-bit little-endian mono PCM.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
	Close() error
}

// SpeakerVoice binds a speaker label appearing in the prompt text to a
// prebuilt voice name on the synthesis backend.
type SpeakerVoice struct {
	Speaker string
	Voice   string
}

var (
	// ErrMissingCredential indicates that no API key was configured.
	ErrMissingCredential = errors.New("missing API credential")

	// ErrRequestFailed indicates a non-200 response from the synthesis endpoint.
	ErrRequestFailed = errors.New("synthesis request failed")

	// ErrDecode indicates that the audio payload could not be decoded.
	ErrDecode = errors.New("failed to decode audio payload")
)
