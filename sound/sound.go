package sound

import "context"

// Player defines the interface for audio playback
type Player interface {
	// Initialize initializes the audio playback system
	Initialize() error

	// Terminate terminates the audio playback system
	Terminate()

	// Open opens the output stream with configured parameters
	Open() error

	// Close closes the output stream
	Close() error

	// PlayPCM plays a buffer of signed 16-bit little-endian PCM bytes.
	// The method blocks until the buffer is drained or the context is
	// cancelled.
	PlayPCM(ctx context.Context, pcm []byte) error
}

// PlayerConfig holds the output stream parameters.
type PlayerConfig struct {
	SampleRate      float64
	FramesPerBuffer int
	OutputChannels  int
}
