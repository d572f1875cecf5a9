package sound

import (
	"context"
	"errors"

	"github.com/gordonklaus/portaudio"

	"github.com/Wang-Yong2018/gemini-tts/wav"
)

type PortaudioPlayer struct {
	stream      *portaudio.Stream
	audioBuffer []int16
	config      PlayerConfig
}

// Ensure PortaudioPlayer implements Player interface
var _ Player = (*PortaudioPlayer)(nil)

func NewPortaudioPlayer(config PlayerConfig) *PortaudioPlayer {
	return &PortaudioPlayer{
		config:      config,
		audioBuffer: make([]int16, config.FramesPerBuffer),
	}
}

func GetDefaultConfig() PlayerConfig {
	return PlayerConfig{
		SampleRate:      24000,
		FramesPerBuffer: 1024,
		OutputChannels:  1,
	}
}

func (p *PortaudioPlayer) Initialize() error {
	return portaudio.Initialize()
}

func (p *PortaudioPlayer) Terminate() {
	portaudio.Terminate()
}

func (p *PortaudioPlayer) Open() error {
	stream, err := portaudio.OpenDefaultStream(
		0,
		p.config.OutputChannels,
		p.config.SampleRate,
		p.config.FramesPerBuffer,
		p.audioBuffer,
	)
	if err != nil {
		return err
	}
	p.stream = stream
	return nil
}

// PlayPCM writes the buffer to the output stream one frame buffer at a
// time. The final chunk is zero-padded so the stream always receives a
// full buffer.
func (p *PortaudioPlayer) PlayPCM(ctx context.Context, pcm []byte) error {
	if p.stream == nil {
		return errors.New("stream not opened")
	}

	if err := p.stream.Start(); err != nil {
		return err
	}
	defer p.stream.Stop()

	samples := wav.Samples(pcm)
	for len(samples) > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n := copy(p.audioBuffer, samples)
		for i := n; i < len(p.audioBuffer); i++ {
			p.audioBuffer[i] = 0
		}
		samples = samples[n:]

		if err := p.stream.Write(); err != nil {
			return err
		}
	}

	return nil
}

func (p *PortaudioPlayer) Close() error {
	if p.stream != nil {
		return p.stream.Close()
	}
	return nil
}
