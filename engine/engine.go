package engine

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Wang-Yong2018/gemini-tts/sound"
	"github.com/Wang-Yong2018/gemini-tts/tts"
	"github.com/Wang-Yong2018/gemini-tts/wav"
)

// EngineConfig holds the parameters for one synthesis run.
type EngineConfig struct {
	PromptFile string
	OutputFile string
	Format     wav.Format
	Play       bool
}

// Engine runs the prompt → synthesis → WAV pipeline once, top to
// bottom. All collaborators are injected so each stage can be tested
// in isolation.
type Engine struct {
	config      EngineConfig
	synthesizer tts.Synthesizer
	player      sound.Player
}

// NewEngine creates a pipeline engine. player may be nil when playback
// is disabled.
func NewEngine(config EngineConfig, synthesizer tts.Synthesizer, player sound.Player) *Engine {
	return &Engine{
		config:      config,
		synthesizer: synthesizer,
		player:      player,
	}
}

// Run executes the pipeline. On success the output file contains a
// complete WAV file; on any error no new output file is left behind.
func (e *Engine) Run(ctx context.Context) error {
	prompt, err := e.readPrompt()
	if err != nil {
		return fmt.Errorf("failed to read prompt: %w", err)
	}

	log.Printf("Synthesizing %d characters of prompt text", len(prompt))

	pcm, err := e.synthesizer.Synthesize(ctx, prompt)
	if err != nil {
		return fmt.Errorf("failed to synthesize speech: %w", err)
	}

	log.Printf("Received %d bytes of PCM audio", len(pcm))

	if err := wav.WriteFile(e.config.OutputFile, pcm, e.config.Format); err != nil {
		return fmt.Errorf("failed to write WAV file: %w", err)
	}

	if e.config.Play && e.player != nil {
		if err := e.playback(ctx, pcm); err != nil {
			return fmt.Errorf("failed to play audio: %w", err)
		}
	}

	return nil
}

// readPrompt loads the prompt file, normalizes line endings and joins
// the lines with newlines.
func (e *Engine) readPrompt() (string, error) {
	data, err := os.ReadFile(e.config.PromptFile)
	if err != nil {
		return "", err
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimRight(text, "\n")
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("prompt file %s is empty", e.config.PromptFile)
	}
	return text, nil
}

func (e *Engine) playback(ctx context.Context, pcm []byte) error {
	if err := e.player.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize player: %w", err)
	}
	defer e.player.Terminate()

	if err := e.player.Open(); err != nil {
		return fmt.Errorf("failed to open output stream: %w", err)
	}
	defer e.player.Close()

	return e.player.PlayPCM(ctx, pcm)
}
