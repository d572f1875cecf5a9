package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/Wang-Yong2018/gemini-tts/config"
	"github.com/Wang-Yong2018/gemini-tts/engine"
	"github.com/Wang-Yong2018/gemini-tts/sound"
	"github.com/Wang-Yong2018/gemini-tts/tts"
	"github.com/Wang-Yong2018/gemini-tts/wav"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	synthesizer, err := newSynthesizer(cfg)
	if err != nil {
		if errors.Is(err, tts.ErrMissingCredential) {
			fmt.Println("Error: no API key configured")
			fmt.Println("Create a .env file with:")
			fmt.Println("GEMINI_API_KEY=your_api_key")
			fmt.Println("PROMPT_FILE=prompt.txt  # optional")
			fmt.Println("OUTPUT_FILE=out.wav     # optional")
			os.Exit(1)
		}
		log.Fatalf("Failed to create synthesizer: %v", err)
	}
	defer synthesizer.Close()

	var player sound.Player
	if cfg.Play {
		player = sound.NewPortaudioPlayer(sound.PlayerConfig{
			SampleRate:      float64(cfg.Audio.SampleRate),
			FramesPerBuffer: cfg.Audio.FramesPerBuffer,
			OutputChannels:  cfg.Audio.Channels,
		})
	}

	eng := engine.NewEngine(engine.EngineConfig{
		PromptFile: cfg.PromptFile,
		OutputFile: cfg.OutputFile,
		Format: wav.Format{
			SampleRate: cfg.Audio.SampleRate,
			BitDepth:   cfg.Audio.BitDepth,
			Channels:   cfg.Audio.Channels,
		},
		Play: cfg.Play,
	}, synthesizer, player)

	// Ctrl-C cancels the in-flight request or playback.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := eng.Run(ctx); err != nil {
		log.Fatalf("Error: %v", err)
	}

	fmt.Printf("Audio saved to %s\n", cfg.OutputFile)
}

func newSynthesizer(cfg *config.Config) (tts.Synthesizer, error) {
	switch cfg.Provider {
	case config.ProviderYandex:
		return tts.NewYandexTTSClient(tts.YandexConfig{
			APIKey:   cfg.YandexAPIKey,
			FolderID: cfg.YandexFolderID,
		})
	default:
		return tts.NewGeminiTTSClient(tts.GeminiConfig{
			APIKey: cfg.GeminiAPIKey,
		})
	}
}
