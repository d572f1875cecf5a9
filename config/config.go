package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderYandex = "yandex"
)

// AudioConfig describes the PCM format produced by the synthesis
// backends and consumed by the WAV encoder and the player.
type AudioConfig struct {
	SampleRate      int
	BitDepth        int
	Channels        int
	FramesPerBuffer int
}

type Config struct {
	Provider string

	GeminiAPIKey   string
	YandexAPIKey   string
	YandexFolderID string

	PromptFile string
	OutputFile string
	Play       bool

	Audio AudioConfig
}

// LoadConfig reads configuration from a .env file (if present) and the
// environment. Synthesis output is fixed at 24 kHz 16-bit mono.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Provider:       getEnv("TTS_PROVIDER", ProviderGemini),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		YandexAPIKey:   os.Getenv("YANDEX_API_KEY"),
		YandexFolderID: os.Getenv("YANDEX_FOLDER_ID"),
		PromptFile:     getEnv("PROMPT_FILE", "prompt.txt"),
		OutputFile:     getEnv("OUTPUT_FILE", "out.wav"),
		Play:           getEnvBool("PLAY_AUDIO", false),
		Audio: AudioConfig{
			SampleRate:      24000,
			BitDepth:        16,
			Channels:        1,
			FramesPerBuffer: getEnvInt("FRAMES_PER_BUFFER", 1024),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields that would otherwise fail deep inside the
// pipeline. Credentials are checked by the synthesizer constructors.
func (c *Config) Validate() error {
	if c.Provider != ProviderGemini && c.Provider != ProviderYandex {
		return fmt.Errorf("TTS_PROVIDER must be %q or %q, got %q", ProviderGemini, ProviderYandex, c.Provider)
	}
	if c.PromptFile == "" {
		return fmt.Errorf("PROMPT_FILE cannot be empty")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("OUTPUT_FILE cannot be empty")
	}
	if c.Audio.FramesPerBuffer < 1 {
		return fmt.Errorf("FRAMES_PER_BUFFER must be at least 1, got %d", c.Audio.FramesPerBuffer)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
