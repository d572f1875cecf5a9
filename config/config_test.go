package config

import (
	"strings"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Provider != ProviderGemini {
		t.Errorf("Provider = %q, want %q", cfg.Provider, ProviderGemini)
	}
	if cfg.PromptFile != "prompt.txt" {
		t.Errorf("PromptFile = %q, want prompt.txt", cfg.PromptFile)
	}
	if cfg.OutputFile != "out.wav" {
		t.Errorf("OutputFile = %q, want out.wav", cfg.OutputFile)
	}
	if cfg.Play {
		t.Error("Play should default to false")
	}
	if cfg.Audio.SampleRate != 24000 || cfg.Audio.BitDepth != 16 || cfg.Audio.Channels != 1 {
		t.Errorf("Audio format = %+v, want 24000/16/1", cfg.Audio)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("TTS_PROVIDER", "yandex")
	t.Setenv("YANDEX_API_KEY", "yk")
	t.Setenv("YANDEX_FOLDER_ID", "folder")
	t.Setenv("PROMPT_FILE", "dialogue.txt")
	t.Setenv("OUTPUT_FILE", "speech.wav")
	t.Setenv("PLAY_AUDIO", "true")
	t.Setenv("FRAMES_PER_BUFFER", "512")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Provider != ProviderYandex {
		t.Errorf("Provider = %q, want yandex", cfg.Provider)
	}
	if cfg.YandexAPIKey != "yk" || cfg.YandexFolderID != "folder" {
		t.Errorf("Yandex credentials = %q/%q", cfg.YandexAPIKey, cfg.YandexFolderID)
	}
	if cfg.PromptFile != "dialogue.txt" {
		t.Errorf("PromptFile = %q", cfg.PromptFile)
	}
	if cfg.OutputFile != "speech.wav" {
		t.Errorf("OutputFile = %q", cfg.OutputFile)
	}
	if !cfg.Play {
		t.Error("Play should be true")
	}
	if cfg.Audio.FramesPerBuffer != 512 {
		t.Errorf("FramesPerBuffer = %d, want 512", cfg.Audio.FramesPerBuffer)
	}
}

func TestLoadConfigUnknownProvider(t *testing.T) {
	t.Setenv("TTS_PROVIDER", "espeak")

	if _, err := LoadConfig(); err == nil || !strings.Contains(err.Error(), "TTS_PROVIDER") {
		t.Fatalf("Expected a provider validation error, got %v", err)
	}
}

func TestValidateEmptyPaths(t *testing.T) {
	cfg := &Config{Provider: ProviderGemini, OutputFile: "out.wav", Audio: AudioConfig{FramesPerBuffer: 1024}}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected an error for empty PROMPT_FILE")
	}

	cfg = &Config{Provider: ProviderGemini, PromptFile: "prompt.txt", Audio: AudioConfig{FramesPerBuffer: 1024}}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected an error for empty OUTPUT_FILE")
	}
}

func TestLoadConfigBadIntFallsBack(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("FRAMES_PER_BUFFER", "not-a-number")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Audio.FramesPerBuffer != 1024 {
		t.Errorf("FramesPerBuffer = %d, want fallback 1024", cfg.Audio.FramesPerBuffer)
	}
}
