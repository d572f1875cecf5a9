package tts

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*GeminiTTSClient, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewGeminiTTSClient(GeminiConfig{
		APIKey:   "test-key",
		Endpoint: server.URL,
	})
	if err != nil {
		t.Fatalf("NewGeminiTTSClient failed: %v", err)
	}
	return client, server
}

func audioResponse(data string) string {
	return fmt.Sprintf(`{
		"candidates": [{
			"content": {
				"parts": [{
					"inlineData": {"mimeType": "audio/L16;codec=pcm;rate=24000", "data": %q}
				}]
			}
		}]
	}`, data)
}

func TestGeminiSynthesize(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04}

	var gotBody geminiRequest
	var gotKey string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		fmt.Fprint(w, audioResponse(base64.StdEncoding.EncodeToString(pcm)))
	})

	got, err := client.Synthesize(context.Background(), "Speaker1: hello\nSpeaker2: hi")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	if string(got) != string(pcm) {
		t.Errorf("Decoded PCM = %v, want %v", got, pcm)
	}
	if gotKey != "test-key" {
		t.Errorf("API key query parameter = %q, want %q", gotKey, "test-key")
	}

	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 1 {
		t.Fatalf("Unexpected request contents: %+v", gotBody.Contents)
	}
	if gotBody.Contents[0].Parts[0].Text != "Speaker1: hello\nSpeaker2: hi" {
		t.Errorf("Request text = %q", gotBody.Contents[0].Parts[0].Text)
	}
	if len(gotBody.GenerationConfig.ResponseModalities) != 1 || gotBody.GenerationConfig.ResponseModalities[0] != "AUDIO" {
		t.Errorf("ResponseModalities = %v, want [AUDIO]", gotBody.GenerationConfig.ResponseModalities)
	}

	voices := gotBody.GenerationConfig.SpeechConfig.MultiSpeakerVoiceConfig.SpeakerVoiceConfigs
	if len(voices) != 2 {
		t.Fatalf("Expected 2 speaker voice configs, got %d", len(voices))
	}
	if voices[0].VoiceConfig.PrebuiltVoiceConfig.VoiceName == voices[1].VoiceConfig.PrebuiltVoiceConfig.VoiceName {
		t.Error("Speakers must be bound to distinct voices")
	}
}

func TestGeminiSynthesizeNon200(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := client.Synthesize(context.Background(), "hello")
	if !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("Expected ErrRequestFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("Error message should include the status code, got %q", err.Error())
	}
}

func TestGeminiSynthesizeMalformedBase64(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, audioResponse("!!! not base64 !!!"))
	})

	_, err := client.Synthesize(context.Background(), "hello")
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("Expected ErrDecode, got %v", err)
	}
}

func TestGeminiSynthesizeNoCandidates(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates": []}`)
	})

	_, err := client.Synthesize(context.Background(), "hello")
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("Expected ErrDecode, got %v", err)
	}
}

func TestGeminiSynthesizeNoInlineData(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates": [{"content": {"parts": [{}]}}]}`)
	})

	_, err := client.Synthesize(context.Background(), "hello")
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("Expected ErrDecode, got %v", err)
	}
}

func TestGeminiMissingCredential(t *testing.T) {
	_, err := NewGeminiTTSClient(GeminiConfig{})
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("Expected ErrMissingCredential, got %v", err)
	}
}

func TestGeminiSynthesizeTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client, err := NewGeminiTTSClient(GeminiConfig{APIKey: "test-key", Endpoint: server.URL})
	if err != nil {
		t.Fatalf("NewGeminiTTSClient failed: %v", err)
	}

	if _, err := client.Synthesize(context.Background(), "hello"); err == nil {
		t.Fatal("Expected a transport error, got nil")
	}
}
