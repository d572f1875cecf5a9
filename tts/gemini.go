package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const (
	GeminiTTSEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash-preview-tts:generateContent"
)

// DefaultSpeakerVoices assigns the two dialogue speakers to distinct
// prebuilt Gemini voices.
func DefaultSpeakerVoices() []SpeakerVoice {
	return []SpeakerVoice{
		{Speaker: "Speaker1", Voice: "Kore"},
		{Speaker: "Speaker2", Voice: "Puck"},
	}
}

type GeminiConfig struct {
	APIKey string
	// Endpoint overrides the default generation URL, used in tests.
	Endpoint string
	Voices   []SpeakerVoice
}

// GeminiTTSClient synthesizes speech through the Gemini generateContent
// REST API. The API key is passed as a query parameter, which is how the
// generative language endpoint authenticates.
type GeminiTTSClient struct {
	apiKey     string
	endpoint   string
	voices     []SpeakerVoice
	httpClient *http.Client
}

// Ensure GeminiTTSClient implements Synthesizer interface
var _ Synthesizer = (*GeminiTTSClient)(nil)

func NewGeminiTTSClient(config GeminiConfig) (*GeminiTTSClient, error) {
	if config.APIKey == "" {
		return nil, ErrMissingCredential
	}

	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = GeminiTTSEndpoint
	}

	voices := config.Voices
	if len(voices) == 0 {
		voices = DefaultSpeakerVoices()
	}

	return &GeminiTTSClient{
		apiKey:     config.APIKey,
		endpoint:   endpoint,
		voices:     voices,
		httpClient: &http.Client{},
	}, nil
}

// Request body types for the generateContent call.

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseModalities []string     `json:"responseModalities"`
	SpeechConfig       speechConfig `json:"speechConfig"`
}

type speechConfig struct {
	MultiSpeakerVoiceConfig multiSpeakerVoiceConfig `json:"multiSpeakerVoiceConfig"`
}

type multiSpeakerVoiceConfig struct {
	SpeakerVoiceConfigs []speakerVoiceConfig `json:"speakerVoiceConfigs"`
}

type speakerVoiceConfig struct {
	Speaker     string      `json:"speaker"`
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

// Response body types. Only the path down to inlineData.data matters.

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiCandidate struct {
	Content struct {
		Parts []struct {
			InlineData *inlineData `json:"inlineData,omitempty"`
		} `json:"parts"`
	} `json:"content"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// Synthesize performs a single POST to the generation endpoint and
// returns the decoded raw PCM audio. No retries are attempted; a failed
// call is reported to the caller as-is.
func (c *GeminiTTSClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	req := c.buildRequest(text)

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL(), bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	var response geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	encoded, err := extractAudioData(&response)
	if err != nil {
		return nil, err
	}

	pcm, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return pcm, nil
}

func (c *GeminiTTSClient) buildRequest(text string) geminiRequest {
	configs := make([]speakerVoiceConfig, len(c.voices))
	for i, v := range c.voices {
		configs[i] = speakerVoiceConfig{
			Speaker: v.Speaker,
			VoiceConfig: voiceConfig{
				PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: v.Voice},
			},
		}
	}

	return geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: text}}}},
		GenerationConfig: generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: speechConfig{
				MultiSpeakerVoiceConfig: multiSpeakerVoiceConfig{
					SpeakerVoiceConfigs: configs,
				},
			},
		},
	}
}

func (c *GeminiTTSClient) requestURL() string {
	return c.endpoint + "?key=" + url.QueryEscape(c.apiKey)
}

func extractAudioData(resp *geminiResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: response contains no candidates", ErrDecode)
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && part.InlineData.Data != "" {
			return part.InlineData.Data, nil
		}
	}
	return "", fmt.Errorf("%w: response contains no inline audio data", ErrDecode)
}

func (c *GeminiTTSClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
