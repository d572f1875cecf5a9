package tts

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/metadata"

	ttsv3 "github.com/yandex-cloud/go-genproto/yandex/cloud/ai/tts/v3"
)

const (
	YandexTTSEndpoint = "tts.api.cloud.yandex.net:443"

	yandexDefaultVoice = "marina"
	yandexSampleRate   = 24000
)

type YandexConfig struct {
	APIKey   string
	FolderID string
	Voice    string
}

// YandexTTSClient is an alternative synthesis backend using the Yandex
// SpeechKit gRPC API. It requests raw LINEAR16 PCM at 24 kHz so the
// downstream WAV encoding is identical to the Gemini path.
type YandexTTSClient struct {
	client   ttsv3.SynthesizerClient
	conn     *grpc.ClientConn
	apiKey   string
	folderID string
	voice    string
}

// Ensure YandexTTSClient implements Synthesizer interface
var _ Synthesizer = (*YandexTTSClient)(nil)

func NewYandexTTSClient(config YandexConfig) (*YandexTTSClient, error) {
	if config.APIKey == "" {
		return nil, ErrMissingCredential
	}

	voice := config.Voice
	if voice == "" {
		voice = yandexDefaultVoice
	}

	creds := credentials.NewTLS(&tls.Config{})
	conn, err := grpc.Dial(YandexTTSEndpoint, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to TTS service: %w", err)
	}

	return &YandexTTSClient{
		client:   ttsv3.NewSynthesizerClient(conn),
		conn:     conn,
		apiKey:   config.APIKey,
		folderID: config.FolderID,
		voice:    voice,
	}, nil
}

// Synthesize streams the utterance synthesis response and collects the
// audio chunks into a single raw PCM buffer.
func (c *YandexTTSClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Api-Key "+c.apiKey)
	if c.folderID != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "x-folder-id", c.folderID)
	}

	stream, err := c.client.UtteranceSynthesis(ctx, c.buildRequest(text))
	if err != nil {
		return nil, fmt.Errorf("failed to start synthesis: %w", err)
	}

	var pcm []byte
	for {
		resp, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to receive audio data: %w", err)
		}
		if chunk := resp.GetAudioChunk(); chunk != nil {
			pcm = append(pcm, chunk.GetData()...)
		}
	}

	return pcm, nil
}

func (c *YandexTTSClient) buildRequest(text string) *ttsv3.UtteranceSynthesisRequest {
	req := &ttsv3.UtteranceSynthesisRequest{}
	req.SetModel("general")
	req.SetText(text)

	voiceHint := &ttsv3.Hints{}
	voiceHint.SetVoice(c.voice)
	req.SetHints([]*ttsv3.Hints{voiceHint})

	rawAudio := &ttsv3.RawAudio{}
	rawAudio.SetAudioEncoding(ttsv3.RawAudio_LINEAR16_PCM)
	rawAudio.SetSampleRateHertz(yandexSampleRate)

	audioSpec := &ttsv3.AudioFormatOptions{}
	audioSpec.SetRawAudio(rawAudio)
	req.SetOutputAudioSpec(audioSpec)

	req.SetLoudnessNormalizationType(ttsv3.UtteranceSynthesisRequest_LUFS)

	return req
}

func (c *YandexTTSClient) Close() error {
	return c.conn.Close()
}
