package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrInvalidFormat indicates unusable sample format parameters.
var ErrInvalidFormat = errors.New("invalid audio format")

// Format describes the sample layout of a PCM buffer.
type Format struct {
	SampleRate int // Hz
	BitDepth   int // bits per sample, multiple of 8
	Channels   int
}

// DefaultFormat matches the Gemini TTS output: 24 kHz, 16-bit, mono.
func DefaultFormat() Format {
	return Format{
		SampleRate: 24000,
		BitDepth:   16,
		Channels:   1,
	}
}

// Validate checks that the format can be represented in a WAV header.
func (f Format) Validate() error {
	if f.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidFormat, f.SampleRate)
	}
	if f.BitDepth <= 0 || f.BitDepth%8 != 0 {
		return fmt.Errorf("%w: bit depth must be a positive multiple of 8, got %d", ErrInvalidFormat, f.BitDepth)
	}
	if f.Channels <= 0 {
		return fmt.Errorf("%w: channel count must be positive, got %d", ErrInvalidFormat, f.Channels)
	}
	return nil
}

// header is the fixed 44-byte layout of an uncompressed PCM WAV file.
type header struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32  // 36 + Subchunk2Size
	Format        [4]byte // "WAVE"
	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for linear PCM
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32 // SampleRate * NumChannels * BitsPerSample / 8
	BlockAlign    uint16 // NumChannels * BitsPerSample / 8
	BitsPerSample uint16
	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32  // byte length of the sample payload
}

const headerSize = 44

// Encode wraps raw little-endian PCM bytes in a WAV container. An empty
// buffer is valid and yields a 44-byte file with an empty data chunk.
func Encode(pcm []byte, f Format) ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	dataSize := uint32(len(pcm))
	hdr := header{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   uint16(f.Channels),
		SampleRate:    uint32(f.SampleRate),
		ByteRate:      uint32(f.SampleRate * f.Channels * f.BitDepth / 8),
		BlockAlign:    uint16(f.Channels * f.BitDepth / 8),
		BitsPerSample: uint16(f.BitDepth),
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}

	buf := bytes.NewBuffer(make([]byte, 0, headerSize+len(pcm)))
	if err := binary.Write(buf, binary.LittleEndian, hdr); err != nil {
		return nil, fmt.Errorf("failed to write WAV header: %w", err)
	}
	buf.Write(pcm)

	return buf.Bytes(), nil
}

// Decode parses a WAV file produced by Encode and returns the raw PCM
// payload and its format.
func Decode(data []byte) ([]byte, Format, error) {
	if len(data) < headerSize {
		return nil, Format{}, fmt.Errorf("WAV data too short: need at least %d bytes, got %d", headerSize, len(data))
	}

	var hdr header
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &hdr); err != nil {
		return nil, Format{}, fmt.Errorf("failed to read WAV header: %w", err)
	}

	if string(hdr.ChunkID[:]) != "RIFF" {
		return nil, Format{}, fmt.Errorf("invalid WAV file: missing RIFF header")
	}
	if string(hdr.Format[:]) != "WAVE" {
		return nil, Format{}, fmt.Errorf("invalid WAV file: missing WAVE format")
	}
	if string(hdr.Subchunk1ID[:]) != "fmt " {
		return nil, Format{}, fmt.Errorf("invalid WAV file: missing fmt chunk")
	}
	if string(hdr.Subchunk2ID[:]) != "data" {
		return nil, Format{}, fmt.Errorf("invalid WAV file: missing data chunk")
	}
	if hdr.AudioFormat != 1 {
		return nil, Format{}, fmt.Errorf("unsupported audio format: %d (only PCM is supported)", hdr.AudioFormat)
	}
	if int(hdr.Subchunk2Size) > len(data)-headerSize {
		return nil, Format{}, fmt.Errorf("truncated WAV file: data chunk claims %d bytes, %d available", hdr.Subchunk2Size, len(data)-headerSize)
	}

	f := Format{
		SampleRate: int(hdr.SampleRate),
		BitDepth:   int(hdr.BitsPerSample),
		Channels:   int(hdr.NumChannels),
	}
	return data[headerSize : headerSize+int(hdr.Subchunk2Size)], f, nil
}

// WriteFile encodes pcm and writes the WAV file to path. The file is
// written to a temporary name in the same directory and renamed into
// place, so a failed run never leaves a partial file behind and a rerun
// fully replaces any previous output.
func WriteFile(path string, pcm []byte, f Format) error {
	data, err := Encode(pcm, f)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write WAV data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close WAV file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace output file: %w", err)
	}
	return nil
}
