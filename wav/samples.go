package wav

import "encoding/binary"

// Samples reinterprets raw little-endian bytes as signed 16-bit samples.
// A trailing odd byte is dropped rather than treated as an error; the
// synthesis endpoint always returns an even byte count, so the truncation
// only matters for corrupt input.
func Samples(pcm []byte) []int16 {
	samples := make([]int16, len(pcm)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(pcm[i*2 : i*2+2]))
	}
	return samples
}

// SamplesToBytes is the inverse of Samples.
func SamplesToBytes(samples []int16) []byte {
	pcm := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[i*2:i*2+2], uint16(s))
	}
	return pcm
}
