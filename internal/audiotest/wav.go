// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
)

// WAV builds an in-memory PCM WAV file. samples are interleaved and written
// with the given bit depth (8, 16, 24 or 32); 8-bit values are written
// unsigned, the others little-endian signed.
func WAV(sampleRate, channels, bitDepth int, samples []int32) []byte {
	buf := new(bytes.Buffer)

	bytesPerSample := bitDepth / 8
	dataSize := uint32(len(samples) * bytesPerSample)

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*channels*bytesPerSample))
	binary.Write(buf, binary.LittleEndian, uint16(channels*bytesPerSample))
	binary.Write(buf, binary.LittleEndian, uint16(bitDepth))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)

	for _, s := range samples {
		switch bitDepth {
		case 8:
			buf.WriteByte(byte(s + 128))
		case 16:
			binary.Write(buf, binary.LittleEndian, int16(s))
		case 24:
			buf.Write([]byte{byte(s), byte(s >> 8), byte(s >> 16)})
		case 32:
			binary.Write(buf, binary.LittleEndian, s)
		}
	}

	return buf.Bytes()
}

// WAV16 builds a 16-bit PCM WAV file from interleaved samples.
func WAV16(sampleRate, channels int, samples []int16) []byte {
	wide := make([]int32, len(samples))
	for i, s := range samples {
		wide[i] = int32(s)
	}
	return WAV(sampleRate, channels, 16, wide)
}

// Ramp returns n distinct 16-bit samples that make looping and offsets easy
// to spot in assertions.
func Ramp(n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = int16((i%2000)*16 - 16000)
	}
	return out
}
