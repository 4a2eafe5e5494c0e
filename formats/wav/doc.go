// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes WAV audio.
//
// Decoding goes through github.com/go-audio/wav and accepts integer PCM at
// 8, 16, 24 or 32 bits, any channel count and any sample rate. Samples are
// normalised to float32 in [-1, 1); 16-bit samples are divided by 32768 so
// utils.Float32ToInt16 restores them exactly.
//
//	src, err := wav.Decoder{}.Decode(bytes.NewReader(data))
//
// A reader that is not an io.ReadSeeker is read fully into memory first.
//
// WriteWAV16 writes a canonical 44-byte-header 16-bit PCM file to any
// io.Writer:
//
//	err := wav.WriteWAV16(w, 16000, 1, samples)
package wav
