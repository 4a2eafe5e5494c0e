// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 audio with github.com/hajimehoshi/go-mp3.
//
// go-mp3 always emits stereo, so the Source reports two channels even for
// mono files; use audio.NewMonoMixer when a single channel is wanted.
// Samples are normalised to float32 in [-1, 1).
package mp3
