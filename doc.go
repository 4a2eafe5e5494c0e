// SPDX-License-Identifier: EPL-2.0

// Package micshim substitutes the audio of media captures with a looping
// audio file.
//
// Code that captures a microphone through a capture.Provider keeps doing so
// unchanged; wrapping the provider in a substitution makes every granted
// capture play the configured file instead, forever, at the graph's sample
// rate. The real provider is still asked first, so permission and device
// errors surface exactly as before.
//
// # Quick Start
//
//	cfg, _ := config.Load(config.New(), "micshim.yaml")
//	shim, _ := micshim.New(device.Silent{}, cfg, log.Logger)
//
//	stream, _ := shim.GetUserMedia(ctx, media.AudioOnly())
//	mic := stream.AudioTracks()[0]
//	defer mic.Stop()
//
//	// Five seconds of the looping file as 16 kHz mono PCM.
//	pcm, _ := micshim.RecordMono16(mic, 16000, 5*time.Second)
//
// # Supported Formats
//
// The audio resource is sniffed, not named by extension:
//   - WAV (PCM 8/16/24/32-bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF via formats/aiff
//
// # Resources
//
// Sources are URIs: http and https go through a retrying client, file URLs
// and bare paths are read from disk, and data URIs are decoded inline.
//
// # Packages
//
//   - capture: the Provider entry point and the Substitution
//   - capture/device: silent, PortAudio and denying providers
//   - graph: buffer source and stream destination nodes
//   - media: constraints, tracks and streams
//   - rtc: publishing a track to a WebRTC peer connection as PCMU
//   - config: viper based configuration
package micshim
