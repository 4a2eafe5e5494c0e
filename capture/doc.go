// SPDX-License-Identifier: EPL-2.0

// Package capture defines the media capture entry point and a Substitution
// that replaces the audio of every granted capture with a looping decoded
// audio file.
//
// A Substitution wraps the real Provider. Each call still goes through the
// real provider first, so permission prompts and device errors behave as
// before; only a granted capture is replaced:
//
//	shim, err := capture.NewSubstitution(device.Silent{}, "https://example.com/loop.wav")
//	stream, err := shim.GetUserMedia(ctx, media.AudioOnly())
//	mic := stream.AudioTracks()[0] // plays loop.wav forever
//
// Stopping the returned track releases its audio graph.
package capture
