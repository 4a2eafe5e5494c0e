// SPDX-License-Identifier: EPL-2.0

// Package media models what a capture call consumes and returns: the
// Constraints a caller asks for, and a Stream of live Tracks.
//
// Audio tracks are audio.Source implementations, so anything that reads
// PCM (resamplers, mixers, encoders) can consume a capture directly. A
// track keeps producing samples until it is stopped; ReadSamples then
// returns io.EOF.
package media
