// SPDX-License-Identifier: EPL-2.0

// Package rtc publishes a capture track as the microphone of a WebRTC
// peer connection. Audio is sent as PCMU (G.711 μ-law, 8 kHz mono) in
// 20 ms samples.
package rtc
