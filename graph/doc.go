// SPDX-License-Identifier: EPL-2.0

// Package graph is a small pull-based audio-processing graph.
//
// A Context fixes the sample rate and channel count of everything rendered
// inside it. Buffer sources play a decoded audio.Buffer, once or looped;
// stream destinations expose whatever is connected to them as a live
// media.AudioTrack instead of playing it to speakers:
//
//	ctx := graph.NewContext(graph.WithSampleRate(48000), graph.WithChannels(1))
//	defer ctx.Close()
//
//	buf, err := ctx.DecodeAudioData(reqCtx, payload, formats.NewRegistry())
//	src := ctx.CreateBufferSource()
//	src.SetBuffer(buf)
//	src.SetLoop(true)
//	dst := ctx.CreateMediaStreamDestination()
//	src.Connect(dst)
//	src.Start(0)
//
//	track := dst.Stream().AudioTracks()[0]
//
// Rendering happens when the destination track is read; there is no clock.
// Closing the context stops every source, disconnects every node and ends
// every destination track.
package graph
