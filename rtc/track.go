// SPDX-License-Identifier: EPL-2.0

package rtc

import (
	"fmt"

	"github.com/ik5/micshim/codec/pcmu"
	"github.com/ik5/micshim/media"
	"github.com/pion/webrtc/v4"
)

// NewPCMUTrack creates a local sample track carrying PCMU audio.
func NewPCMUTrack(id, streamID string) (*webrtc.TrackLocalStaticSample, error) {
	track, err := webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{
			MimeType:  webrtc.MimeTypePCMU,
			ClockRate: pcmu.SampleRate,
			Channels:  1,
		},
		id,
		streamID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating PCMU track: %w", err)
	}
	return track, nil
}

// Attach adds a PCMU track fed from track to pc and returns the publisher
// that drives it. The caller runs the publisher once the connection is
// negotiated.
func Attach(pc *webrtc.PeerConnection, track media.AudioTrack, opts ...Option) (*Publisher, *webrtc.RTPSender, error) {
	local, err := NewPCMUTrack(track.ID(), "microphone")
	if err != nil {
		return nil, nil, err
	}

	sender, err := pc.AddTrack(local)
	if err != nil {
		return nil, nil, fmt.Errorf("adding audio track: %w", err)
	}

	// RTCP has to be read for interceptors such as NACK to work.
	go func() {
		buf := make([]byte, 1500)
		for {
			if _, _, err := sender.Read(buf); err != nil {
				return
			}
		}
	}()

	return NewPublisher(track, local, opts...), sender, nil
}
