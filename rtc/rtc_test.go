// SPDX-License-Identifier: EPL-2.0

package rtc

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ik5/micshim/codec/pcmu"
	"github.com/ik5/micshim/internal/audiotest"
	micmedia "github.com/ik5/micshim/media"
	"github.com/pion/webrtc/v4"
	"github.com/pion/webrtc/v4/pkg/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRecorder struct {
	mtx     sync.Mutex
	samples []media.Sample
	err     error
}

func (r *sampleRecorder) WriteSample(s media.Sample) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if r.err != nil {
		return r.err
	}
	r.samples = append(r.samples, s)
	return nil
}

func (r *sampleRecorder) Samples() []media.Sample {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return append([]media.Sample(nil), r.samples...)
}

func TestNewPCMUTrack(t *testing.T) {
	t.Parallel()

	track, err := NewPCMUTrack("audio", "microphone")
	require.NoError(t, err)

	assert.Equal(t, "audio", track.ID())
	assert.Equal(t, "microphone", track.StreamID())
	assert.Equal(t, webrtc.RTPCodecTypeAudio, track.Kind())
	assert.Equal(t, webrtc.MimeTypePCMU, track.Codec().MimeType)
	assert.Equal(t, uint32(pcmu.SampleRate), track.Codec().ClockRate)
}

func TestPublisherWrites20msSamples(t *testing.T) {
	t.Parallel()

	// 100 ms of 8 kHz mono at a constant level.
	src := audiotest.NewConstantSource(pcmu.SampleRate, 1, 800, 0.25)
	rec := &sampleRecorder{}

	p := NewPublisher(src, rec, WithPacing(false))
	require.NoError(t, p.Run(context.Background()))

	samples := rec.Samples()
	require.Len(t, samples, 5)
	assert.Equal(t, int64(5), p.Frames())

	want := pcmu.Encode(8192)
	for _, s := range samples {
		assert.Equal(t, 20*time.Millisecond, s.Duration)
		require.Len(t, s.Data, 160)
		for _, b := range s.Data {
			require.Equal(t, want, b)
		}
	}
}

func TestPublisherConvertsFormat(t *testing.T) {
	t.Parallel()

	// 50 ms of 48 kHz stereo becomes 8 kHz mono.
	src := audiotest.NewConstantSource(48000, 2, 2400, 0.5)
	rec := &sampleRecorder{}

	p := NewPublisher(src, rec, WithPacing(false))
	require.NoError(t, p.Run(context.Background()))

	total := 0
	for _, s := range rec.Samples() {
		total += len(s.Data)
		assert.LessOrEqual(t, len(s.Data), 160)
	}
	assert.InDelta(t, 400, total, 2)

	first := rec.Samples()[0]
	assert.Equal(t, pcmu.Encode(16384), first.Data[0])
}

func TestPublisherPartialLastFrame(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(pcmu.SampleRate, 1, 200)
	rec := &sampleRecorder{}

	require.NoError(t, NewPublisher(src, rec, WithPacing(false)).Run(context.Background()))

	samples := rec.Samples()
	require.Len(t, samples, 2)
	assert.Len(t, samples[1].Data, 40)
	assert.Equal(t, 5*time.Millisecond, samples[1].Duration)
}

func TestPublisherWriteError(t *testing.T) {
	t.Parallel()

	boom := errors.New("track closed")
	src := audiotest.NewSilentSource(pcmu.SampleRate, 1, 800)

	err := NewPublisher(src, &sampleRecorder{err: boom}, WithPacing(false)).Run(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestPublisherPacedUntilCanceled(t *testing.T) {
	t.Parallel()

	endless := micmedia.NewAudioTrack("mic", audiotest.NewSilentSource(pcmu.SampleRate, 1, 1<<30))
	rec := &sampleRecorder{}

	ctx, cancel := context.WithTimeout(context.Background(), 110*time.Millisecond)
	defer cancel()

	p := NewPublisher(endless, rec, WithFrameDuration(10*time.Millisecond))
	err := p.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	n := len(rec.Samples())
	assert.GreaterOrEqual(t, n, 3)
	assert.LessOrEqual(t, n, 12)
	for _, s := range rec.Samples() {
		assert.Len(t, s.Data, 80)
	}
}

func TestPublisherStopsWhenTrackStops(t *testing.T) {
	t.Parallel()

	track := micmedia.NewAudioTrack("mic", audiotest.NewSilentSource(pcmu.SampleRate, 1, 1<<30))
	rec := &sampleRecorder{}
	p := NewPublisher(track, rec, WithFrameDuration(5*time.Millisecond))

	done := make(chan error, 1)
	go func() { done <- p.Run(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, track.Stop())

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("publisher did not stop with its track")
	}
}

func TestAttach(t *testing.T) {
	t.Parallel()

	pc, err := webrtc.NewPeerConnection(webrtc.Configuration{})
	require.NoError(t, err)
	t.Cleanup(func() { pc.Close() })

	track := micmedia.NewAudioTrack("mic", audiotest.NewSilentSource(48000, 1, 4800))

	p, sender, err := Attach(pc, track, WithPacing(false))
	require.NoError(t, err)
	require.NotNil(t, p)
	require.NotNil(t, sender)

	local := sender.Track()
	require.NotNil(t, local)
	assert.Equal(t, track.ID(), local.ID())
	assert.Equal(t, "microphone", local.StreamID())
	assert.Len(t, pc.GetTransceivers(), 1)

	// Writing to an unbound track is a no-op, so the source drains cleanly.
	require.NoError(t, p.Run(context.Background()))
	assert.Positive(t, p.Frames())
}
