// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/micshim/internal/audiotest"
)

func drain(t *testing.T, src Source, chunk int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, chunk)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 1000), 8000)

	if r.SampleRate() != 8000 || r.Channels() != 2 {
		t.Errorf("format = %d Hz x%d, want 8000 Hz x2", r.SampleRate(), r.Channels())
	}
}

func TestResampler_SameRatePassthrough(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSource(8000, 1, 300, func(sample, _ int) float32 {
		return float32(sample) / 1024
	})

	got := drain(t, NewResampler(src, 8000), 64)
	if len(got) != 300 {
		t.Fatalf("got %d samples, want 300", len(got))
	}
	for i, v := range got {
		if v != float32(i)/1024 {
			t.Fatalf("sample %d = %v, want %v", i, v, float32(i)/1024)
		}
	}
}

func TestResampler_OutputLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		srcRate  int
		dstRate  int
		channels int
	}{
		{name: "downsample", srcRate: 48000, dstRate: 8000, channels: 1},
		{name: "upsample", srcRate: 8000, dstRate: 48000, channels: 1},
		{name: "stereo 44.1k to 16k", srcRate: 44100, dstRate: 16000, channels: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// One second of audio.
			src := audiotest.NewSineSource(tt.srcRate, tt.channels, tt.srcRate, 440)
			got := drain(t, NewResampler(src, tt.dstRate), 4096-4096%tt.channels)

			frames := len(got) / tt.channels
			tolerance := tt.dstRate / 100
			if frames < tt.dstRate-tolerance || frames > tt.dstRate+tolerance {
				t.Errorf("got %d frames, want ≈%d", frames, tt.dstRate)
			}
		})
	}
}

func TestResampler_StartsAtFirstFrame(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSource(8000, 1, 100, func(sample, _ int) float32 {
		if sample == 0 {
			return 0.75
		}
		return 0
	})

	buf := make([]float32, 4)
	if _, err := NewResampler(src, 16000).ReadSamples(buf); err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if buf[0] != 0.75 {
		t.Errorf("first output = %v, want the first source sample 0.75", buf[0])
	}
}

func TestResampler_PreservesDC(t *testing.T) {
	t.Parallel()

	got := drain(t, NewResampler(audiotest.NewConstantSource(44100, 2, 4410, 0.5), 16000), 512)

	for i, v := range got {
		if math.Abs(float64(v-0.5)) > 1e-3 {
			t.Fatalf("sample %d = %v, want 0.5", i, v)
		}
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 100), 8000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 1, 0), 8000)
	for range 2 {
		if n, err := r.ReadSamples(make([]float32, 8)); n != 0 || !errors.Is(err, io.EOF) {
			t.Errorf("ReadSamples() = %d, %v, want 0, EOF", n, err)
		}
	}
}

func TestResampler_Close(t *testing.T) {
	t.Parallel()

	if err := NewResampler(audiotest.NewSilentSource(44100, 1, 10), 8000).Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
