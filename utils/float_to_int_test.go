// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{name: "zero", input: 0.0, want: 0},
		{name: "max positive clamps", input: 1.0, want: math.MaxInt16},
		{name: "max negative", input: -1.0, want: math.MinInt16},
		{name: "half positive", input: 0.5, want: 16384},
		{name: "half negative", input: -0.5, want: -16384},
		{name: "small positive rounds", input: 0.001, want: 33},
		{name: "clamp over max", input: 1.5, want: math.MaxInt16},
		{name: "clamp under min", input: -100.0, want: math.MinInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToInt16(tt.input); got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestInt16RoundTrip(t *testing.T) {
	t.Parallel()

	for v := math.MinInt16; v <= math.MaxInt16; v += 7 {
		in := int16(v)
		if got := Float32ToInt16(Int16ToFloat32(in)); got != in {
			t.Fatalf("round trip of %d = %d", in, got)
		}
	}

	for _, in := range []int16{math.MinInt16, -1, 0, 1, math.MaxInt16} {
		if got := Float32ToInt16(Int16ToFloat32(in)); got != in {
			t.Errorf("round trip of %d = %d", in, got)
		}
	}
}

func TestFloat32ToInt16Monotonic(t *testing.T) {
	t.Parallel()

	prev := Float32ToInt16(-1.0)

	for f := -0.99; f <= 1.0; f += 0.01 {
		curr := Float32ToInt16(float32(f))
		if curr < prev {
			t.Errorf("Float32ToInt16 not monotonic: f=%v gives %v, but previous was %v",
				f, curr, prev)
		}
		prev = curr
	}
}

func BenchmarkFloat32ToInt16Realistic(b *testing.B) {
	// One second of mono audio at 8kHz.
	floatSamples := make([]float32, 8000)
	int16Samples := make([]int16, 8000)

	for i := range floatSamples {
		floatSamples[i] = float32(math.Sin(float64(i) * 0.1))
	}

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		for j := range floatSamples {
			int16Samples[j] = Float32ToInt16(floatSamples[j])
		}
	}
}
