// SPDX-License-Identifier: EPL-2.0

package pcmu

import (
	"math"
	"testing"
)

func TestEncodeKnownValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int16
		want byte
	}{
		{in: 0, want: 0xFF},
		{in: -1, want: 0x7F},
		{in: math.MaxInt16, want: 0x80},
		{in: math.MinInt16, want: 0x00},
		{in: 1000, want: 0xCE},
		{in: -1000, want: 0x4E},
	}

	for _, tt := range tests {
		if got := Encode(tt.in); got != tt.want {
			t.Errorf("Encode(%d) = %#02x, want %#02x", tt.in, got, tt.want)
		}
	}
}

func TestDecodeEndpoints(t *testing.T) {
	t.Parallel()

	if got := Decode(0xFF); got != 0 {
		t.Errorf("Decode(0xFF) = %d, want 0", got)
	}
	if got := Decode(0x80); got != 32124 {
		t.Errorf("Decode(0x80) = %d, want 32124", got)
	}
	if got := Decode(0x00); got != -32124 {
		t.Errorf("Decode(0x00) = %d, want -32124", got)
	}
}

// Every code word survives decode then encode, except the negative zero
// which folds onto positive zero.
func TestCodeWordsStable(t *testing.T) {
	t.Parallel()

	for b := range 256 {
		mu := byte(b)
		if mu == 0x7F {
			continue
		}
		if got := Encode(Decode(mu)); got != mu {
			t.Errorf("Encode(Decode(%#02x)) = %#02x", mu, got)
		}
	}
}

func TestRoundTripWithinQuantisation(t *testing.T) {
	t.Parallel()

	for v := math.MinInt16; v <= math.MaxInt16; v += 13 {
		in := int16(v)
		out := Decode(Encode(in))

		diff := math.Abs(float64(in) - float64(out))
		// The step at the top segment is 1024; clipping adds 32767-32124.
		limit := math.Max(math.Abs(float64(in))/16, 8)
		if math.Abs(float64(in)) > clip {
			limit = 700
		}
		if diff > limit {
			t.Fatalf("round trip of %d = %d (diff %.0f, limit %.0f)", in, out, diff, limit)
		}
	}
}

func TestSlices(t *testing.T) {
	t.Parallel()

	pcm := []int16{0, 100, -100, 20000, -20000}
	mu := EncodeSlice(nil, pcm)
	if len(mu) != len(pcm) {
		t.Fatalf("EncodeSlice length = %d, want %d", len(mu), len(pcm))
	}

	back := DecodeSlice(make([]int16, 0, len(mu)), mu)
	for i := range pcm {
		if back[i] != Decode(Encode(pcm[i])) {
			t.Errorf("sample %d: got %d", i, back[i])
		}
	}
}

func BenchmarkEncode(b *testing.B) {
	pcm := make([]int16, 160)
	for i := range pcm {
		pcm[i] = int16(math.Sin(float64(i)*0.1) * 20000)
	}
	dst := make([]byte, 0, len(pcm))

	b.ReportAllocs()
	for range b.N {
		dst = EncodeSlice(dst[:0], pcm)
	}
}
