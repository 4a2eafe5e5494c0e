// SPDX-License-Identifier: EPL-2.0

// Package pcmu implements G.711 μ-law companding (RTP payload type PCMU).
package pcmu

const (
	bias = 0x84
	clip = 32635

	// SampleRate is the clock rate of PCMU on RTP.
	SampleRate = 8000
)

// Encode compresses one linear 16-bit sample to a μ-law byte.
func Encode(sample int16) byte {
	v := int(sample)

	var sign byte
	if v < 0 {
		v = -v
		sign = 0x80
	}
	v = min(v, clip) + bias

	exponent := byte(7)
	for mask := 0x4000; v&mask == 0 && exponent > 0; mask >>= 1 {
		exponent--
	}
	mantissa := byte(v>>(exponent+3)) & 0x0F

	return ^(sign | exponent<<4 | mantissa)
}

// Decode expands a μ-law byte to a linear 16-bit sample.
func Decode(mu byte) int16 {
	mu = ^mu
	sign := mu & 0x80
	exponent := (mu >> 4) & 0x07
	mantissa := mu & 0x0F

	value := (int16(mantissa)<<3 + bias) << exponent
	value -= bias

	if sign != 0 {
		return -value
	}
	return value
}

// EncodeSlice appends the μ-law encoding of pcm to dst.
func EncodeSlice(dst []byte, pcm []int16) []byte {
	for _, s := range pcm {
		dst = append(dst, Encode(s))
	}
	return dst
}

// DecodeSlice appends the linear samples of mu to dst.
func DecodeSlice(dst []int16, mu []byte) []int16 {
	for _, b := range mu {
		dst = append(dst, Decode(b))
	}
	return dst
}
