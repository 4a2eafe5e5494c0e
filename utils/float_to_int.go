// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 converts a normalised sample to 16-bit PCM. It is the exact
// inverse of the decoders' int16/32768 scaling, so decoded PCM16 survives a
// round trip unchanged. Values outside [-1, 1] are clamped.
func Float32ToInt16(x float32) int16 {
	v := math.Round(float64(x) * 32768.0)

	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}

	return int16(v)
}

// Int16ToFloat32 normalises a 16-bit PCM sample to [-1, 1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}
