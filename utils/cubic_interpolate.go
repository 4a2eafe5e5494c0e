// SPDX-License-Identifier: EPL-2.0

package utils

// CubicInterpolate evaluates the Catmull-Rom spline through four consecutive
// samples at x in [0, 1]; x = 0 yields y1 and x = 1 yields y2.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a := (y3 - y0 + 3*(y1-y2)) * 0.5
	b := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	c := (y2 - y0) * 0.5

	return ((a*x+b)*x+c)*x + y1
}
