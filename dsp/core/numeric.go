// Package core holds numeric helpers and processor configuration shared by
// the dsp and synth packages.
package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
// Swapped bounds are accepted.
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// Lerp interpolates linearly between a and b: a*(1-t) + b*t.
// t = 0 yields a exactly and t = 1 yields b exactly.
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Wrap01 folds phase into [0, 1).
func Wrap01(phase float64) float64 {
	phase -= math.Floor(phase)
	if phase >= 1 {
		return 0
	}

	return phase
}

// NearlyEqual reports whether a and b are equal within eps, using an
// absolute test first and a relative test for larger magnitudes.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return false
	}

	return diff/largest <= eps
}

// FlushDenormals converts tiny denormal-like values to exact zero.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Sanitize returns x, or 0 when x is NaN or infinite.
func Sanitize(x float64) float64 {
	if !IsFinite(x) {
		return 0
	}

	return x
}
