package core

import "math"

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// Scale multiplies every sample of buf by gain in place.
func Scale(buf []float64, gain float64) {
	if gain == 1 {
		return
	}

	for i := range buf {
		buf[i] *= gain
	}
}

// PeakAbs returns the largest absolute sample value in buf.
func PeakAbs(buf []float64) float64 {
	peak := 0.0
	for _, v := range buf {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	return peak
}
