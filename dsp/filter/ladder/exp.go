//go:build !fastmath

package ladder

import "math"

func expNeg(x float64) float64 {
	return math.Exp(-x)
}
