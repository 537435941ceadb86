//go:build fastmath

package ladder

import "github.com/meko-christian/algo-approx"

func expNeg(x float64) float64 {
	return approx.FastExp(-x)
}
