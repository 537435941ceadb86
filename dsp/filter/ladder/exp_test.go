//go:build !fastmath

package ladder

import (
	"math"
	"testing"
)

func TestExpNegExact(t *testing.T) {
	for x := 0.0; x <= 3; x += 0.01 {
		if got, want := expNeg(x), math.Exp(-x); got != want {
			t.Fatalf("expNeg(%v) = %v, want %v", x, got, want)
		}
	}
}
