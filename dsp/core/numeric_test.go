package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 0.9999, expected: 0.9999},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLerpEndpointsExact(t *testing.T) {
	if got := Lerp(0.01, 0.99, 0); got != 0.01 {
		t.Fatalf("Lerp(t=0) = %v, want 0.01", got)
	}
	if got := Lerp(0.01, 0.99, 1); got != 0.99 {
		t.Fatalf("Lerp(t=1) = %v, want 0.99", got)
	}
	if got := Lerp(0, 2, 0.25); got != 0.5 {
		t.Fatalf("Lerp(t=0.25) = %v, want 0.5", got)
	}
}

func TestWrap01(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.25, 0.25},
		{1, 0},
		{1.5, 0.5},
		{-0.25, 0.75},
	}
	for _, tt := range tests {
		if got := Wrap01(tt.in); math.Abs(got-tt.want) > 1e-15 {
			t.Fatalf("Wrap01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestSanitize(t *testing.T) {
	if Sanitize(math.NaN()) != 0 || Sanitize(math.Inf(1)) != 0 {
		t.Fatal("expected non-finite values to map to zero")
	}
	if Sanitize(0.3) != 0.3 {
		t.Fatal("expected finite value to pass through")
	}
	if FlushDenormals(1e-40) != 0 {
		t.Fatal("expected denormal to flush")
	}
}
