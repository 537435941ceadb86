package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/beduk0/OTTO/internal/testutil"
)

func TestAnalyzeValidation(t *testing.T) {
	if _, err := Analyze(nil, 48000); !errors.Is(err, ErrEmptySignal) {
		t.Fatalf("Analyze(nil) error = %v, want ErrEmptySignal", err)
	}
	if _, err := Analyze([]float64{1}, 0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}

func TestSinePeak(t *testing.T) {
	const (
		sampleRate = 48000.0
		n          = 4096
	)

	freq := 64 * sampleRate / n
	s, err := Analyze(testutil.Sine(freq, sampleRate, 1, n), sampleRate)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if s.FFTSize != n {
		t.Fatalf("FFTSize = %d, want %d", s.FFTSize, n)
	}

	peak, power := s.Peak()
	if math.Abs(peak-freq) > s.BinHz()/2 {
		t.Fatalf("peak = %v Hz, want %v", peak, freq)
	}

	if math.Abs(power-0.25) > 0.01 {
		t.Fatalf("peak power = %v, want about 0.25", power)
	}
}

func TestBandPowerSeparatesTones(t *testing.T) {
	const sampleRate = 48000.0

	low := testutil.Sine(375, sampleRate, 1, 8192)
	high := testutil.Sine(9000, sampleRate, 0.1, 8192)
	sum := make([]float64, len(low))
	for i := range sum {
		sum[i] = low[i] + high[i]
	}

	s, err := Analyze(sum, sampleRate)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	lowBand := s.BandPower(200, 600)
	highBand := s.BandPower(8000, 10000)
	ratio := highBand / lowBand
	if math.Abs(ratio-0.01) > 0.002 {
		t.Fatalf("high/low band ratio = %v, want about 0.01", ratio)
	}

	if got := s.BandPower(600, 200); got != lowBand {
		t.Fatalf("swapped band = %v, want %v", got, lowBand)
	}
}

func TestHarmonicLevelsOfSquare(t *testing.T) {
	const (
		sampleRate = 48000.0
		freq       = 375.0
		n          = 8192
	)

	sq := make([]float64, n)
	period := sampleRate / freq
	for i := range sq {
		if math.Mod(float64(i), period) < period/2 {
			sq[i] = 1
		} else {
			sq[i] = -1
		}
	}

	s, err := Analyze(sq, sampleRate)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	levels := s.HarmonicLevelsDB(freq, 2)
	if len(levels) != 2 {
		t.Fatalf("len(levels) = %d, want 2", len(levels))
	}

	// Square: no even harmonics, third at 1/3 amplitude (-9.54 dB).
	if levels[0] > -40 {
		t.Fatalf("second harmonic = %v dB, want well below -40", levels[0])
	}
	if math.Abs(levels[1]-(-9.54)) > 0.5 {
		t.Fatalf("third harmonic = %v dB, want about -9.54", levels[1])
	}

	high := s.HarmonicLevelsDB(20000, 1)
	if !math.IsInf(high[0], -1) {
		t.Fatalf("harmonic above Nyquist = %v, want -Inf", high[0])
	}
}

func TestRMS(t *testing.T) {
	if got := RMS(nil); got != 0 {
		t.Fatalf("RMS(nil) = %v, want 0", got)
	}

	testutil.RequireNearlyEqual(t, RMS([]float64{1, -1, 1, -1}), 1, 1e-12, "RMS(square)")
	testutil.RequireNearlyEqual(t, RMS(testutil.Sine(1000, 48000, 1, 48000)), 1/math.Sqrt2, 1e-6, "RMS(sine)")
}
