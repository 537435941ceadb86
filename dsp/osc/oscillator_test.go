package osc

import (
	"math"
	"testing"

	"github.com/beduk0/OTTO/dsp/analysis"
	"github.com/beduk0/OTTO/internal/testutil"
)

func newTestOscillator(t *testing.T, freq float64) *Oscillator {
	t.Helper()

	o, err := New(48000)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	o.SetFrequency(freq)

	return o
}

func TestNewValidation(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := New(math.NaN()); err == nil {
		t.Fatal("expected error for NaN sample rate")
	}
	if _, err := NewLFO(-1); err == nil {
		t.Fatal("expected error for negative lfo sample rate")
	}
}

func TestParameterClamping(t *testing.T) {
	o := newTestOscillator(t, 440)

	o.SetPulseWidth(1.3)
	if got := o.PulseWidth(); got != MaxPulseWidth {
		t.Fatalf("PulseWidth() = %v, want %v", got, MaxPulseWidth)
	}

	o.SetPulseWidth(-1)
	if got := o.PulseWidth(); got != MinPulseWidth {
		t.Fatalf("PulseWidth() = %v, want %v", got, MinPulseWidth)
	}

	o.SetMorph(1.66)
	if got := o.Morph(); got != 1 {
		t.Fatalf("Morph() = %v, want 1", got)
	}

	o.SetFrequency(1e9)
	if o.inc >= 0.5 {
		t.Fatalf("phase increment %v not below Nyquist", o.inc)
	}

	o.SetFrequency(math.Inf(1))
	if got := o.Frequency(); got != 0 {
		t.Fatalf("Frequency() = %v, want 0 for Inf", got)
	}
}

func TestPulseIsBounded(t *testing.T) {
	for _, morph := range []float64{-1, -0.5, 0, 0.2, 1} {
		for _, width := range []float64{0.01, 0.3, 0.5, 0.99} {
			o := newTestOscillator(t, 1234.5)
			o.SetMorph(morph)
			o.SetPulseWidth(width)

			for i := range 4800 {
				pulse, integral := o.Next()
				if math.Abs(pulse) > 1+1e-12 {
					t.Fatalf("morph=%v width=%v sample %d: |pulse| = %v > 1", morph, width, i, pulse)
				}
				if !isFinite(integral) {
					t.Fatalf("morph=%v width=%v sample %d: integral not finite", morph, width, i)
				}
			}
		}
	}
}

func TestPulseDutyCycle(t *testing.T) {
	o := newTestOscillator(t, 480)
	o.SetPulseWidth(0.25)

	high := 0
	const n = 48000
	for range n {
		if pulse, _ := o.Next(); pulse > 0 {
			high++
		}
	}

	duty := float64(high) / n
	if math.Abs(duty-0.25) > 0.02 {
		t.Fatalf("duty = %v, want about 0.25", duty)
	}
}

func TestSawMorph(t *testing.T) {
	o := newTestOscillator(t, 480)
	o.SetMorph(-1)

	// Away from the wrap the sawtooth is the naive ramp.
	o.SetPhase(0.5)
	pulse, _ := o.Next()
	if math.Abs(pulse) > 1e-12 {
		t.Fatalf("saw at phase 0.5 = %v, want 0", pulse)
	}
}

func TestIntegratedTriangleAmplitude(t *testing.T) {
	const (
		sampleRate = 48000.0
		freq       = 480.0
		width      = 0.5
	)

	o := newTestOscillator(t, freq)
	o.SetPulseWidth(width)

	scale := TriangleScale(freq/sampleRate, width)

	for range 30000 {
		o.Next()
	}

	tri := make([]float64, 2000)
	for i := range tri {
		_, integral := o.Next()
		tri[i] = integral * scale
	}

	p2p := testutil.PeakToPeak(tri)
	if p2p < 1.9 || p2p > 2.05 {
		t.Fatalf("triangle peak-to-peak = %v, want about 2", p2p)
	}

	mean := 0.0
	for _, v := range tri {
		mean += v
	}
	mean /= float64(len(tri))
	if math.Abs(mean) > 0.05 {
		t.Fatalf("triangle mean = %v, want about 0", mean)
	}
}

func TestTriangleHasLessHighBandEnergy(t *testing.T) {
	const (
		sampleRate = 48000.0
		freq       = 440.0
		n          = 8192
	)

	o := newTestOscillator(t, freq)
	scale := TriangleScale(freq/sampleRate, 0.5)

	for range 20000 {
		o.Next()
	}

	pulse := make([]float64, n)
	tri := make([]float64, n)
	for i := range n {
		p, integral := o.Next()
		pulse[i] = p
		tri[i] = integral * scale
	}

	ps, err := analysis.Analyze(pulse, sampleRate)
	if err != nil {
		t.Fatalf("Analyze(pulse) error = %v", err)
	}
	ts, err := analysis.Analyze(tri, sampleRate)
	if err != nil {
		t.Fatalf("Analyze(tri) error = %v", err)
	}

	pulseHigh := ps.BandPower(5000, 20000)
	triHigh := ts.BandPower(5000, 20000)
	if triHigh >= 0.1*pulseHigh {
		t.Fatalf("triangle high band %g not well below pulse high band %g", triHigh, pulseHigh)
	}

	if peak, _ := ts.Peak(); math.Abs(peak-freq) > 2*ts.BinHz() {
		t.Fatalf("triangle peak at %v Hz, want near %v", peak, freq)
	}
}

func TestTriangleScale(t *testing.T) {
	testutil.RequireNearlyEqual(t, TriangleScale(0.01, 0.5), 0.08, 1e-15, "scale(0.01, 0.5)")

	if got := TriangleScale(0.01, 0); !isFinite(got) || got <= 0 {
		t.Fatalf("TriangleScale(d=0) = %v, want finite positive", got)
	}
	if got := TriangleScale(0.01, 1); !isFinite(got) || got <= 0 {
		t.Fatalf("TriangleScale(d=1) = %v, want finite positive", got)
	}
	if got := TriangleScale(0.01, -0.318); got >= 0 {
		t.Fatalf("TriangleScale(d<0) = %v, want negative", got)
	}
}

func TestTriangleScaleBoundedNearSingularities(t *testing.T) {
	const cps = 440.0 / 48000
	limit := 2 * cps / minTriangleDenominator

	for _, center := range []float64{0, 1} {
		for i := -200; i <= 200; i++ {
			d := center + float64(i)*1e-5

			got := TriangleScale(cps, d)
			if !isFinite(got) || math.Abs(got) > limit {
				t.Fatalf("TriangleScale(%v, %v) = %v, want finite with magnitude <= %v", cps, d, got, limit)
			}
		}
	}
}

func TestResetClearsState(t *testing.T) {
	o := newTestOscillator(t, 440)
	for range 100 {
		o.Next()
	}

	o.Reset()
	if o.Phase() != 0 || o.integral != 0 {
		t.Fatalf("after Reset phase=%v integral=%v, want 0", o.Phase(), o.integral)
	}
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func BenchmarkOscillatorNext(b *testing.B) {
	o, err := New(48000)
	if err != nil {
		b.Fatal(err)
	}

	o.SetFrequency(220)
	o.SetPulseWidth(0.3)
	o.SetMorph(0.2)

	b.ResetTimer()
	for range b.N {
		o.Next()
	}
}
