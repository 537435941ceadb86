package osc

import (
	"fmt"
	"math"

	"github.com/beduk0/OTTO/dsp/core"
)

const (
	// MinPulseWidth and MaxPulseWidth bound the pulse duty cycle.
	MinPulseWidth = 0.01
	MaxPulseWidth = 0.99

	defaultPulseWidth = 0.5
	defaultMorph      = 1.0

	// integratorLeak keeps the triangle integrator from drifting; at 48 kHz
	// its corner sits near 4 Hz.
	integratorLeak = 0.9995

	// maxIncrement keeps the phase step below Nyquist.
	maxIncrement = 0.4999

	minTriangleDenominator = 1e-3
)

// Oscillator is a phase-accumulator oscillator producing a morphing pulse
// and its leaky integral from the same phase.
type Oscillator struct {
	sampleRate float64
	freqHz     float64
	inc        float64
	phase      float64

	morph  float64
	sawMix float64
	width  float64

	integral float64
}

// New constructs an oscillator at 0 Hz with a square pulse.
func New(sampleRate float64) (*Oscillator, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("osc: sample rate must be > 0 and finite: %f", sampleRate)
	}

	o := &Oscillator{sampleRate: sampleRate, width: defaultPulseWidth}
	o.SetMorph(defaultMorph)

	return o, nil
}

// SampleRate returns the sample rate in Hz.
func (o *Oscillator) SampleRate() float64 { return o.sampleRate }

// SetSampleRate updates the sample rate and recomputes the phase increment.
func (o *Oscillator) SetSampleRate(sampleRate float64) error {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("osc: sample rate must be > 0 and finite: %f", sampleRate)
	}

	o.sampleRate = sampleRate
	o.SetFrequency(o.freqHz)

	return nil
}

// SetFrequency sets the oscillator pitch. Negative or non-finite values
// produce silence; values at or above Nyquist are limited just below it.
func (o *Oscillator) SetFrequency(hz float64) {
	if !core.IsFinite(hz) || hz < 0 {
		hz = 0
	}

	o.freqHz = hz
	o.inc = math.Min(hz/o.sampleRate, maxIncrement)
}

// Frequency returns the last frequency set in Hz.
func (o *Oscillator) Frequency() float64 { return o.freqHz }

// SetMorph sets the waveform shape in [-1, 1]: 1 is a pure pulse, -1 a pure
// sawtooth, values between blend the two linearly.
func (o *Oscillator) SetMorph(morph float64) {
	o.morph = core.Clamp(core.Sanitize(morph), -1, 1)
	o.sawMix = 0.5 * (1 - o.morph)
}

// Morph returns the clamped waveform shape.
func (o *Oscillator) Morph() float64 { return o.morph }

// SetPulseWidth sets the pulse duty cycle, limited to [MinPulseWidth, MaxPulseWidth].
func (o *Oscillator) SetPulseWidth(width float64) {
	if !core.IsFinite(width) {
		width = defaultPulseWidth
	}

	o.width = core.Clamp(width, MinPulseWidth, MaxPulseWidth)
}

// PulseWidth returns the clamped duty cycle.
func (o *Oscillator) PulseWidth() float64 { return o.width }

// Phase returns the current phase in [0, 1).
func (o *Oscillator) Phase() float64 { return o.phase }

// SetPhase moves the phase accumulator.
func (o *Oscillator) SetPhase(phase float64) {
	o.phase = core.Wrap01(phase)
}

// Reset clears phase and integrator state.
func (o *Oscillator) Reset() {
	o.phase = 0
	o.integral = 0
}

// Next returns the band-limited pulse and its leaky integral at the current
// phase, then advances by one sample.
//
// The integral accumulates half the zero-mean pulse per sample, so scaling
// it by TriangleScale with the pulse duty yields a triangle of peak 1.
func (o *Oscillator) Next() (pulse, integral float64) {
	t, dt := o.phase, o.inc

	square := -1.0
	if t < o.width {
		square = 1
	}

	square += polyBLEP(t, dt)
	square -= polyBLEP(core.Wrap01(t+1-o.width), dt)

	saw := 2*t - 1 - polyBLEP(t, dt)

	pulse = (1-o.sawMix)*square + o.sawMix*saw
	mean := (1 - o.sawMix) * (2*o.width - 1)

	o.integral = core.FlushDenormals(integratorLeak*o.integral + 0.5*(pulse-mean))

	o.phase += dt
	if o.phase >= 1 {
		o.phase -= 1
	}

	return pulse, o.integral
}

// TriangleScale returns the gain 2*cps/(d*(1-d)) that turns the oscillator
// integral into a triangle of consistent amplitude across duty cycle d and
// pitch, where cps is frequency divided by sample rate. The denominator is
// kept at least 1e-3 away from zero.
func TriangleScale(cyclesPerSample, d float64) float64 {
	den := d * (1 - d)
	if math.Abs(den) < minTriangleDenominator {
		if den < 0 {
			den = -minTriangleDenominator
		} else {
			den = minTriangleDenominator
		}
	}

	return 2 * cyclesPerSample / den
}
