package osc

import (
	"fmt"

	"github.com/beduk0/OTTO/dsp/core"
)

// LFO is a bipolar triangle low-frequency oscillator.
type LFO struct {
	sampleRate float64
	rateHz     float64
	inc        float64
	phase      float64
}

// NewLFO constructs an LFO running at 1 Hz from phase 0.
func NewLFO(sampleRate float64) (*LFO, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("osc: lfo sample rate must be > 0 and finite: %f", sampleRate)
	}

	l := &LFO{sampleRate: sampleRate}
	l.SetRate(1)

	return l, nil
}

// SetSampleRate updates the sample rate and keeps the rate in Hz.
func (l *LFO) SetSampleRate(sampleRate float64) error {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("osc: lfo sample rate must be > 0 and finite: %f", sampleRate)
	}

	l.sampleRate = sampleRate
	l.SetRate(l.rateHz)

	return nil
}

// SetRate sets the rate in Hz. Zero freezes the phase; negative or
// non-finite values are treated as zero.
func (l *LFO) SetRate(hz float64) {
	if !core.IsFinite(hz) || hz < 0 {
		hz = 0
	}

	l.rateHz = hz
	l.inc = hz / l.sampleRate
}

// Rate returns the rate in Hz.
func (l *LFO) Rate() float64 { return l.rateHz }

// Phase returns the current phase in [0, 1).
func (l *LFO) Phase() float64 { return l.phase }

// SetPhase moves the phase.
func (l *LFO) SetPhase(phase float64) { l.phase = core.Wrap01(phase) }

// Reset returns the phase to 0.
func (l *LFO) Reset() { l.phase = 0 }

// Tri returns the triangle value at the current phase without advancing.
// It starts at 0, peaks at +1 at a quarter cycle and reaches -1 at three
// quarters.
func (l *LFO) Tri() float64 {
	p := l.phase
	switch {
	case p < 0.25:
		return 4 * p
	case p < 0.75:
		return 2 - 4*p
	default:
		return 4*p - 4
	}
}

// Advance moves the phase forward by frames samples.
func (l *LFO) Advance(frames int) {
	if frames <= 0 || l.inc == 0 {
		return
	}

	l.phase = core.Wrap01(l.phase + l.inc*float64(frames))
}

// Next returns Tri and advances by one sample.
func (l *LFO) Next() float64 {
	v := l.Tri()
	l.Advance(1)

	return v
}
