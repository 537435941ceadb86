// Package envelope provides the linear ADSR amplitude envelope carried by
// every voice.
package envelope

import (
	"errors"
	"fmt"
	"math"
)

// Stage identifies the envelope segment currently running.
type Stage int

const (
	StageIdle Stage = iota
	StageAttack
	StageDecay
	StageSustain
	StageRelease
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageAttack:
		return "attack"
	case StageDecay:
		return "decay"
	case StageSustain:
		return "sustain"
	case StageRelease:
		return "release"
	default:
		return "unknown"
	}
}

// Config holds segment durations in seconds and the sustain level in [0, 1].
type Config struct {
	Attack  float64 `yaml:"attack"`
	Decay   float64 `yaml:"decay"`
	Sustain float64 `yaml:"sustain"`
	Release float64 `yaml:"release"`
}

// DefaultConfig returns a short plucked-pad envelope.
func DefaultConfig() Config {
	return Config{
		Attack:  0.005,
		Decay:   0.2,
		Sustain: 0.7,
		Release: 0.3,
	}
}

// Validate reports every out-of-range field.
func (c Config) Validate() error {
	var errs []error

	check := func(name string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			errs = append(errs, fmt.Errorf("envelope: %s must be >= 0 and finite: %v", name, v))
		}
	}

	check("attack", c.Attack)
	check("decay", c.Decay)
	check("release", c.Release)

	if math.IsNaN(c.Sustain) || c.Sustain < 0 || c.Sustain > 1 {
		errs = append(errs, fmt.Errorf("envelope: sustain must be in [0, 1]: %v", c.Sustain))
	}

	return errors.Join(errs...)
}

// ADSR is a linear attack/decay/sustain/release generator advanced one
// sample per Next call.
type ADSR struct {
	sampleRate float64
	cfg        Config

	stage Stage
	value float64

	attackInc  float64
	decayDec   float64
	releaseDec float64
}

// New constructs an idle envelope.
func New(sampleRate float64, cfg Config) (*ADSR, error) {
	if math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) || sampleRate <= 0 {
		return nil, fmt.Errorf("envelope: sample rate must be > 0 and finite: %f", sampleRate)
	}

	e := &ADSR{sampleRate: sampleRate}
	if err := e.SetConfig(cfg); err != nil {
		return nil, err
	}

	return e, nil
}

// Config returns the current configuration.
func (e *ADSR) Config() Config { return e.cfg }

// SetConfig validates and applies cfg. A running release keeps its slope.
func (e *ADSR) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	e.cfg = cfg
	e.rebuild()

	return nil
}

// SetSampleRate updates the sample rate and recomputes slopes.
func (e *ADSR) SetSampleRate(sampleRate float64) error {
	if math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) || sampleRate <= 0 {
		return fmt.Errorf("envelope: sample rate must be > 0 and finite: %f", sampleRate)
	}

	e.sampleRate = sampleRate
	e.rebuild()

	return nil
}

// Trigger starts the attack from the current level.
func (e *ADSR) Trigger() {
	e.stage = StageAttack
}

// Release starts the release segment, which reaches zero after
// Config.Release seconds from whatever level the envelope is at.
func (e *ADSR) Release() {
	if e.stage == StageIdle || e.stage == StageRelease {
		return
	}

	e.stage = StageRelease
	e.releaseDec = e.slope(e.cfg.Release, e.value)
}

// Reset silences the envelope immediately.
func (e *ADSR) Reset() {
	e.stage = StageIdle
	e.value = 0
}

// Stage returns the running segment.
func (e *ADSR) Stage() Stage { return e.stage }

// Value returns the level produced by the last Next call.
func (e *ADSR) Value() float64 { return e.value }

// Active reports whether the envelope is anywhere but idle.
func (e *ADSR) Active() bool { return e.stage != StageIdle }

// Next advances one sample and returns the new level.
func (e *ADSR) Next() float64 {
	switch e.stage {
	case StageAttack:
		e.value += e.attackInc
		if e.value >= 1 {
			e.value = 1
			e.stage = StageDecay
		}
	case StageDecay:
		e.value -= e.decayDec
		if e.value <= e.cfg.Sustain {
			e.value = e.cfg.Sustain
			e.stage = StageSustain
		}
	case StageSustain:
		e.value = e.cfg.Sustain
	case StageRelease:
		e.value -= e.releaseDec
		if e.value <= 0 {
			e.value = 0
			e.stage = StageIdle
		}
	default:
		e.value = 0
	}

	return e.value
}

func (e *ADSR) rebuild() {
	e.attackInc = e.slope(e.cfg.Attack, 1)
	e.decayDec = e.slope(e.cfg.Decay, 1-e.cfg.Sustain)
}

// slope returns the per-sample change that covers span in seconds; zero
// durations cover it in one sample.
func (e *ADSR) slope(seconds, span float64) float64 {
	samples := seconds * e.sampleRate
	if samples < 1 {
		return span
	}

	return span / samples
}
