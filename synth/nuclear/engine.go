package nuclear

import (
	"errors"
	"fmt"

	"github.com/beduk0/OTTO/dsp/envelope"
	"github.com/beduk0/OTTO/dsp/filter/ladder"
	"github.com/beduk0/OTTO/synth/voices"
)

// DefaultPolyphony is the number of voice slots when WithPolyphony is not
// given.
const DefaultPolyphony = 6

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	polyphony  int
	centers    []Waypoint
	deviations []Waypoint
	voice      VoiceConfig
	gain       float64
}

func defaultConfig() config {
	return config{
		polyphony:  DefaultPolyphony,
		centers:    DefaultCenters(),
		deviations: DefaultDeviations(),
		voice:      DefaultVoiceConfig(),
		gain:       1,
	}
}

// WithPolyphony sets the number of voice slots. Must be > 0.
func WithPolyphony(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return fmt.Errorf("nuclear: polyphony must be > 0: %d", n)
		}

		cfg.polyphony = n

		return nil
	}
}

// WithWaypoints replaces the center and deviation rings.
func WithWaypoints(centers, deviations []Waypoint) Option {
	return func(cfg *config) error {
		cfg.centers = centers
		cfg.deviations = deviations

		return nil
	}
}

// WithEnvelope sets the amplitude envelope of every voice.
func WithEnvelope(env envelope.Config) Option {
	return func(cfg *config) error {
		if err := env.Validate(); err != nil {
			return err
		}

		cfg.voice.Envelope = env

		return nil
	}
}

// WithResonance sets the ladder resonance of every voice, in [0, 4].
func WithResonance(resonance float64) Option {
	return func(cfg *config) error {
		cfg.voice.Resonance = resonance
		return nil
	}
}

// WithDrive sets the ladder input drive of every voice, in [0.1, 24].
func WithDrive(drive float64) Option {
	return func(cfg *config) error {
		cfg.voice.Drive = drive
		return nil
	}
}

// WithFilterVariant selects the ladder saturation variant.
func WithFilterVariant(variant ladder.Variant) Option {
	return func(cfg *config) error {
		cfg.voice.Variant = variant
		return nil
	}
}

// WithGain sets the output gain applied to the voice mix.
func WithGain(gain float64) Option {
	return func(cfg *config) error {
		cfg.gain = gain
		return nil
	}
}

// Engine owns the property set, the modulation stage and the voice pool.
type Engine struct {
	sampleRate float64

	props  *Props
	mod    *ModulationStage
	voices *voices.Manager[*Voice]
}

// New builds an engine with its properties at their defaults.
func New(sampleRate float64, opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	morph, err := NewMorphEngine(cfg.centers, cfg.deviations)
	if err != nil {
		return nil, err
	}

	props := NewProps()

	mod, err := NewModulationStage(props, morph, sampleRate)
	if err != nil {
		return nil, err
	}

	var built []*Voice
	var factory voices.Factory[*Voice] = func(int) (*Voice, voices.PostStage, error) {
		v, err := NewVoice(props, sampleRate, cfg.voice)
		if err != nil {
			return nil, nil, err
		}

		built = append(built, v)

		return v, OutputStage{}, nil
	}

	pool, err := voices.New(mod, cfg.polyphony, factory, voices.WithGain(cfg.gain))
	if err != nil {
		for _, v := range built {
			v.Close()
		}
		mod.Close()

		return nil, err
	}

	return &Engine{
		sampleRate: sampleRate,
		props:      props,
		mod:        mod,
		voices:     pool,
	}, nil
}

// SampleRate returns the sample rate in Hz.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// Props returns the engine's property set.
func (e *Engine) Props() *Props { return e.props }

// Modulation returns the modulation stage.
func (e *Engine) Modulation() *ModulationStage { return e.mod }

// Voices returns the voice pool.
func (e *Engine) Voices() *voices.Manager[*Voice] { return e.voices }

// NoteOn starts a note and returns its slot.
func (e *Engine) NoteOn(key int, hz float64) int { return e.voices.NoteOn(key, hz) }

// NoteOff releases a note.
func (e *Engine) NoteOff(key int) { e.voices.NoteOff(key) }

// SetEnvelope applies env to every voice.
func (e *Engine) SetEnvelope(env envelope.Config) error { return e.voices.SetEnvelope(env) }

// Process renders the next block into block, overwriting it, and returns it.
func (e *Engine) Process(block []float64) []float64 {
	return e.voices.Process(block)
}

// SetSampleRate retunes the LFO and every voice. It must not run
// concurrently with Process.
func (e *Engine) SetSampleRate(sampleRate float64) error {
	if err := e.mod.SetSampleRate(sampleRate); err != nil {
		return err
	}

	var errs []error
	for i := range e.voices.Polyphony() {
		if err := e.voices.Voice(i).SetSampleRate(sampleRate); err != nil {
			errs = append(errs, fmt.Errorf("nuclear: voice %d: %w", i, err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}

	e.sampleRate = sampleRate

	return nil
}

// Reset silences all voices and rewinds the LFO.
func (e *Engine) Reset() {
	e.voices.Reset()
	e.mod.Reset()

	for i := range e.voices.Polyphony() {
		e.voices.Voice(i).Reset()
	}
}

// Close detaches every voice and the modulation stage from the properties.
func (e *Engine) Close() {
	for i := range e.voices.Polyphony() {
		e.voices.Voice(i).Close()
	}

	e.mod.Close()
}
