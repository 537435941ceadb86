package ladder

import (
	"fmt"
	"math"
)

const (
	defaultCutoffHz  = 1000.0
	defaultResonance = 0.0
	defaultDrive     = 1.0

	// MinCutoffHz is the lowest cutoff SetCutoff will apply.
	MinCutoffHz = 10.0
	// MaxCutoffRatio limits the cutoff to this fraction of the sample rate.
	MaxCutoffRatio = 0.45

	maxResonance = 4.0
	minDrive     = 0.1
	maxDrive     = 24.0

	thermalVoltage = 5.0
	stateLimit     = 32.0
)

// Variant selects the stage saturation function.
type Variant int

const (
	// VariantHuovilainen uses exact tanh.
	VariantHuovilainen Variant = iota
	// VariantLightweight replaces tanh with a rational approximation.
	VariantLightweight
)

func (v Variant) String() string {
	switch v {
	case VariantHuovilainen:
		return "huovilainen"
	case VariantLightweight:
		return "lightweight"
	default:
		return "unknown"
	}
}

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	variant   Variant
	cutoffHz  float64
	resonance float64
	drive     float64
}

func defaultConfig() config {
	return config{
		variant:   VariantHuovilainen,
		cutoffHz:  defaultCutoffHz,
		resonance: defaultResonance,
		drive:     defaultDrive,
	}
}

// WithVariant selects the saturation variant.
func WithVariant(variant Variant) Option {
	return func(cfg *config) error {
		if variant != VariantHuovilainen && variant != VariantLightweight {
			return fmt.Errorf("ladder: invalid variant: %d", variant)
		}

		cfg.variant = variant

		return nil
	}
}

// WithCutoffHz sets the initial cutoff. Must be finite and > 0.
func WithCutoffHz(cutoffHz float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(cutoffHz, math.SmallestNonzeroFloat64, math.Inf(1), "cutoff"); err != nil {
			return err
		}

		cfg.cutoffHz = cutoffHz

		return nil
	}
}

// WithResonance sets feedback resonance in [0, 4].
func WithResonance(resonance float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(resonance, 0, maxResonance, "resonance"); err != nil {
			return err
		}

		cfg.resonance = resonance

		return nil
	}
}

// WithDrive sets input drive in [0.1, 24].
func WithDrive(drive float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(drive, minDrive, maxDrive, "drive"); err != nil {
			return err
		}

		cfg.drive = drive

		return nil
	}
}

// Filter is a nonlinear 4-stage ladder low-pass.
type Filter struct {
	sampleRate float64
	variant    Variant
	cutoffHz   float64
	resonance  float64
	drive      float64

	tanh        func(float64) float64
	coefficient float64
	feedback    float64
	driveScale  float64
	outputScale float64

	stage [4]float64
}

// New constructs a ladder filter.
func New(sampleRate float64, opts ...Option) (*Filter, error) {
	if !isFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("ladder: sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	f := &Filter{
		sampleRate: sampleRate,
		variant:    cfg.variant,
		resonance:  cfg.resonance,
		drive:      cfg.drive,
	}

	f.tanh = math.Tanh
	if f.variant == VariantLightweight {
		f.tanh = fastTanhApprox
	}

	f.driveScale = 0.5 * f.drive / thermalVoltage
	f.cutoffHz = f.limitCutoff(cfg.cutoffHz)
	f.retune()

	return f, nil
}

// SampleRate returns the sample rate in Hz.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// Variant returns the saturation variant.
func (f *Filter) Variant() Variant { return f.variant }

// CutoffHz returns the applied (clamped) cutoff in Hz.
func (f *Filter) CutoffHz() float64 { return f.cutoffHz }

// Resonance returns the feedback resonance.
func (f *Filter) Resonance() float64 { return f.resonance }

// Drive returns the input drive.
func (f *Filter) Drive() float64 { return f.drive }

// SetSampleRate updates the sample rate and re-applies the cutoff.
func (f *Filter) SetSampleRate(sampleRate float64) error {
	if !isFinite(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("ladder: sample rate must be > 0 and finite: %f", sampleRate)
	}

	f.sampleRate = sampleRate
	f.cutoffHz = f.limitCutoff(f.cutoffHz)
	f.retune()

	return nil
}

// SetCutoff sets the cutoff, clamped to [MinCutoffHz, MaxCutoffRatio*sampleRate].
// Non-finite values leave the cutoff unchanged.
func (f *Filter) SetCutoff(hz float64) {
	if !isFinite(hz) {
		return
	}

	hz = f.limitCutoff(hz)
	if hz == f.cutoffHz {
		return
	}

	f.cutoffHz = hz
	f.retune()
}

// SetResonance updates resonance in [0, 4].
func (f *Filter) SetResonance(resonance float64) error {
	if err := validateFiniteRange(resonance, 0, maxResonance, "resonance"); err != nil {
		return err
	}

	f.resonance = resonance
	f.retune()

	return nil
}

// SetDrive updates input drive in [0.1, 24].
func (f *Filter) SetDrive(drive float64) error {
	if err := validateFiniteRange(drive, minDrive, maxDrive, "drive"); err != nil {
		return err
	}

	f.drive = drive
	f.driveScale = 0.5 * f.drive / thermalVoltage

	return nil
}

// Reset clears ladder state.
func (f *Filter) Reset() {
	f.stage = [4]float64{}
}

// ProcessSample filters one sample. Non-finite input is treated as silence
// and the output is always finite.
func (f *Filter) ProcessSample(input float64) float64 {
	if !isFinite(input) {
		input = 0
	}

	shape, g := f.driveScale, f.coefficient

	in := f.tanh(shape * (input - f.feedback*f.stage[3]))

	for i := range f.stage {
		y := clipState(f.stage[i] + g*(in-f.tanh(shape*f.stage[i])))
		f.stage[i] = y
		in = f.tanh(shape * y)
	}

	out := f.outputScale * f.stage[3]
	if !isFinite(out) {
		return 0
	}

	return out
}

// ProcessInPlace filters a mono buffer in place.
func (f *Filter) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = f.ProcessSample(buf[i])
	}
}

func (f *Filter) limitCutoff(hz float64) float64 {
	hi := f.sampleRate * MaxCutoffRatio
	if hz < MinCutoffHz {
		return MinCutoffHz
	}

	if hz > hi {
		return hi
	}

	return hz
}

// retune recomputes the stage coefficient and feedback for the current
// cutoff and resonance.
func (f *Filter) retune() {
	fc := f.cutoffHz / f.sampleRate

	fcr := 1.8730*fc*fc*fc + 0.4955*fc*fc - 0.6490*fc + 0.9988
	if fcr < 0 {
		fcr = 0
	}

	f.coefficient = 2 * thermalVoltage * (1 - expNeg(2*math.Pi*fcr*fc))

	resonanceComp := -3.9364*fc*fc + 1.8409*fc + 0.9968
	if resonanceComp < 0 {
		resonanceComp = 0
	}

	f.feedback = f.resonance * resonanceComp
	f.outputScale = 1 + f.feedback
}

func validateFiniteRange(value, min, max float64, name string) error {
	if !isFinite(value) {
		return fmt.Errorf("ladder: %s must be finite: %v", name, value)
	}

	if value < min || value > max {
		return fmt.Errorf("ladder: %s must be in [%g, %g]: %f", name, min, max, value)
	}

	return nil
}

func clipState(value float64) float64 {
	if value > stateLimit {
		return stateLimit
	}

	if value < -stateLimit {
		return -stateLimit
	}

	return value
}

func fastTanhApprox(x float64) float64 {
	if x > 3 {
		return 1
	}

	if x < -3 {
		return -1
	}

	x2 := x * x

	return x * (27 + x2) / (27 + 9*x2)
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
