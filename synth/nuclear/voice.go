package nuclear

import (
	"fmt"
	"math"

	"github.com/beduk0/OTTO/dsp/envelope"
	"github.com/beduk0/OTTO/dsp/filter/ladder"
	"github.com/beduk0/OTTO/dsp/osc"
	"github.com/beduk0/OTTO/dsp/prop"
)

// VoiceConfig holds the per-voice settings that are not properties.
type VoiceConfig struct {
	Envelope  envelope.Config
	Resonance float64
	Drive     float64
	Variant   ladder.Variant
}

// DefaultVoiceConfig returns the envelope defaults and a non-resonant
// Huovilainen ladder at unity drive.
func DefaultVoiceConfig() VoiceConfig {
	return VoiceConfig{
		Envelope: envelope.DefaultConfig(),
		Drive:    1,
		Variant:  ladder.VariantHuovilainen,
	}
}

// Voice renders one note: a morphing pulse and its integrated triangle,
// cross-faded by mix and passed through a ladder low-pass whose cutoff
// follows the amplitude envelope.
type Voice struct {
	props      *Props
	sampleRate float64
	hz         float64
	morph      float64

	osc    *osc.Oscillator
	filter *ladder.Filter
	env    *envelope.ADSR

	subs prop.Group
}

// NewVoice builds a voice subscribed to the morph, pulse width and filter
// properties. Each subscription is applied immediately.
func NewVoice(props *Props, sampleRate float64, cfg VoiceConfig) (*Voice, error) {
	if props == nil {
		return nil, fmt.Errorf("nuclear: voice needs props")
	}

	o, err := osc.New(sampleRate)
	if err != nil {
		return nil, err
	}

	f, err := ladder.New(sampleRate,
		ladder.WithResonance(cfg.Resonance),
		ladder.WithDrive(cfg.Drive),
		ladder.WithVariant(cfg.Variant),
	)
	if err != nil {
		return nil, err
	}

	env, err := envelope.New(sampleRate, cfg.Envelope)
	if err != nil {
		return nil, err
	}

	v := &Voice{
		props:      props,
		sampleRate: sampleRate,
		osc:        o,
		filter:     f,
		env:        env,
	}

	v.subs.Add(props.Morph.OnChange(v.setMorph).CallNow())
	v.subs.Add(props.PulseWidth.OnChange(o.SetPulseWidth).CallNow())
	v.subs.Add(props.FilterFrequency.OnChange(f.SetCutoff).CallNow())

	return v, nil
}

func (v *Voice) setMorph(m float64) {
	v.morph = m
	v.osc.SetMorph(m)
}

// SetFrequency sets the note pitch in Hz.
func (v *Voice) SetFrequency(hz float64) { v.hz = hz }

// Frequency returns the note pitch in Hz.
func (v *Voice) Frequency() float64 { return v.hz }

// OnNoteOn is called by the voice manager when the slot starts a note.
// Phase and filter state carry over; resetting them is left to the caller.
func (v *Voice) OnNoteOn(float64) {}

// Envelope returns the amplitude envelope.
func (v *Voice) Envelope() *envelope.ADSR { return v.env }

// CutoffHz returns the filter cutoff applied by the last sample.
func (v *Voice) CutoffHz() float64 { return v.filter.CutoffHz() }

// Next renders one sample. It advances the oscillator and the envelope.
func (v *Voice) Next() float64 {
	v.osc.SetFrequency(v.hz)
	pulse, integral := v.osc.Next()

	cps := v.osc.Frequency() / v.sampleRate
	d := v.morph / (math.Pi / 2)
	tri := integral * osc.TriangleScale(cps, d)

	env := v.env.Next()
	v.filter.SetCutoff(v.props.FilterFrequency.Get() + env*v.props.EnvelopeAmount.Get())

	mix := v.props.Mix.Get()

	return v.filter.ProcessSample(tri*mix + pulse*(1-mix))
}

// SetSampleRate retunes the oscillator, filter and envelope.
func (v *Voice) SetSampleRate(sampleRate float64) error {
	if err := v.osc.SetSampleRate(sampleRate); err != nil {
		return err
	}

	if err := v.filter.SetSampleRate(sampleRate); err != nil {
		return err
	}

	if err := v.env.SetSampleRate(sampleRate); err != nil {
		return err
	}

	v.sampleRate = sampleRate

	return nil
}

// Reset clears oscillator, filter and envelope state.
func (v *Voice) Reset() {
	v.osc.Reset()
	v.filter.Reset()
	v.env.Reset()
}

// Close removes every subscription the voice holds.
func (v *Voice) Close() { v.subs.Close() }
