package nuclear

import (
	"fmt"

	"github.com/beduk0/OTTO/dsp/osc"
	"github.com/beduk0/OTTO/dsp/prop"
)

// maxLFORate is the LFO rate at full modulation depth.
const maxLFORate = 20.0

// LFORate returns the LFO rate in Hz for modulation depth d: 20*d*d.
func LFORate(d float64) float64 {
	return maxLFORate * d * d
}

// ModulationAmplitude returns the LFO depth for modulation control d. It
// rises linearly from 0 at d=0 to 1 at d=0.5 and falls back to 0 at d=1.
func ModulationAmplitude(d float64) float64 {
	if d < 0.5 {
		return 2 * d
	}

	return 2 * (1 - d)
}

// ModulationStage owns the shared LFO and MorphEngine and publishes the
// modulated morph, pulse width and mix once per block.
type ModulationStage struct {
	props *Props
	lfo   *osc.LFO
	morph *MorphEngine

	amplitude float64
	lfoValue  float64

	subs prop.Group
}

// NewModulationStage subscribes to props.Modulation and props.Wave. Both
// callbacks run once immediately, so the engine has a center and an LFO
// setting before the first block.
func NewModulationStage(props *Props, morph *MorphEngine, sampleRate float64) (*ModulationStage, error) {
	if props == nil || morph == nil {
		return nil, fmt.Errorf("nuclear: modulation stage needs props and a morph engine")
	}

	lfo, err := osc.NewLFO(sampleRate)
	if err != nil {
		return nil, err
	}

	m := &ModulationStage{props: props, lfo: lfo, morph: morph}

	m.subs.Add(props.Modulation.OnChange(m.setDepth).CallNow())
	m.subs.Add(props.Wave.OnChange(morph.SetControl).CallNow())

	return m, nil
}

func (m *ModulationStage) setDepth(d float64) {
	m.lfo.SetRate(LFORate(d))
	m.amplitude = ModulationAmplitude(d)
}

// Process samples the LFO at its current phase, publishes the modulated
// waypoint and advances the LFO by frames samples.
func (m *ModulationStage) Process(frames int) {
	m.lfoValue = m.lfo.Tri() * m.amplitude

	p := m.props
	w := m.morph.Compute(m.lfoValue, p.MorphScale.Get(), p.PulseWidthScale.Get(), p.MixScale.Get())

	p.Morph.Set(w[AxisMorph])
	p.PulseWidth.Set(w[AxisPulseWidth])
	p.Mix.Set(w[AxisMix])

	m.lfo.Advance(frames)
}

// LFOValue returns the scaled LFO value used by the last Process call.
func (m *ModulationStage) LFOValue() float64 { return m.lfoValue }

// Amplitude returns the current LFO depth.
func (m *ModulationStage) Amplitude() float64 { return m.amplitude }

// Rate returns the current LFO rate in Hz.
func (m *ModulationStage) Rate() float64 { return m.lfo.Rate() }

// MorphEngine returns the engine driven by the wave control.
func (m *ModulationStage) MorphEngine() *MorphEngine { return m.morph }

// SetSampleRate retunes the LFO.
func (m *ModulationStage) SetSampleRate(sampleRate float64) error {
	return m.lfo.SetSampleRate(sampleRate)
}

// Reset returns the LFO to phase 0.
func (m *ModulationStage) Reset() {
	m.lfo.Reset()
	m.lfoValue = 0
}

// Close detaches the stage from its properties.
func (m *ModulationStage) Close() { m.subs.Close() }
