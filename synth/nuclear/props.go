package nuclear

import "github.com/beduk0/OTTO/dsp/prop"

// Property names as used by patches and control surfaces.
const (
	NameWave            = "wave"
	NameModulation      = "modulation"
	NameFilter          = "filter"
	NameEnvelopeAmount  = "envelope_amount"
	NameMorph           = "morph"
	NamePulseWidth      = "pulse_width"
	NameMix             = "mix"
	NameMorphScale      = "morph_scale"
	NamePulseWidthScale = "pulse_width_scale"
	NameMixScale        = "mix_scale"
)

// Props is the property set shared by the modulation stage and all voices.
//
// Wave, Modulation, FilterFrequency and EnvelopeAmount are user controls.
// Morph, PulseWidth and Mix are written by the ModulationStage every block.
// The scale properties are reserved and passed through to MorphEngine.Compute.
type Props struct {
	Wave            *prop.Property[float64]
	Modulation      *prop.Property[float64]
	FilterFrequency *prop.Property[float64]
	EnvelopeAmount  *prop.Property[float64]

	Morph      *prop.Property[float64]
	PulseWidth *prop.Property[float64]
	Mix        *prop.Property[float64]

	MorphScale      *prop.Property[float64]
	PulseWidthScale *prop.Property[float64]
	MixScale        *prop.Property[float64]
}

// NewProps returns the property set at its defaults.
func NewProps() *Props {
	unit := func(name string, value float64) *prop.Property[float64] {
		return prop.New(name, value, prop.WithBounds(0.0, 1.0), prop.WithStep(0.01))
	}

	return &Props{
		Wave:       unit(NameWave, 0),
		Modulation: unit(NameModulation, 0),
		FilterFrequency: prop.New(NameFilter, 1000.0,
			prop.WithBounds(20.0, 18000.0), prop.WithStep(20.0)),
		EnvelopeAmount: prop.New(NameEnvelopeAmount, 0.0,
			prop.WithBounds(0.0, 8000.0), prop.WithStep(50.0)),

		Morph:      prop.New(NameMorph, 1.0, prop.WithBounds(-2.0, 2.0), prop.WithStep(0.01)),
		PulseWidth: prop.New(NamePulseWidth, 0.5, prop.WithBounds(0.01, 0.99), prop.WithStep(0.01)),
		Mix:        unit(NameMix, 0),

		MorphScale:      unit(NameMorphScale, 0),
		PulseWidthScale: unit(NamePulseWidthScale, 0),
		MixScale:        unit(NameMixScale, 0),
	}
}

// All returns every property in a stable order: controls, then modulated
// parameters, then reserved scales.
func (p *Props) All() []*prop.Property[float64] {
	return []*prop.Property[float64]{
		p.Wave, p.Modulation, p.FilterFrequency, p.EnvelopeAmount,
		p.Morph, p.PulseWidth, p.Mix,
		p.MorphScale, p.PulseWidthScale, p.MixScale,
	}
}

// ByName looks a property up by its name.
func (p *Props) ByName(name string) (*prop.Property[float64], bool) {
	for _, q := range p.All() {
		if q.Name() == name {
			return q, true
		}
	}

	return nil, false
}
