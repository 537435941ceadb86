// Package patch loads Nuclear patch files and turns them into configured
// engines and note sequences.
//
// A patch is a YAML document:
//
//	sample_rate: 48000
//	block_size: 64
//	polyphony: 6
//	gain: 0.5
//	resonance: 0.4
//	filter_variant: huovilainen
//	envelope: {attack: 0.005, decay: 0.2, sustain: 0.7, release: 0.3}
//	props:
//	  wave: 0.3
//	  modulation: 0.25
//	  filter: 1200
//	  envelope_amount: 3000
//	notes:
//	  - {note: C3, start: 0, length: 1}
//	  - {note: G3, start: 0.5, length: 1.5}
//
// Unknown fields are rejected.
package patch

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/beduk0/OTTO/dsp/core"
	"github.com/beduk0/OTTO/dsp/envelope"
	"github.com/beduk0/OTTO/dsp/filter/ladder"
	"github.com/beduk0/OTTO/synth/nuclear"
)

// Variant names accepted by filter_variant.
var validVariants = map[string]ladder.Variant{
	"":            ladder.VariantHuovilainen,
	"huovilainen": ladder.VariantHuovilainen,
	"lightweight": ladder.VariantLightweight,
}

// Note is one entry of the sequence. Start and Length are in seconds.
type Note struct {
	Note   string  `yaml:"note"`
	Start  float64 `yaml:"start"`
	Length float64 `yaml:"length"`
}

// Patch is the decoded form of a patch file.
type Patch struct {
	SampleRate    float64            `yaml:"sample_rate"`
	BlockSize     int                `yaml:"block_size"`
	Polyphony     int                `yaml:"polyphony"`
	Gain          float64            `yaml:"gain"`
	Resonance     float64            `yaml:"resonance"`
	Drive         float64            `yaml:"drive"`
	FilterVariant string             `yaml:"filter_variant"`
	Envelope      *envelope.Config   `yaml:"envelope"`
	Props         map[string]float64 `yaml:"props"`
	Notes         []Note             `yaml:"notes"`
	Seconds       float64            `yaml:"seconds"`
}

// Default returns a patch with no notes and every setting at the engine
// defaults.
func Default() *Patch {
	proc := core.DefaultProcessorConfig()
	env := envelope.DefaultConfig()

	return &Patch{
		SampleRate: proc.SampleRate,
		BlockSize:  proc.BlockSize,
		Polyphony:  nuclear.DefaultPolyphony,
		Gain:       1,
		Drive:      1,
		Envelope:   &env,
	}
}

// Load reads the patch file at path. It is a wrapper around LoadFromReader.
func Load(path string) (*Patch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("patch: open %q: %w", path, err)
	}
	defer f.Close()

	p, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("patch: parse %q: %w", path, err)
	}

	return p, nil
}

// LoadFromReader decodes a patch from r on top of Default and validates it.
func LoadFromReader(r io.Reader) (*Patch, error) {
	p := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("patch: decode yaml: %w", err)
	}

	if err := Validate(p); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate returns a joined error listing every problem in p.
func Validate(p *Patch) error {
	var errs []error

	if !core.IsFinite(p.SampleRate) || p.SampleRate < 8000 || p.SampleRate > 384000 {
		errs = append(errs, fmt.Errorf("sample_rate must be in [8000, 384000]: %v", p.SampleRate))
	}

	if p.BlockSize <= 0 || p.BlockSize > 8192 {
		errs = append(errs, fmt.Errorf("block_size must be in [1, 8192]: %d", p.BlockSize))
	}

	if p.Polyphony <= 0 || p.Polyphony > 64 {
		errs = append(errs, fmt.Errorf("polyphony must be in [1, 64]: %d", p.Polyphony))
	}

	if !core.IsFinite(p.Gain) || p.Gain < 0 {
		errs = append(errs, fmt.Errorf("gain must be >= 0 and finite: %v", p.Gain))
	}

	if !core.IsFinite(p.Resonance) || p.Resonance < 0 || p.Resonance > 4 {
		errs = append(errs, fmt.Errorf("resonance must be in [0, 4]: %v", p.Resonance))
	}

	if !core.IsFinite(p.Drive) || p.Drive < 0.1 || p.Drive > 24 {
		errs = append(errs, fmt.Errorf("drive must be in [0.1, 24]: %v", p.Drive))
	}

	if _, ok := validVariants[strings.ToLower(p.FilterVariant)]; !ok {
		errs = append(errs, fmt.Errorf("filter_variant %q is invalid; valid values: huovilainen, lightweight", p.FilterVariant))
	}

	if p.Envelope != nil {
		if err := p.Envelope.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	known := nuclear.NewProps()
	for _, name := range slices.Sorted(maps.Keys(p.Props)) {
		if _, ok := known.ByName(name); !ok {
			errs = append(errs, fmt.Errorf("props: unknown property %q", name))
			continue
		}

		if v := p.Props[name]; !core.IsFinite(v) {
			errs = append(errs, fmt.Errorf("props.%s must be finite: %v", name, v))
		}
	}

	for i, n := range p.Notes {
		if _, err := ParseNote(n.Note); err != nil {
			errs = append(errs, fmt.Errorf("notes[%d]: %w", i, err))
		}

		if !core.IsFinite(n.Start) || n.Start < 0 {
			errs = append(errs, fmt.Errorf("notes[%d].start must be >= 0: %v", i, n.Start))
		}

		if !core.IsFinite(n.Length) || n.Length <= 0 {
			errs = append(errs, fmt.Errorf("notes[%d].length must be > 0: %v", i, n.Length))
		}
	}

	if !core.IsFinite(p.Seconds) || p.Seconds < 0 {
		errs = append(errs, fmt.Errorf("seconds must be >= 0: %v", p.Seconds))
	}

	return errors.Join(errs...)
}

// Processor returns the sample rate and block size as processor settings.
func (p *Patch) Processor() core.ProcessorConfig {
	return core.ApplyProcessorOptions(
		core.WithSampleRate(p.SampleRate),
		core.WithBlockSize(p.BlockSize),
	)
}

// Options returns the engine options described by p.
func (p *Patch) Options() []nuclear.Option {
	opts := []nuclear.Option{
		nuclear.WithPolyphony(p.Polyphony),
		nuclear.WithGain(p.Gain),
		nuclear.WithResonance(p.Resonance),
		nuclear.WithDrive(p.Drive),
		nuclear.WithFilterVariant(validVariants[strings.ToLower(p.FilterVariant)]),
	}

	if p.Envelope != nil {
		opts = append(opts, nuclear.WithEnvelope(*p.Envelope))
	}

	return opts
}

// NewEngine builds an engine from p and applies its property values.
func (p *Patch) NewEngine() (*nuclear.Engine, error) {
	e, err := nuclear.New(p.Processor().SampleRate, p.Options()...)
	if err != nil {
		return nil, fmt.Errorf("patch: %w", err)
	}

	p.ApplyProps(e.Props())

	return e, nil
}

// ApplyProps writes every property value of p, in the order of
// nuclear.Props.All. Properties the patch does not mention keep their value.
func (p *Patch) ApplyProps(props *nuclear.Props) {
	for _, q := range props.All() {
		if v, ok := p.Props[q.Name()]; ok {
			q.Set(v)
		}
	}
}

// Apply pushes the live-editable parts of p (properties and envelope) into a
// running engine. It belongs to the audio thread.
func (p *Patch) Apply(e *nuclear.Engine) error {
	p.ApplyProps(e.Props())

	if p.Envelope != nil {
		if err := e.SetEnvelope(*p.Envelope); err != nil {
			return fmt.Errorf("patch: %w", err)
		}
	}

	return nil
}

// Duration returns the render length in seconds: Seconds when set, else
// the end of the last note plus the envelope release. A patch with neither
// has zero length.
func (p *Patch) Duration() float64 {
	if p.Seconds > 0 {
		return p.Seconds
	}

	if len(p.Notes) == 0 {
		return 0
	}

	end := 0.0
	for _, n := range p.Notes {
		end = math.Max(end, n.Start+n.Length)
	}

	if p.Envelope != nil {
		end += p.Envelope.Release
	}

	return end
}
