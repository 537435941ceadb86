// Package voices provides a fixed-slot voice pool that allocates notes to
// kernels, ticks a shared pre-stage once per block and mixes the active
// voices.
//
// Allocation takes the first free slot and otherwise steals the voice that
// was started longest ago. A key that is still held is retriggered in its own
// slot.
package voices

import (
	"errors"
	"fmt"

	"github.com/beduk0/OTTO/dsp/core"
	"github.com/beduk0/OTTO/dsp/envelope"
)

// Kernel is the per-slot sound generator driven by a Manager.
type Kernel interface {
	SetFrequency(hz float64)
	OnNoteOn(hz float64)
	// Envelope returns the amplitude envelope owned by the kernel. Next is
	// expected to advance it once per sample.
	Envelope() *envelope.ADSR
	Next() float64
}

// PreStage runs once per block before any voice renders.
type PreStage interface {
	Process(frames int)
}

// PostStage shapes the output of one voice sample by sample.
type PostStage interface {
	Process(in float64) float64
}

// Factory builds the kernel and post-stage for a slot.
type Factory[V Kernel] func(slot int) (V, PostStage, error)

// ErrNoFactory is returned by New when the factory is nil.
var ErrNoFactory = errors.New("voices: nil factory")

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	envelope    envelope.Config
	hasEnvelope bool
	gain        float64
}

// WithEnvelope applies cfg to every slot's envelope.
func WithEnvelope(cfg envelope.Config) Option {
	return func(c *config) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		c.envelope = cfg
		c.hasEnvelope = true

		return nil
	}
}

// WithGain sets the gain applied to the summed block. Must be finite and >= 0.
func WithGain(gain float64) Option {
	return func(c *config) error {
		if !core.IsFinite(gain) || gain < 0 {
			return fmt.Errorf("voices: gain must be >= 0 and finite: %f", gain)
		}

		c.gain = gain

		return nil
	}
}

type slot[V Kernel] struct {
	voice V
	post  PostStage

	key     int
	started uint64
	gate    bool
	active  bool
}

// Manager owns a fixed array of voice slots. It is not safe for concurrent
// use; every method belongs to the audio thread.
type Manager[V Kernel] struct {
	pre   PreStage
	slots []slot[V]
	gain  float64
	clock uint64
}

// New builds polyphony slots through factory. pre may be nil.
func New[V Kernel](pre PreStage, polyphony int, factory Factory[V], opts ...Option) (*Manager[V], error) {
	if polyphony <= 0 {
		return nil, fmt.Errorf("voices: polyphony must be > 0: %d", polyphony)
	}

	if factory == nil {
		return nil, ErrNoFactory
	}

	cfg := config{gain: 1}
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	m := &Manager[V]{
		pre:   pre,
		slots: make([]slot[V], polyphony),
		gain:  cfg.gain,
	}

	for i := range m.slots {
		v, post, err := factory(i)
		if err != nil {
			return nil, fmt.Errorf("voices: slot %d: %w", i, err)
		}

		if v.Envelope() == nil {
			return nil, fmt.Errorf("voices: slot %d: kernel has no envelope", i)
		}

		if cfg.hasEnvelope {
			if err := v.Envelope().SetConfig(cfg.envelope); err != nil {
				return nil, fmt.Errorf("voices: slot %d: %w", i, err)
			}
		}

		m.slots[i] = slot[V]{voice: v, post: post}
	}

	return m, nil
}

// Polyphony returns the number of slots.
func (m *Manager[V]) Polyphony() int { return len(m.slots) }

// Voice returns the kernel in slot i.
func (m *Manager[V]) Voice(i int) V { return m.slots[i].voice }

// Gain returns the output gain.
func (m *Manager[V]) Gain() float64 { return m.gain }

// ActiveCount returns the number of slots still producing sound.
func (m *Manager[V]) ActiveCount() int {
	n := 0
	for i := range m.slots {
		if m.slots[i].active {
			n++
		}
	}

	return n
}

// NoteOn starts key at hz and returns the slot it was given.
func (m *Manager[V]) NoteOn(key int, hz float64) int {
	i := m.allocate(key)
	s := &m.slots[i]

	m.clock++
	s.key = key
	s.started = m.clock
	s.gate = true
	s.active = true

	s.voice.SetFrequency(hz)
	s.voice.OnNoteOn(hz)
	s.voice.Envelope().Trigger()

	return i
}

// NoteOff releases every held slot playing key.
func (m *Manager[V]) NoteOff(key int) {
	for i := range m.slots {
		s := &m.slots[i]
		if !s.gate || s.key != key {
			continue
		}

		s.gate = false
		s.voice.Envelope().Release()
	}
}

// SetEnvelope applies cfg to every slot. Running notes keep their stage.
func (m *Manager[V]) SetEnvelope(cfg envelope.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	for i := range m.slots {
		if err := m.slots[i].voice.Envelope().SetConfig(cfg); err != nil {
			return err
		}
	}

	return nil
}

// Reset silences every slot immediately.
func (m *Manager[V]) Reset() {
	for i := range m.slots {
		s := &m.slots[i]
		s.gate = false
		s.active = false
		s.voice.Envelope().Reset()
	}
}

// Process overwrites block with the mix of all active voices and returns it.
// The pre-stage is ticked once with len(block) frames before rendering.
func (m *Manager[V]) Process(block []float64) []float64 {
	core.Zero(block)

	if len(block) == 0 {
		return block
	}

	if m.pre != nil {
		m.pre.Process(len(block))
	}

	for i := range m.slots {
		s := &m.slots[i]
		if !s.active {
			continue
		}

		env := s.voice.Envelope()
		for n := range block {
			y := s.voice.Next()
			if s.post != nil {
				y = s.post.Process(y)
			}

			block[n] += y * env.Value()
		}

		if !env.Active() {
			s.active = false
			s.gate = false
		}
	}

	if m.gain != 1 {
		core.Scale(block, m.gain)
	}

	return block
}

func (m *Manager[V]) allocate(key int) int {
	for i := range m.slots {
		if m.slots[i].gate && m.slots[i].key == key {
			return i
		}
	}

	for i := range m.slots {
		if !m.slots[i].active {
			return i
		}
	}

	oldest := 0
	for i := range m.slots {
		if m.slots[i].started < m.slots[oldest].started {
			oldest = i
		}
	}

	return oldest
}
