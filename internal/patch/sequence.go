package patch

import (
	"cmp"
	"math"
	"slices"
)

// Player receives note events from a Sequencer. *nuclear.Engine implements it.
type Player interface {
	NoteOn(key int, hz float64) int
	NoteOff(key int)
}

type event struct {
	frame int
	key   int
	on    bool
}

// Sequencer turns a note list into frame-stamped note-on and note-off
// events. Events are applied at block boundaries.
type Sequencer struct {
	events []event
	next   int
}

// NewSequencer schedules notes at sampleRate. Notes whose names do not parse
// are skipped; Validate reports them.
func NewSequencer(notes []Note, sampleRate float64) *Sequencer {
	s := &Sequencer{events: make([]event, 0, 2*len(notes))}

	for _, n := range notes {
		key, err := ParseNote(n.Note)
		if err != nil {
			continue
		}

		on := int(math.Round(n.Start * sampleRate))
		off := int(math.Round((n.Start + n.Length) * sampleRate))

		s.events = append(s.events, event{frame: on, key: key, on: true}, event{frame: off, key: key})
	}

	// Offs sort before ons on the same frame so that a repeated key is
	// released before it retriggers.
	slices.SortStableFunc(s.events, func(a, b event) int {
		if c := cmp.Compare(a.frame, b.frame); c != 0 {
			return c
		}

		switch {
		case a.on == b.on:
			return 0
		case a.on:
			return 1
		default:
			return -1
		}
	})

	return s
}

// Len returns the number of scheduled events.
func (s *Sequencer) Len() int { return len(s.events) }

// Advance sends every pending event stamped at or before frame to p.
func (s *Sequencer) Advance(p Player, frame int) {
	for s.next < len(s.events) && s.events[s.next].frame <= frame {
		ev := s.events[s.next]
		if ev.on {
			p.NoteOn(ev.key, KeyFrequency(ev.key))
		} else {
			p.NoteOff(ev.key)
		}

		s.next++
	}
}

// Done reports whether every event has been sent.
func (s *Sequencer) Done() bool { return s.next >= len(s.events) }

// Rewind restarts the sequence from its first event.
func (s *Sequencer) Rewind() { s.next = 0 }
