package nuclear

import (
	"errors"
	"fmt"
	"math"

	"github.com/beduk0/OTTO/dsp/core"
)

// MaxControl is the largest control value SetControl accepts. It stays below
// 1 so that the scaled position never lands on index N.
const MaxControl = 0.9999

var (
	// ErrEmptyRing is returned when the waypoint rings have no entries.
	ErrEmptyRing = errors.New("nuclear: waypoint rings are empty")
	// ErrRingMismatch is returned when the center and deviation rings differ
	// in length.
	ErrRingMismatch = errors.New("nuclear: center and deviation rings differ in length")
)

// Cursor is a position between two adjacent ring entries.
type Cursor struct {
	Lower int
	Upper int
	Frac  float64
}

// MorphEngine maps one control value onto a circular ring of waypoints and
// adds LFO excursions scaled by the matching deviation ring.
type MorphEngine struct {
	center    []Waypoint
	deviation []Waypoint

	control float64
	cursor  Cursor
	cached  Waypoint
}

// NewMorphEngine copies both rings and positions the cursor at control 0.
func NewMorphEngine(center, deviation []Waypoint) (*MorphEngine, error) {
	if len(center) == 0 && len(deviation) == 0 {
		return nil, ErrEmptyRing
	}

	if len(center) != len(deviation) {
		return nil, fmt.Errorf("%w: %d != %d", ErrRingMismatch, len(center), len(deviation))
	}

	e := &MorphEngine{
		center:    append([]Waypoint(nil), center...),
		deviation: append([]Waypoint(nil), deviation...),
	}
	e.SetControl(0)

	return e, nil
}

// Len returns the ring size.
func (e *MorphEngine) Len() int { return len(e.center) }

// Control returns the clamped control value last applied.
func (e *MorphEngine) Control() float64 { return e.control }

// Cursor returns the interpolation position.
func (e *MorphEngine) Cursor() Cursor { return e.cursor }

// Center returns the interpolated center at the cursor.
func (e *MorphEngine) Center() Waypoint { return e.cached }

// SetControl moves the cursor to v, clamped to [0, MaxControl], and caches
// the interpolated center. Non-finite values are treated as 0.
func (e *MorphEngine) SetControl(v float64) {
	v = core.Clamp(core.Sanitize(v), 0, MaxControl)

	n := len(e.center)
	scaled := v * float64(n)
	whole := math.Floor(scaled)

	lower := int(whole) % n
	upper := (lower + 1) % n

	e.control = v
	e.cursor = Cursor{Lower: lower, Upper: upper, Frac: scaled - whole}
	e.cached = e.lerp(e.center)
}

// Compute returns the cached center plus lfo times the deviation
// interpolated at the cursor.
//
// The per-axis scales are reserved. They are accepted and ignored, so the
// modulation depth comes from the deviation ring alone.
func (e *MorphEngine) Compute(lfo, morphScale, pulseWidthScale, mixScale float64) Waypoint {
	_, _, _ = morphScale, pulseWidthScale, mixScale

	dev := e.lerp(e.deviation)

	var out Waypoint
	for a := range out {
		out[a] = e.cached[a] + lfo*dev[a]
	}

	return out
}

func (e *MorphEngine) lerp(ring []Waypoint) Waypoint {
	lo, hi, t := ring[e.cursor.Lower], ring[e.cursor.Upper], e.cursor.Frac

	var out Waypoint
	for a := range out {
		out[a] = core.Lerp(lo[a], hi[a], t)
	}

	return out
}
