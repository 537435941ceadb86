package nuclear

import (
	"errors"
	"math"
	"testing"

	"github.com/beduk0/OTTO/internal/testutil"
)

func newDefaultMorph(t *testing.T) *MorphEngine {
	t.Helper()

	e, err := NewMorphEngine(DefaultCenters(), DefaultDeviations())
	if err != nil {
		t.Fatalf("NewMorphEngine() error = %v", err)
	}

	return e
}

func requireWaypoint(t *testing.T, got, want Waypoint, eps float64) {
	t.Helper()

	for a := range got {
		if math.Abs(got[a]-want[a]) > eps {
			t.Fatalf("%v axis: got %v, want %v (full %v vs %v)", Axis(a), got[a], want[a], got, want)
		}
	}
}

func TestNewMorphEngineValidation(t *testing.T) {
	if _, err := NewMorphEngine(nil, nil); !errors.Is(err, ErrEmptyRing) {
		t.Fatalf("empty rings: err = %v, want ErrEmptyRing", err)
	}

	_, err := NewMorphEngine(DefaultCenters(), DefaultDeviations()[:9])
	if !errors.Is(err, ErrRingMismatch) {
		t.Fatalf("mismatched rings: err = %v, want ErrRingMismatch", err)
	}

	if e := newDefaultMorph(t); e.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", e.Len())
	}
}

func TestSetControlCursor(t *testing.T) {
	e := newDefaultMorph(t)
	n := float64(e.Len())

	for _, v := range []float64{0, 0.01, 0.05, 0.123, 0.25, 0.5, 0.77, 0.9, 0.95, 0.9999} {
		e.SetControl(v)

		scaled := v * n
		lower := int(math.Floor(scaled)) % e.Len()
		c := e.Cursor()

		if c.Lower != lower {
			t.Fatalf("v=%v: Lower = %d, want %d", v, c.Lower, lower)
		}
		if c.Upper != (lower+1)%e.Len() {
			t.Fatalf("v=%v: Upper = %d, want %d", v, c.Upper, (lower+1)%e.Len())
		}
		if c.Frac < 0 || c.Frac >= 1 {
			t.Fatalf("v=%v: Frac = %v outside [0, 1)", v, c.Frac)
		}
		testutil.RequireNearlyEqual(t, c.Frac, scaled-math.Floor(scaled), 1e-12, "frac")
	}
}

func TestSetControlClamps(t *testing.T) {
	e := newDefaultMorph(t)

	e.SetControl(1)
	if c := e.Cursor(); c.Lower != 9 || c.Upper != 0 {
		t.Fatalf("v=1: cursor = %+v, want lower 9 upper 0", c)
	}
	if e.Control() != MaxControl {
		t.Fatalf("Control() = %v, want %v", e.Control(), MaxControl)
	}

	e.SetControl(42)
	if c := e.Cursor(); c.Lower != 9 || c.Upper != 0 {
		t.Fatalf("v=42: cursor = %+v, want lower 9 upper 0", c)
	}

	e.SetControl(-3)
	if c := e.Cursor(); c.Lower != 0 || c.Upper != 1 || c.Frac != 0 {
		t.Fatalf("v=-3: cursor = %+v, want {0 1 0}", c)
	}

	e.SetControl(math.NaN())
	if e.Control() != 0 {
		t.Fatalf("NaN control = %v, want 0", e.Control())
	}
}

func TestZeroControlIsFirstWaypoint(t *testing.T) {
	e := newDefaultMorph(t)
	e.SetControl(0.5)
	e.SetControl(0)

	if c := e.Cursor(); c != (Cursor{Lower: 0, Upper: 1, Frac: 0}) {
		t.Fatalf("cursor = %+v, want {0 1 0}", c)
	}

	if got, want := e.Center(), DefaultCenters()[0]; got != want {
		t.Fatalf("Center() = %v, want exactly %v", got, want)
	}
}

func TestCenterInterpolation(t *testing.T) {
	e := newDefaultMorph(t)

	// Halfway between waypoint 0 (1, 0.01, 0) and 1 (1, 0.99, 0).
	e.SetControl(0.05)

	c := e.Cursor()
	if c.Lower != 0 || c.Upper != 1 {
		t.Fatalf("cursor = %+v, want lower 0 upper 1", c)
	}
	testutil.RequireNearlyEqual(t, c.Frac, 0.5, 1e-12, "frac")
	requireWaypoint(t, e.Center(), Waypoint{1, 0.5, 0}, 1e-12)
}

func TestCenterWrapsAroundRing(t *testing.T) {
	e := newDefaultMorph(t)
	e.SetControl(0.95)

	// Halfway between waypoint 9 (-0.5, 0.01, 0) and 0 (1, 0.01, 0).
	requireWaypoint(t, e.Center(), Waypoint{0.25, 0.01, 0}, 1e-12)
}

func TestComputeWithoutLFOIsCenter(t *testing.T) {
	e := newDefaultMorph(t)

	for _, v := range []float64{0, 0.05, 0.31, 0.62, 0.999} {
		e.SetControl(v)
		if got, want := e.Compute(0, 1, 1, 1), e.Center(); got != want {
			t.Fatalf("v=%v: Compute(0) = %v, want %v", v, got, want)
		}
	}
}

func TestComputeFullLFOAddsDeviation(t *testing.T) {
	e := newDefaultMorph(t)
	dev := DefaultDeviations()

	for _, v := range []float64{0, 0.05, 0.17, 0.5, 0.88} {
		e.SetControl(v)

		c := e.Cursor()
		var want Waypoint
		for a := range want {
			d := dev[c.Lower][a]*(1-c.Frac) + dev[c.Upper][a]*c.Frac
			want[a] = e.Center()[a] + d
		}

		requireWaypoint(t, e.Compute(1, 0, 0, 0), want, 1e-12)
	}
}

func TestComputeScalesAreIgnored(t *testing.T) {
	e := newDefaultMorph(t)
	e.SetControl(0.42)

	want := e.Compute(-0.7, 0, 0, 0)
	if got := e.Compute(-0.7, 5, -3, 100); got != want {
		t.Fatalf("Compute with scales = %v, want %v", got, want)
	}
}

func TestSetControlIdempotent(t *testing.T) {
	e := newDefaultMorph(t)
	e.SetControl(0.3333)
	first := e.Center()

	for range 1000 {
		e.SetControl(0.3333)
	}

	if got := e.Center(); got != first {
		t.Fatalf("Center() drifted: %v, want %v", got, first)
	}
}

func TestNewMorphEngineCopiesRings(t *testing.T) {
	centers := DefaultCenters()
	e, err := NewMorphEngine(centers, DefaultDeviations())
	if err != nil {
		t.Fatalf("NewMorphEngine() error = %v", err)
	}

	centers[0] = Waypoint{9, 9, 9}
	e.SetControl(0)

	if got := e.Center(); got != DefaultCenters()[0] {
		t.Fatalf("Center() = %v after caller mutation, want %v", got, DefaultCenters()[0])
	}
}

func BenchmarkMorphCompute(b *testing.B) {
	e, err := NewMorphEngine(DefaultCenters(), DefaultDeviations())
	if err != nil {
		b.Fatal(err)
	}

	e.SetControl(0.37)

	var sink Waypoint
	for i := range b.N {
		sink = e.Compute(float64(i%7)/7, 0, 0, 0)
	}

	_ = sink
}
