package nuclear

// Axis names one coordinate of a Waypoint.
type Axis int

const (
	AxisMorph Axis = iota
	AxisPulseWidth
	AxisMix

	// NumAxes is the number of coordinates in a Waypoint.
	NumAxes
)

func (a Axis) String() string {
	switch a {
	case AxisMorph:
		return "morph"
	case AxisPulseWidth:
		return "pulse_width"
	case AxisMix:
		return "mix"
	default:
		return "unknown"
	}
}

// Waypoint is a point in (morph, pulse width, mix) space.
type Waypoint [NumAxes]float64

// Morph returns the morph coordinate.
func (w Waypoint) Morph() float64 { return w[AxisMorph] }

// PulseWidth returns the pulse width coordinate.
func (w Waypoint) PulseWidth() float64 { return w[AxisPulseWidth] }

// Mix returns the mix coordinate.
func (w Waypoint) Mix() float64 { return w[AxisMix] }

// DefaultCenters returns the instrument's ten-point center ring.
func DefaultCenters() []Waypoint {
	return []Waypoint{
		{1, 0.01, 0},
		{1, 0.99, 0},
		{1, 0.99, 1},
		{1, 0.01, 1},
		{0.2, 0.01, 1},
		{0.2, 0.99, 1},
		{0.1, 0.99, 0},
		{-0.5, 0.7, 0},
		{-0.5, 0.7, 1},
		{-0.5, 0.01, 0},
	}
}

// DefaultDeviations returns the LFO depth per waypoint and axis that pairs
// with DefaultCenters.
func DefaultDeviations() []Waypoint {
	return []Waypoint{
		{0, 0, 0.25},
		{0, 0.3, 0.5},
		{0.66, 0.24, 0},
		{0, 0.3, 0.03},
		{0.1, 0, 0},
		{0, 0.5, 0.03},
		{0.1, 0.1, 0.15},
		{0.4, 0.32, 0},
		{0.17, 0.3, 0},
		{0.4, 0.1, 0},
	}
}
