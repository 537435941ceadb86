package osc

// polyBLEP returns the two-sample polynomial band-limited step residual for
// a unit discontinuity at phase 0, where t is the phase in [0, 1) and dt the
// phase increment per sample.
func polyBLEP(t, dt float64) float64 {
	switch {
	case t < dt:
		x := t / dt
		return x + x - x*x - 1
	case t > 1-dt:
		x := (t - 1) / dt
		return x*x + x + x + 1
	default:
		return 0
	}
}
