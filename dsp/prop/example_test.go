package prop_test

import (
	"fmt"

	"github.com/beduk0/OTTO/dsp/prop"
)

func ExampleProperty_OnChange() {
	cutoff := prop.New("filter", 1000.0, prop.WithBounds(20.0, 18000.0), prop.WithStep(10.0))

	sub := cutoff.OnChange(func(hz float64) {
		fmt.Printf("cutoff %.0f Hz\n", hz)
	}).CallNow()
	defer sub.Close()

	cutoff.Step(5)
	cutoff.Set(1e6)

	// Output:
	// cutoff 1000 Hz
	// cutoff 1050 Hz
	// cutoff 18000 Hz
}
