// Package nuclear implements the wave-morphing voice core of the Nuclear
// synthesizer.
//
// One control value ("wave") walks a circular ring of authored waypoints in
// (morph, pulse width, mix) space. A shared triangle LFO, whose rate and
// depth follow the "modulation" control, pushes the three parameters away
// from the ring position by a per-waypoint deviation. Each block the
// [ModulationStage] publishes the modulated values into [Props]; every
// [Voice] is subscribed to them and reconfigures its oscillator on the spot.
//
// Signal flow per note:
//
//	oscillator -> pulse / integrated triangle -> cross-fade (mix) -> ladder filter -> OutputStage
//
// The filter cutoff follows filter + envelope*envelope_amount every sample.
//
// [Engine] ties the pieces together over a fixed [voices.Manager] pool. All
// processing methods belong to a single audio thread.
package nuclear
