// Package osc provides the audio oscillator and the low-frequency modulator
// used by the Nuclear voice.
//
// [Oscillator] derives two waveforms from one phase accumulator: a
// PolyBLEP band-limited pulse that morphs towards a sawtooth, and the leaky
// integral of that pulse, which becomes a band-limited triangle once scaled
// with [TriangleScale]. [LFO] is a naive bipolar triangle modulator that is
// sampled once per processing block.
package osc
