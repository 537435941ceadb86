// Package ladder provides the four-stage nonlinear low-pass filter used by
// the Nuclear voice.
//
// The topology follows Huovilainen's improved Moog ladder: four tanh-shaped
// one-pole stages, cutoff tuning compensation and resonance feedback from
// the last stage. Passband gain is compensated for resonance so that the
// small signal DC gain stays at one.
//
// Unlike the constructor options, [Filter.SetCutoff] never fails: it is
// called every sample while the cutoff follows a note's envelope, so it
// clamps into the valid range instead. The coefficient exponential uses
// math.Exp by default and algo-approx's FastExp when built with the
// fastmath tag.
package ladder
