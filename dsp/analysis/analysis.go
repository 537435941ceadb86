// Package analysis measures rendered audio in the frequency domain.
//
// It is used offline, by tests and tools, to check oscillator band-limiting
// and to report the spectrum of rendered patches. Nothing here runs on the
// audio path.
package analysis

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrEmptySignal is returned when there is nothing to analyze.
var ErrEmptySignal = errors.New("analysis: empty signal")

// captureBins is the half width, in bins, summed around a harmonic so that
// Hann leakage is included in its level.
const captureBins = 2

// Spectrum is the one-sided power spectrum of a Hann-windowed signal.
//
// Power is normalized so that a full-scale sine centred on a bin reads 0.25
// in that bin.
type Spectrum struct {
	SampleRate float64
	FFTSize    int
	Power      []float64
}

// Analyze windows signal with a Hann window, zero-pads it to the next power
// of two and returns its power spectrum.
func Analyze(signal []float64, sampleRate float64) (Spectrum, error) {
	if len(signal) == 0 {
		return Spectrum{}, ErrEmptySignal
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return Spectrum{}, fmt.Errorf("analysis: sample rate must be > 0 and finite: %f", sampleRate)
	}

	fftSize := nextPowerOf2(len(signal))
	if fftSize < 2 {
		fftSize = 2
	}

	coeffs := hann(len(signal))
	windowed := make([]float64, len(signal))
	vecmath.MulBlock(windowed, signal, coeffs)

	in := make([]complex128, fftSize)
	for i, v := range windowed {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Spectrum{}, fmt.Errorf("analysis: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Spectrum{}, fmt.Errorf("analysis: fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	power := make([]float64, bins)
	vecmath.Power(power, re, im)

	gain := 0.0
	for _, w := range coeffs {
		gain += w
	}

	norm := 1 / (gain * gain)
	for i := range power {
		power[i] *= norm
	}

	return Spectrum{SampleRate: sampleRate, FFTSize: fftSize, Power: power}, nil
}

// BinHz returns the frequency spacing between bins.
func (s Spectrum) BinHz() float64 {
	if s.FFTSize == 0 {
		return 0
	}

	return s.SampleRate / float64(s.FFTSize)
}

// Peak returns the frequency and power of the strongest non-DC bin.
func (s Spectrum) Peak() (freqHz, power float64) {
	best := 0
	for i := 1; i < len(s.Power); i++ {
		if best == 0 || s.Power[i] > s.Power[best] {
			best = i
		}
	}

	if best == 0 {
		return 0, 0
	}

	return float64(best) * s.BinHz(), s.Power[best]
}

// BandPower sums the bins whose centre lies in [loHz, hiHz].
func (s Spectrum) BandPower(loHz, hiHz float64) float64 {
	if loHz > hiHz {
		loHz, hiHz = hiHz, loHz
	}

	lo, hi := s.bin(loHz), s.bin(hiHz)
	if float64(lo)*s.BinHz() < loHz {
		lo++
	}

	if float64(hi)*s.BinHz() > hiHz {
		hi--
	}

	total := 0.0
	for i := lo; i <= hi; i++ {
		total += s.Power[i]
	}

	return total
}

// TotalPower sums every non-DC bin.
func (s Spectrum) TotalPower() float64 {
	total := 0.0
	for i := 1; i < len(s.Power); i++ {
		total += s.Power[i]
	}

	return total
}

// HarmonicLevelsDB returns the level of harmonics 2..count+1 of fundamental
// in dB relative to the fundamental. Harmonics above Nyquist read -Inf.
func (s Spectrum) HarmonicLevelsDB(fundamentalHz float64, count int) []float64 {
	if count <= 0 || len(s.Power) == 0 {
		return nil
	}

	ref := s.around(fundamentalHz)
	levels := make([]float64, count)

	for k := range levels {
		h := fundamentalHz * float64(k+2)
		if h >= s.SampleRate/2 || ref == 0 {
			levels[k] = math.Inf(-1)
			continue
		}

		p := s.around(h)
		if p == 0 {
			levels[k] = math.Inf(-1)
			continue
		}

		levels[k] = 10 * math.Log10(p/ref)
	}

	return levels
}

func (s Spectrum) around(freqHz float64) float64 {
	c := s.bin(freqHz)
	lo := max(c-captureBins, 1)
	hi := min(c+captureBins, len(s.Power)-1)

	total := 0.0
	for i := lo; i <= hi; i++ {
		total += s.Power[i]
	}

	return total
}

func (s Spectrum) bin(freqHz float64) int {
	if s.BinHz() == 0 {
		return 0
	}

	b := int(math.Round(freqHz / s.BinHz()))

	return max(0, min(b, len(s.Power)-1))
}

// RMS returns the root-mean-square level of signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range signal {
		sum += v * v
	}

	return math.Sqrt(sum / float64(len(signal)))
}

func hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}

	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}

	return w
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
