package patch

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/beduk0/OTTO/dsp/core"
)

// Render plays the note sequence of p through a fresh engine and returns
// Duration seconds of mono audio.
func Render(p *Patch) ([]float64, error) {
	e, err := p.NewEngine()
	if err != nil {
		return nil, err
	}
	defer e.Close()

	proc := p.Processor()
	seq := NewSequencer(p.Notes, proc.SampleRate)

	total := int(math.Round(p.Duration() * proc.SampleRate))
	out := make([]float64, total)

	for start := 0; start < total; start += proc.BlockSize {
		seq.Advance(e, start)
		e.Process(out[start:min(start+proc.BlockSize, total)])
	}

	return out, nil
}

// WriteWAV encodes samples as a mono PCM WAV file of the given bit depth.
// Samples are clipped to [-1, 1].
func WriteWAV(w io.WriteSeeker, samples []float64, sampleRate, bitDepth int) error {
	if bitDepth != 16 && bitDepth != 24 {
		return fmt.Errorf("patch: unsupported wav bit depth: %d", bitDepth)
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, 1)

	full := float64(int(1)<<(bitDepth-1) - 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: bitDepth,
	}

	for i, v := range samples {
		buf.Data[i] = int(math.Round(core.Clamp(core.Sanitize(v), -1, 1) * full))
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("patch: write wav: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("patch: close wav: %w", err)
	}

	return nil
}
