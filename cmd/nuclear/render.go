package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/beduk0/OTTO/dsp/analysis"
	"github.com/beduk0/OTTO/dsp/core"
	"github.com/beduk0/OTTO/internal/patch"
)

var (
	outPath       string
	renderSeconds float64
	bitDepth      int
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a patch's note sequence to a WAV file",
	Long: `Render the note sequence of a patch offline and write it as a mono WAV file.

Examples:
  nuclear render --patch pad.yaml --out pad.wav
  nuclear render -p pad.yaml -o pad.wav --seconds 8 --bits 24`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "nuclear.wav", "Output WAV file")
	renderCmd.Flags().Float64Var(&renderSeconds, "seconds", 0, "Render length in seconds (default: patch length)")
	renderCmd.Flags().IntVar(&bitDepth, "bits", 16, "WAV bit depth (16 or 24)")
}

// loadPatch reads --patch, or returns the default patch when it is empty.
func loadPatch() (*patch.Patch, error) {
	if patchPath == "" {
		return patch.Default(), nil
	}

	return patch.Load(patchPath)
}

func runRender(cmd *cobra.Command, _ []string) (err error) {
	p, err := loadPatch()
	if err != nil {
		return err
	}

	if renderSeconds > 0 {
		p.Seconds = renderSeconds
	}

	if p.Duration() <= 0 {
		return errors.New("nothing to render: patch has no notes and no length; use --seconds")
	}

	start := time.Now()

	samples, err := patch.Render(p)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %q: %w", outPath, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %q: %w", outPath, cerr)
		}
	}()

	if err := patch.WriteWAV(f, samples, int(p.Processor().SampleRate), bitDepth); err != nil {
		return err
	}

	slog.Info("rendered patch",
		"out", outPath,
		"seconds", p.Duration(),
		"frames", len(samples),
		"peak", core.PeakAbs(samples),
		"rms", analysis.RMS(samples),
		"elapsed", time.Since(start),
	)

	return nil
}
