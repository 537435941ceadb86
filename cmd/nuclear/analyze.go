package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/beduk0/OTTO/dsp/analysis"
	"github.com/beduk0/OTTO/dsp/core"
	"github.com/beduk0/OTTO/internal/patch"
)

var harmonics int

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Render a patch and print level and spectrum figures",
	Long: `Render the note sequence of a patch and report its peak, RMS, strongest
frequency and the level of the first harmonics of the first note.

Example:
  nuclear analyze --patch pad.yaml --harmonics 8`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&harmonics, "harmonics", 6, "Number of harmonics to report")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	p, err := loadPatch()
	if err != nil {
		return err
	}

	if len(p.Notes) == 0 {
		return fmt.Errorf("analyze needs a patch with notes")
	}

	samples, err := patch.Render(p)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	sr := p.Processor().SampleRate

	spec, err := analysis.Analyze(samples, sr)
	if err != nil {
		return err
	}

	key, err := patch.ParseNote(p.Notes[0].Note)
	if err != nil {
		return err
	}

	fundamental := patch.KeyFrequency(key)
	peakHz, _ := spec.Peak()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "length\t%.3f s\n", float64(len(samples))/sr)
	fmt.Fprintf(w, "peak\t%.2f dBFS\n", toDB(core.PeakAbs(samples)))
	fmt.Fprintf(w, "rms\t%.2f dBFS\n", toDB(analysis.RMS(samples)))
	fmt.Fprintf(w, "strongest\t%.1f Hz\n", peakHz)
	fmt.Fprintf(w, "fundamental\t%.1f Hz (%s)\n", fundamental, p.Notes[0].Note)
	fmt.Fprintf(w, "resolution\t%.2f Hz/bin\n", spec.BinHz())

	for i, level := range spec.HarmonicLevelsDB(fundamental, harmonics) {
		fmt.Fprintf(w, "H%d\t%.1f dB\n", i+2, level)
	}

	return w.Flush()
}

func toDB(x float64) float64 {
	if x <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(x)
}
