// Command nuclear renders, plays and analyzes Nuclear synth patches.
//
// Usage:
//
//	nuclear render  --patch p.yaml --out out.wav [--seconds s] [--bits 16|24]
//	nuclear play    --patch p.yaml [--loop] [--watch]
//	nuclear analyze --patch p.yaml [--harmonics n]
//	nuclear props
//
// A patch is a YAML file describing engine settings, property values and a
// note sequence; see package internal/patch for the format.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	logLevel  string
	patchPath string
)

var rootCmd = &cobra.Command{
	Use:   "nuclear",
	Short: "Render and play patches for the Nuclear wave-morphing synth voice",
	Long: `nuclear drives the Nuclear synth engine from patch files.

One "wave" control walks a ring of waveform waypoints, a triangle LFO set by
"modulation" moves the sound around that point, and a ladder filter follows
each note's envelope.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var level slog.Level
		if err := level.UnmarshalText([]byte(logLevel)); err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
		}

		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	for _, c := range []*cobra.Command{renderCmd, playCmd, analyzeCmd} {
		c.Flags().StringVarP(&patchPath, "patch", "p", "", "Patch file (YAML); defaults are used when empty")
		rootCmd.AddCommand(c)
	}

	rootCmd.AddCommand(propsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("nuclear failed", "err", err)
		os.Exit(1)
	}
}
