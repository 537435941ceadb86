package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/beduk0/OTTO/internal/patch"
	"github.com/beduk0/OTTO/internal/player"
	"github.com/beduk0/OTTO/synth/nuclear"
)

var (
	loop        bool
	watch       bool
	bufferTime  time.Duration
	playSeconds float64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a patch on the default audio output",
	Long: `Play the note sequence of a patch in real time.

With --watch the patch file is reloaded whenever it changes; property values
and the envelope are handed to the audio thread and take effect on the next
block. Engine shape (polyphony, sample rate, filter variant) needs a restart.

Examples:
  nuclear play --patch pad.yaml
  nuclear play -p pad.yaml --loop --watch`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&loop, "loop", false, "Repeat the sequence until interrupted")
	playCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the patch file when it changes")
	playCmd.Flags().DurationVar(&bufferTime, "buffer", 0, "Output buffer length (default: oto default)")
	playCmd.Flags().Float64Var(&playSeconds, "seconds", 0, "Sequence length in seconds (default: patch length)")
}

// liveSource renders the engine block by block on the audio goroutine. Patch
// updates arrive over a channel and are applied between blocks, so the
// control side never touches engine properties directly.
type liveSource struct {
	engine  *nuclear.Engine
	seq     *patch.Sequencer
	updates <-chan *patch.Patch
	failed  chan<- error

	frame  int
	length int
	loop   bool
}

func (s *liveSource) Process(block []float64) []float64 {
drain:
	for {
		select {
		case p := <-s.updates:
			if err := p.Apply(s.engine); err != nil {
				select {
				case s.failed <- err:
				default:
				}
			}
		default:
			break drain
		}
	}

	if s.loop && s.frame >= s.length {
		s.seq.Rewind()
		s.frame = 0
	}

	s.seq.Advance(s.engine, s.frame)
	s.frame += len(block)

	return s.engine.Process(block)
}

func runPlay(cmd *cobra.Command, _ []string) error {
	p, err := loadPatch()
	if err != nil {
		return err
	}

	if playSeconds > 0 {
		p.Seconds = playSeconds
	}

	if watch && patchPath == "" {
		return fmt.Errorf("--watch needs --patch")
	}

	engine, err := p.NewEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	proc := p.Processor()
	length := int(math.Round(p.Duration() * proc.SampleRate))
	if loop && length == 0 {
		return fmt.Errorf("--loop needs a patch with notes or --seconds")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	updates := make(chan *patch.Patch, 4)
	failed := make(chan error, 4)

	src := &liveSource{
		engine:  engine,
		seq:     patch.NewSequencer(p.Notes, proc.SampleRate),
		updates: updates,
		failed:  failed,
		length:  length,
		loop:    loop,
	}

	out, err := player.New(src, int(proc.SampleRate), proc.BlockSize, bufferTime)
	if err != nil {
		return err
	}
	defer func() {
		if err := out.Close(); err != nil {
			slog.Warn("closing audio output", "err", err)
		}
	}()

	if watch {
		if err := startWatch(ctx, updates, failed); err != nil {
			return err
		}
	}

	out.Start()
	slog.Info("playing", "patch", patchPath, "sample_rate", proc.SampleRate, "block", proc.BlockSize, "loop", loop, "watch", watch)

	var done <-chan time.Time
	if !loop && length > 0 {
		done = time.After(time.Duration(p.Duration() * float64(time.Second)))
	}

	for {
		select {
		case err := <-failed:
			slog.Warn("patch not applied", "err", err)
		case <-done:
			return nil
		case <-ctx.Done():
			slog.Info("stopped")
			return nil
		}
	}
}

// startWatch forwards reloaded patches to the audio thread. Watch errors are
// logged and playback continues with the last good patch.
func startWatch(ctx context.Context, updates chan<- *patch.Patch, failed chan<- error) error {
	reloaded := make(chan *patch.Patch)
	errs := make(chan error)

	if err := patch.Watch(ctx, patchPath, reloaded, errs); err != nil {
		return err
	}

	go func() {
		for {
			select {
			case p := <-reloaded:
				slog.Info("patch reloaded", "patch", patchPath)
				select {
				case updates <- p:
				case <-ctx.Done():
					return
				}
			case err := <-errs:
				select {
				case failed <- err:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}
