//go:build !headless

package player

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player owns an oto context and one mono float32 player fed by a Reader.
type Player struct {
	ctx    *oto.Context
	player *oto.Player

	mu      sync.Mutex
	started bool
}

// New opens the default output device at sampleRate and prepares playback of
// src. bufferTime is the device buffer length; zero picks oto's default.
func New(src Source, sampleRate, blockSize int, bufferTime time.Duration) (*Player, error) {
	r, err := NewReader(src, blockSize)
	if err != nil {
		return nil, err
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferTime,
	})
	if err != nil {
		return nil, fmt.Errorf("player: open output: %w", err)
	}
	<-ready

	return &Player{ctx: ctx, player: ctx.NewPlayer(r)}, nil
}

// Start begins playback. It is a no-op when already playing.
func (p *Player) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started || p.player == nil {
		return
	}

	p.player.Play()
	p.started = true
}

// Close stops playback and releases the player.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player == nil {
		return nil
	}

	err := p.player.Close()
	p.player = nil
	p.started = false

	if err != nil {
		return fmt.Errorf("player: close: %w", err)
	}

	return nil
}
