//go:build headless

package player

import "time"

// Player is a placeholder that cannot be constructed in headless builds.
type Player struct{}

// New always returns ErrUnavailable.
func New(Source, int, int, time.Duration) (*Player, error) {
	return nil, ErrUnavailable
}

// Start does nothing.
func (*Player) Start() {}

// Close does nothing.
func (*Player) Close() error { return nil }
