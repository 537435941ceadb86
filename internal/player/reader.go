// Package player streams a block renderer to the sound card.
//
// [Reader] adapts a [Source] to the io.Reader that oto pulls from, as mono
// little-endian float32. The oto binding lives behind the !headless build
// tag; headless builds get a [New] that always fails.
package player

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrUnavailable is returned by New in headless builds.
var ErrUnavailable = errors.New("player: audio output not available in headless build")

const bytesPerSample = 4

// Source renders the next block of mono samples into block.
type Source interface {
	Process(block []float64) []float64
}

// Reader pulls fixed-size blocks from a Source and serves them as float32
// little-endian bytes. Read runs on the audio goroutine; the block buffer is
// allocated once.
type Reader struct {
	src   Source
	block []float64
	pos   int
}

// NewReader returns a reader that renders blockSize frames at a time.
func NewReader(src Source, blockSize int) (*Reader, error) {
	if src == nil {
		return nil, errors.New("player: nil source")
	}

	if blockSize <= 0 {
		return nil, fmt.Errorf("player: block size must be > 0: %d", blockSize)
	}

	block := make([]float64, blockSize)

	return &Reader{src: src, block: block, pos: len(block)}, nil
}

// Read fills p with whole samples and never fails. A trailing partial
// sample slot in p is left untouched.
func (r *Reader) Read(p []byte) (int, error) {
	n := len(p) / bytesPerSample * bytesPerSample

	for off := 0; off < n; off += bytesPerSample {
		if r.pos == len(r.block) {
			r.src.Process(r.block)
			r.pos = 0
		}

		binary.LittleEndian.PutUint32(p[off:], math.Float32bits(float32(r.block[r.pos])))
		r.pos++
	}

	return n, nil
}
