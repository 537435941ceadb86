package patch

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// A4 is MIDI note 69 at 440 Hz; C4 is note 60.
const (
	referenceKey = 69
	referenceHz  = 440.0
)

var pitchClasses = map[byte]int{
	'c': 0, 'd': 2, 'e': 4, 'f': 5, 'g': 7, 'a': 9, 'b': 11,
}

// ParseNote converts a note name such as "C4", "f#2", "Bb3" or a MIDI
// number such as "60" into a MIDI key in [0, 127].
func ParseNote(name string) (int, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return 0, fmt.Errorf("empty note name")
	}

	if key, err := strconv.Atoi(s); err == nil {
		if key < 0 || key > 127 {
			return 0, fmt.Errorf("note %d out of MIDI range", key)
		}

		return key, nil
	}

	pc, ok := pitchClasses[lower(s[0])]
	if !ok {
		return 0, fmt.Errorf("invalid note name %q", name)
	}

	rest := s[1:]
	for len(rest) > 0 && (rest[0] == '#' || rest[0] == 'b') {
		if rest[0] == '#' {
			pc++
		} else {
			pc--
		}

		rest = rest[1:]
	}

	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("invalid octave in note name %q", name)
	}

	key := (octave+1)*12 + pc
	if key < 0 || key > 127 {
		return 0, fmt.Errorf("note %q out of MIDI range", name)
	}

	return key, nil
}

// KeyFrequency returns the equal-tempered frequency of a MIDI key.
func KeyFrequency(key int) float64 {
	return referenceHz * math.Pow(2, float64(key-referenceKey)/12)
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}

	return c
}
