package core

import "testing"

func TestZeroAndScale(t *testing.T) {
	buf := []float64{1, -2, 3}
	Scale(buf, 0.5)

	if buf[0] != 0.5 || buf[1] != -1 || buf[2] != 1.5 {
		t.Fatalf("unexpected scaled buf: %#v", buf)
	}

	if got := PeakAbs(buf); got != 1.5 {
		t.Fatalf("PeakAbs() = %v, want 1.5", got)
	}

	Zero(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %v, want 0", i, v)
		}
	}
}
