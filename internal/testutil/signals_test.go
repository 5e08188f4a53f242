package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 0.5, 96)
	if len(s) != 96 {
		t.Fatalf("len = %d, want 96", len(s))
	}
	if s[0] != 0 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	// quarter period of 1 kHz at 48 kHz is 12 samples
	if math.Abs(float64(s[12])-0.5) > 1e-6 {
		t.Fatalf("s[12] = %v, want 0.5", s[12])
	}
}

func TestDeterministicNoiseReproducible(t *testing.T) {
	a := DeterministicNoise(7, 1, 64)
	b := DeterministicNoise(7, 1, 64)
	RequireSliceEqual(t, a, b)

	for i, v := range a {
		if v < -1 || v > 1 {
			t.Fatalf("a[%d] = %v outside [-1, 1]", i, v)
		}
	}
}

func TestRepeatAndBlocks(t *testing.T) {
	sig := Repeat([]float32{1, 2, 3}, 3)
	if len(sig) != 9 || sig[4] != 2 {
		t.Fatalf("unexpected repeat: %v", sig)
	}

	blocks := Blocks(sig, 4, 2)
	if len(blocks) != 3 {
		t.Fatalf("len(blocks) = %d, want 3", len(blocks))
	}
	if len(blocks[2][1]) != 1 || blocks[2][1][0] != 3 {
		t.Fatalf("unexpected tail block: %v", blocks[2])
	}

	blocks[0][0][0] = 9
	if blocks[0][1][0] != 1 || sig[0] != 1 {
		t.Fatal("blocks must not alias each other or the source")
	}
}

func TestDC(t *testing.T) {
	for i, v := range DC(0.25, 5) {
		if v != 0.25 {
			t.Fatalf("DC[%d] = %v, want 0.25", i, v)
		}
	}
}
