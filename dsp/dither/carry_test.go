package dither

import (
	"math"
	"testing"
)

func TestCarryDisabledTruncates(t *testing.T) {
	var c Carry

	for i := 0; i < 100; i++ {
		if got := c.Round(2.9, false); got != 2 {
			t.Fatalf("sample %d: Round(2.9, false) = %d, want 2", i, got)
		}
	}

	if c.Remainder() != 0 {
		t.Fatalf("Remainder() = %v, want 0 when disabled", c.Remainder())
	}
}

func TestCarryAverageConverges(t *testing.T) {
	for _, amount := range []float64{2.5, 0.25, 7.1, 99.75, 3} {
		var c Carry

		const n = 10000

		sum := 0
		for i := 0; i < n; i++ {
			sum += c.Round(amount, true)

			if r := c.Remainder(); r < 0 || r >= 1 {
				t.Fatalf("amount %v sample %d: remainder %v outside [0, 1)", amount, i, r)
			}
		}

		avg := float64(sum) / n
		// The paid-out total differs from n*amount by the current remainder only.
		if diff := math.Abs(avg - amount); diff > 1.0/n+1e-9 {
			t.Errorf("amount %v: average %v differs by %v", amount, avg, diff)
		}
	}
}

func TestCarryHalfAlternates(t *testing.T) {
	var c Carry

	want := []int{2, 3, 2, 3, 2, 3}
	for i, w := range want {
		if got := c.Round(2.5, true); got != w {
			t.Fatalf("sample %d: Round(2.5) = %d, want %d", i, got, w)
		}
	}
}

func TestCarryDegenerateAmounts(t *testing.T) {
	var c Carry

	for _, amount := range []float64{0, -3.5, math.NaN()} {
		if got := c.Round(amount, true); got != 0 {
			t.Errorf("Round(%v) = %d, want 0", amount, got)
		}
	}

	if c.Remainder() != 0 {
		t.Fatalf("Remainder() = %v, want 0", c.Remainder())
	}
}

func TestCarryReset(t *testing.T) {
	var c Carry

	c.Round(0.75, true)
	c.Reset()

	if c.Remainder() != 0 {
		t.Fatalf("Remainder() after reset = %v, want 0", c.Remainder())
	}
}

func BenchmarkCarryRound(b *testing.B) {
	var c Carry

	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		c.Round(42.37, true)
	}
}
