package dither

import (
	"math"

	"github.com/cwbudde/algo-lofi/dsp/core"
)

// Carry converts a continuous, non-negative amount into an integer per
// sample while preserving the long-run average. The fractional part of each
// request is accumulated; whenever the accumulator reaches one, a whole unit
// is paid out on that sample only.
//
// The zero value is ready to use. Carry is not thread-safe; keep one per
// channel.
type Carry struct {
	acc float64
}

// Round returns floor(amount), plus one on samples where the accumulated
// fractional remainder crosses 1 and enabled is true. With enabled false the
// accumulator is left untouched and the result is plain truncation.
// Negative and NaN amounts round to 0.
func (c *Carry) Round(amount float64, enabled bool) int {
	if !(amount > 0) {
		return 0
	}

	rounded := int(math.Floor(amount))

	if enabled {
		c.acc += core.Frac(amount)
		if c.acc >= 1 {
			c.acc--
			rounded++
		}
	}

	return rounded
}

// Remainder returns the accumulated fractional carry in [0, 1).
func (c *Carry) Remainder() float64 { return c.acc }

// Reset clears the accumulated remainder.
func (c *Carry) Reset() { c.acc = 0 }
