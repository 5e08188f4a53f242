package lofi

import "github.com/cwbudde/algo-lofi/dsp/core"

// curveOffset maps a reference sample to a lookup offset in [0, amount]:
//
//	floor(|ref*amount|^curve * amount^(1-curve))
//
// curve 1 gives an offset proportional to amplitude; small curves push
// every non-silent sample towards the full amount.
func curveOffset(ref float32, amount int, curve float64) int {
	if amount <= 0 {
		return 0
	}

	a := float64(amount)
	mag := float64(ref) * a
	if mag < 0 {
		mag = -mag
	}

	v := mathPow(mag, curve) * mathPow(a, 1-curve)

	// The comparisons also reject NaN before the integer conversion.
	switch {
	case !(v > 0):
		return 0
	case v >= a:
		return amount
	}

	return core.ClampInt(int(v), 0, amount)
}

// invertOffset mirrors offset within [0, amount].
func invertOffset(offset, amount int) int {
	return core.ClampInt(amount-offset, 0, amount)
}

// dustAmount truncates the amount control to an integer bounded by maxAmount.
func dustAmount(amount float64, maxAmount int) int {
	if !(amount > 0) {
		return 0
	}
	if amount >= float64(maxAmount) {
		return maxAmount
	}
	return int(amount)
}
