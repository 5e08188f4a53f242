//go:build fastmath

package lofi

import (
	"github.com/meko-christian/algo-approx"
)

// mathPow computes x^y as exp(y*ln x) using fast approximations.
// The exact cases keep curve=1 and silent input bit-identical to math.Pow.
func mathPow(x, y float64) float64 {
	switch {
	case y == 0:
		return 1
	case y == 1:
		return x
	case x == 0:
		return 0
	}
	return approx.FastExp(y * approx.FastLog(x))
}
