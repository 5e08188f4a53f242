// Package dither provides fractional-carry rounding for integer-valued
// control parameters.
//
// A Carry turns a continuous amount such as 2.5 into a stream of integers
// (2, 3, 2, 3, ...) whose running mean approaches the requested value.
package dither
