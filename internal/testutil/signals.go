package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a float32 sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float32 {
	out := make([]float32, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = float32(amplitude * math.Sin(step*float64(i)))
	}
	return out
}

// DeterministicNoise generates white noise in [-amplitude, amplitude] with a
// fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float32 {
	out := make([]float32, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = float32((rng.Float64()*2 - 1) * amplitude)
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float32, length int) []float32 {
	out := make([]float32, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Repeat concatenates count copies of pattern.
func Repeat(pattern []float32, count int) []float32 {
	out := make([]float32, 0, len(pattern)*max(count, 0))
	for range count {
		out = append(out, pattern...)
	}
	return out
}

// Blocks splits a mono signal into consecutive blocks of size frames,
// duplicated across channels. The last block may be shorter.
func Blocks(signal []float32, size, channels int) [][][]float32 {
	var out [][][]float32
	for start := 0; start < len(signal); start += size {
		end := min(start+size, len(signal))
		block := make([][]float32, channels)
		for c := range block {
			block[c] = append([]float32(nil), signal[start:end]...)
		}
		out = append(out, block)
	}
	return out
}
