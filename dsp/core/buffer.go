package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float32, n int) []float32 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float32, n)
}

// CopyInto copies src into dst and returns the number of copied elements.
func CopyInto(dst, src []float32) int {
	n := min(len(dst), len(src))
	copy(dst[:n], src[:n])
	return n
}

// BlockLen returns the frame count of a planar block: the length of the
// shortest channel, or 0 for an empty block.
func BlockLen(block [][]float32) int {
	if len(block) == 0 {
		return 0
	}
	n := len(block[0])
	for _, ch := range block[1:] {
		if len(ch) < n {
			n = len(ch)
		}
	}
	return n
}

// ToFloat64 widens src into dst and returns the number of converted samples.
func ToFloat64(dst []float64, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = float64(src[i])
	}
	return n
}

// Deinterleave splits interleaved frames into planar channels.
// Each dst channel must hold at least len(src)/len(dst) samples.
func Deinterleave(dst [][]float32, src []float32) int {
	channels := len(dst)
	if channels == 0 {
		return 0
	}
	frames := len(src) / channels
	for f := range frames {
		for c := range channels {
			dst[c][f] = src[f*channels+c]
		}
	}
	return frames
}

// Interleave merges planar channels into interleaved frames.
func Interleave(dst []float32, src [][]float32) int {
	channels := len(src)
	if channels == 0 {
		return 0
	}
	frames := min(BlockLen(src), len(dst)/channels)
	for f := range frames {
		for c := range channels {
			dst[f*channels+c] = src[c][f]
		}
	}
	return frames
}
