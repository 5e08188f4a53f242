package ring

import (
	"fmt"

	"github.com/cwbudde/algo-lofi/dsp/core"
)

// History is a fixed-capacity FIFO of float32 samples.
type History struct {
	buffer   []float32
	writePos int
	count    int
}

// New returns an empty history holding at most capacity samples.
func New(capacity int) (*History, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("ring capacity must be > 0: %d", capacity)
	}
	return &History{buffer: make([]float32, capacity)}, nil
}

// Cap returns the fixed capacity.
func (h *History) Cap() int {
	return len(h.buffer)
}

// Len returns the number of buffered samples.
func (h *History) Len() int {
	return h.count
}

// Full reports whether the warm-up phase is over.
func (h *History) Full() bool {
	return h.count == len(h.buffer)
}

// Push appends sample. Once the history is full the oldest sample is
// evicted and returned with evicted=true; before that the history only grows.
func (h *History) Push(sample float32) (old float32, evicted bool) {
	if h.count == len(h.buffer) {
		old = h.buffer[h.writePos]
		evicted = true
	} else {
		h.count++
	}

	h.buffer[h.writePos] = sample
	h.writePos++
	if h.writePos >= len(h.buffer) {
		h.writePos = 0
	}

	return old, evicted
}

// At returns the sample offset positions after the oldest one.
// Offsets outside [0, Len()-1] are clamped; an empty history reads 0.
func (h *History) At(offset int) float32 {
	if h.count == 0 {
		return 0
	}
	offset = core.ClampInt(offset, 0, h.count-1)

	size := len(h.buffer)
	idx := h.writePos - h.count + offset
	if idx < 0 {
		idx += size
	} else if idx >= size {
		idx -= size
	}
	return h.buffer[idx]
}

// Back returns the sample k positions before the newest one; Back(0) is the
// most recent push. k is clamped like At.
func (h *History) Back(k int) float32 {
	return h.At(h.count - 1 - k)
}

// Oldest returns At(0).
func (h *History) Oldest() float32 {
	return h.At(0)
}

// Reset empties the history.
func (h *History) Reset() {
	for i := range h.buffer {
		h.buffer[i] = 0
	}
	h.writePos = 0
	h.count = 0
}
