package lofi

import (
	"github.com/cwbudde/algo-lofi/dsp/core"
	"github.com/cwbudde/algo-lofi/dsp/ring"
)

// segment is the line currently being replayed on one channel.
//
// remaining counts the history positions already covered by the line that
// have not yet reached the head of the history. While it is non-zero the
// channel is InSegment and detection is skipped; at zero it is Fresh.
type segment struct {
	anchor    float32
	gradient  float32
	remaining int
	length    int // end point of the most recent detection
}

// interpolate runs one sample through the breakpoint detector and
// reconstructor. The output is the line value for the oldest history
// position, so the effect lags the input by the history capacity.
func (e *Engine) interpolate(st *channelState, x float32, c Controls) float32 {
	h := st.history
	if !h.Full() {
		h.Push(x)
		return x
	}

	if st.segment.remaining > 0 {
		st.segment.remaining--
		st.segment.anchor = core.FlushDenormals32(st.segment.anchor + st.segment.gradient)
	} else {
		amount := st.carry.Round(c.Amount, c.Dither)
		amount = core.ClampInt(amount, 1, h.Cap()-1)
		st.segment.detect(h, amount, float32(c.Tolerance))
	}

	h.Push(x)

	return st.segment.anchor
}

// detect fits a line from the oldest sample towards h[amount] and keeps the
// longest prefix whose every interior point lies within tolerance. The scan
// stops at the first violating index; a deviation exactly equal to the
// tolerance still extends the segment. amount must be in [1, h.Cap()-1].
func (s *segment) detect(h *ring.History, amount int, tolerance float32) int {
	anchor := h.At(0)
	gradient := (h.At(amount) - anchor) / float32(amount)

	end := amount
	for i := 1; i < amount; i++ {
		approx := anchor + gradient*float32(i)
		if abs32(approx-h.At(i)) > tolerance {
			end = i
			break
		}
	}

	s.anchor = anchor
	s.gradient = (h.At(end) - anchor) / float32(end)
	s.remaining = end - 1
	s.length = end

	return end
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
