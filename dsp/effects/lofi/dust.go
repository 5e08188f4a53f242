package lofi

// smearBack is the ring variant: the current sample picks an offset and is
// replaced by the sample that many positions back in the history.
func (e *Engine) smearBack(st *channelState, x float32, c Controls) float32 {
	h := st.history
	h.Push(x)
	if !h.Full() {
		return x
	}

	amount := dustAmount(c.Amount, e.maxAmount)
	offset := curveOffset(x, amount, c.Curve)
	if c.Invert {
		offset = invertOffset(offset, amount)
	}

	return h.Back(offset)
}

// smearAhead is the lookahead variant. The history holds the last
// MaxBlockSize()+1 samples, so its oldest entry lags the input by exactly
// the reported latency whatever the host block lengths are. That sample
// picks an offset and is replaced by the sample that many positions later.
// Offsets past the newest sample read the newest one.
func (e *Engine) smearAhead(st *channelState, x float32, c Controls) float32 {
	h := st.history
	h.Push(x)
	if !h.Full() {
		return x
	}

	amount := dustAmount(c.Amount, e.maxAmount)
	offset := curveOffset(h.Oldest(), amount, c.Curve)

	return h.At(offset)
}
