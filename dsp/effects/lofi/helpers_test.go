package lofi

import "github.com/cwbudde/algo-lofi/dsp/ring"

// newHistoryFrom returns a full history holding samples oldest-first.
func newHistoryFrom(samples []float32) (*ring.History, error) {
	h, err := ring.New(len(samples))
	if err != nil {
		return nil, err
	}
	for _, s := range samples {
		h.Push(s)
	}
	return h, nil
}
