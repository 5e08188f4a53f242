package lofi

import (
	"fmt"

	"github.com/cwbudde/algo-lofi/dsp/core"
	"github.com/cwbudde/algo-lofi/dsp/dither"
	"github.com/cwbudde/algo-lofi/dsp/ring"
)

// Engine runs one variant over planar float32 blocks in place.
type Engine struct {
	variant      Variant
	maxBlockSize int
	maxAmount    int
	controls     Controls

	channels []channelState
}

// channelState is everything one channel carries between samples and blocks.
type channelState struct {
	history *ring.History

	// linear interpolator
	carry   dither.Carry
	segment segment
}

// NewEngine creates an engine for v with the given options.
func NewEngine(v Variant, opts ...Option) (*Engine, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("lofi: invalid variant: %d", v)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	maxAmount := v.AmountMax()
	if cfg.maxAmount != 0 {
		if cfg.maxAmount > maxAmount {
			return nil, fmt.Errorf("lofi %s max amount must be in [1, %d]: %d", v, maxAmount, cfg.maxAmount)
		}
		maxAmount = cfg.maxAmount
	}

	controls := DefaultControls(v)
	if cfg.controls != nil {
		if err := v.validate(*cfg.controls); err != nil {
			return nil, err
		}
		controls = *cfg.controls
	}

	e := &Engine{
		variant:      v,
		maxBlockSize: cfg.maxBlockSize,
		maxAmount:    maxAmount,
		controls:     controls,
		channels:     make([]channelState, cfg.channels),
	}

	for i := range e.channels {
		depth := maxAmount + 1
		if v == VariantDustLookahead {
			depth = cfg.maxBlockSize + 1
		}
		h, err := ring.New(depth)
		if err != nil {
			return nil, err
		}
		e.channels[i].history = h
	}

	return e, nil
}

// Process transforms block in place using the current controls.
// block holds one slice per channel; channels beyond Channels() are left
// untouched. Blocks longer than MaxBlockSize are processed in chunks.
func (e *Engine) Process(block [][]float32) {
	e.process(block, nil)
}

// ProcessAutomated is like Process but pulls one Controls value per sample
// frame from auto. Values are clamped into the variant's ranges.
func (e *Engine) ProcessAutomated(block [][]float32, auto Automation) {
	e.process(block, auto)
}

func (e *Engine) process(block [][]float32, auto Automation) {
	channels := min(len(block), len(e.channels))
	if channels == 0 {
		return
	}
	block = block[:channels]
	n := core.BlockLen(block)

	for start := 0; start < n; start += e.maxBlockSize {
		end := min(start+e.maxBlockSize, n)
		e.processChunk(block, start, end, auto)
	}
}

func (e *Engine) processChunk(block [][]float32, start, end int, auto Automation) {
	c := e.controls
	for i := start; i < end; i++ {
		if auto != nil {
			c = e.variant.constrain(auto.Next())
		}

		for ch := range block {
			st := &e.channels[ch]
			x := block[ch][i]

			switch e.variant {
			case VariantLinearInterpolator:
				block[ch][i] = e.interpolate(st, x, c)
			case VariantDustRing:
				block[ch][i] = e.smearBack(st, x, c)
			case VariantDustLookahead:
				block[ch][i] = e.smearAhead(st, x, c)
			}
		}
	}
}

// Latency returns the output delay the host should compensate, in samples.
// It does not depend on the lengths of the blocks actually delivered.
func (e *Engine) Latency() int {
	if e.variant.ReportsLatency() {
		return e.maxBlockSize
	}
	return 0
}

// Reset returns every channel to its freshly constructed state.
func (e *Engine) Reset() {
	for i := range e.channels {
		st := &e.channels[i]
		st.history.Reset()
		st.carry.Reset()
		st.segment = segment{}
	}
}

// SetControls replaces all controls after validating them.
func (e *Engine) SetControls(c Controls) error {
	if err := e.variant.validate(c); err != nil {
		return err
	}
	e.controls = c
	return nil
}

// ApplyControls clamps c into the variant's ranges and applies it. NaN
// values fall back to the lower bound. It returns the controls in effect.
func (e *Engine) ApplyControls(c Controls) Controls {
	e.controls = e.variant.constrain(c)
	return e.controls
}

// SetAmount sets the amount in [0, AmountMax()].
func (e *Engine) SetAmount(amount float64) error {
	c := e.controls
	c.Amount = amount
	return e.SetControls(c)
}

// SetTolerance sets the fit tolerance in [0, 1].
func (e *Engine) SetTolerance(tolerance float64) error {
	if !e.variant.Supports(ParamTolerance) {
		return fmt.Errorf("lofi %s has no tolerance control", e.variant)
	}
	c := e.controls
	c.Tolerance = tolerance
	return e.SetControls(c)
}

// SetCurve sets the remap exponent in [CurveMin(), 1].
func (e *Engine) SetCurve(curve float64) error {
	if !e.variant.Supports(ParamCurve) {
		return fmt.Errorf("lofi %s has no curve control", e.variant)
	}
	c := e.controls
	c.Curve = curve
	return e.SetControls(c)
}

// SetDither enables fractional-carry rounding of the amount.
func (e *Engine) SetDither(enabled bool) error {
	if !e.variant.Supports(ParamDither) {
		return fmt.Errorf("lofi %s has no dither control", e.variant)
	}
	e.controls.Dither = enabled
	return nil
}

// SetInvert flips the remapped offset.
func (e *Engine) SetInvert(enabled bool) error {
	if !e.variant.Supports(ParamInvert) {
		return fmt.Errorf("lofi %s has no invert control", e.variant)
	}
	e.controls.Invert = enabled
	return nil
}

// Variant returns the configured variant.
func (e *Engine) Variant() Variant { return e.variant }

// Channels returns the number of processed channels.
func (e *Engine) Channels() int { return len(e.channels) }

// MaxBlockSize returns the largest block processed in one piece.
func (e *Engine) MaxBlockSize() int { return e.maxBlockSize }

// MaxAmount returns the history depth bound.
func (e *Engine) MaxAmount() int { return e.maxAmount }

// Controls returns the current static controls.
func (e *Engine) Controls() Controls { return e.controls }

// Amount returns the current amount.
func (e *Engine) Amount() float64 { return e.controls.Amount }

// Tolerance returns the current tolerance.
func (e *Engine) Tolerance() float64 { return e.controls.Tolerance }

// Curve returns the current curve exponent.
func (e *Engine) Curve() float64 { return e.controls.Curve }

// Dither reports whether fractional-carry rounding is enabled.
func (e *Engine) Dither() bool { return e.controls.Dither }

// Invert reports whether the remapped offset is flipped.
func (e *Engine) Invert() bool { return e.controls.Invert }
