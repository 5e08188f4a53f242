package lofi

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-lofi/dsp/core"
	"github.com/cwbudde/algo-lofi/dsp/param"
)

// Controls holds one already-smoothed value per control. Fields a variant
// does not read are ignored.
type Controls struct {
	// Amount is the lookahead depth (linear interpolator) or the maximum
	// displacement in samples (dust variants). Dust variants truncate it to
	// an integer.
	Amount float64
	// Tolerance is the maximum deviation from the fitted line, in [0, 1].
	Tolerance float64
	// Curve is the amplitude-to-offset exponent.
	Curve float64
	// Dither enables fractional-carry rounding of Amount.
	Dither bool
	// Invert flips the remapped offset (ring variant).
	Invert bool
}

// DefaultControls returns the variant's parameter defaults.
func DefaultControls(v Variant) Controls {
	info := v.info()
	return Controls{
		Amount:    info.amountDefault,
		Tolerance: 1,
		Curve:     1,
	}
}

// Automation supplies controls for sample-accurate processing. Next is
// called once per sample frame; all channels of that frame share the value.
type Automation interface {
	Next() Controls
}

// AutomationFunc adapts a function to Automation.
type AutomationFunc func() Controls

// Next calls f.
func (f AutomationFunc) Next() Controls { return f() }

// validate rejects values outside the variant's declared ranges.
func (v Variant) validate(c Controls) error {
	info := v.info()
	if !core.InRange(c.Amount, 0, info.amountMax) {
		return fmt.Errorf("%s amount must be in [0, %g]: %f", v, info.amountMax, c.Amount)
	}
	if info.tolerance && !core.InRange(c.Tolerance, 0, 1) {
		return fmt.Errorf("%s tolerance must be in [0, 1]: %f", v, c.Tolerance)
	}
	if info.curve && !core.InRange(c.Curve, info.curveMin, 1) {
		return fmt.Errorf("%s curve must be in [%g, 1]: %f", v, info.curveMin, c.Curve)
	}
	return nil
}

// constrain clamps automation values into range without failing. NaN falls
// back to the lower bound.
func (v Variant) constrain(c Controls) Controls {
	info := v.info()
	c.Amount = clampControl(c.Amount, 0, info.amountMax)
	c.Tolerance = clampControl(c.Tolerance, 0, 1)
	if info.curve {
		c.Curve = clampControl(c.Curve, info.curveMin, 1)
	}
	return c
}

func clampControl(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		return lo
	}
	return core.Clamp(x, lo, hi)
}

// NewParamSet returns a parameter set for v holding its defaults.
func NewParamSet(v Variant) (*param.Set, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("lofi: invalid variant: %d", v)
	}
	return param.NewSet(v.Parameters()...)
}

// ControlsFrom reads the current values of set. Ids missing from the set
// keep the variant defaults.
func ControlsFrom(v Variant, set *param.Set) Controls {
	c := DefaultControls(v)
	if set == nil {
		return c
	}
	c.Amount = set.Value(ParamAmount, c.Amount)
	c.Tolerance = set.Value(ParamTolerance, c.Tolerance)
	c.Curve = set.Value(ParamCurve, c.Curve)
	c.Dither = set.Value(ParamDither, 0) != 0
	c.Invert = set.Value(ParamInvert, 0) != 0
	return c
}
