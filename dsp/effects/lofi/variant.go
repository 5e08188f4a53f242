package lofi

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-lofi/dsp/param"
)

// Variant selects which transform an Engine runs.
type Variant int

const (
	// VariantLinearInterpolator is the breakpoint detector and piecewise
	// linear reconstructor.
	VariantLinearInterpolator Variant = iota
	// VariantDustLookahead is the curve remapper reading forward from a
	// sample delayed by one maximum block. It reports latency.
	VariantDustLookahead
	// VariantDustRing is the curve remapper reading back into a history ring.
	VariantDustRing

	variantCount
)

// Parameter ids shared by the variants.
const (
	ParamAmount    = "amount"
	ParamTolerance = "tolerance"
	ParamDither    = "dither"
	ParamCurve     = "curve"
	ParamInvert    = "invert"
)

type variantInfo struct {
	slug        string
	name        string
	description string

	amountMax     float64
	amountDefault float64
	intAmount     bool
	curveMin      float64

	tolerance bool
	dither    bool
	curve     bool
	invert    bool
	latency   bool
}

var variants = [variantCount]variantInfo{
	VariantLinearInterpolator: {
		slug:        "linear",
		name:        "Linear Interpolator",
		description: "Adaptive piecewise-linear resynthesis under an error tolerance",
		amountMax:   100,
		tolerance:   true,
		dither:      true,
	},
	VariantDustLookahead: {
		slug:          "dust-lookahead",
		name:          "Dust Saturator",
		description:   "Amplitude-dependent sample smear into the following block",
		amountMax:     64,
		amountDefault: 20,
		intAmount:     true,
		curveMin:      0.5,
		curve:         true,
		latency:       true,
	},
	VariantDustRing: {
		slug:          "dust-ring",
		name:          "Dust Saturator (Ring)",
		description:   "Amplitude-dependent sample smear into recent history",
		amountMax:     100,
		amountDefault: 20,
		intAmount:     true,
		curveMin:      0.1,
		curve:         true,
		invert:        true,
	},
}

// Variants returns all known variants in declaration order.
func Variants() []Variant {
	out := make([]Variant, 0, variantCount)
	for v := Variant(0); v < variantCount; v++ {
		out = append(out, v)
	}
	return out
}

// ParseVariant resolves a variant from its slug ("linear", "dust-lookahead",
// "dust-ring"), case-insensitively.
func ParseVariant(s string) (Variant, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for v := Variant(0); v < variantCount; v++ {
		if variants[v].slug == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("lofi: unknown variant: %q", s)
}

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	return v >= 0 && v < variantCount
}

// String returns the variant slug.
func (v Variant) String() string {
	if v.Valid() {
		return variants[v].slug
	}
	return fmt.Sprintf("Variant(%d)", v)
}

// Name returns the display name.
func (v Variant) Name() string {
	if v.Valid() {
		return variants[v].name
	}
	return v.String()
}

// Description returns a one-line summary.
func (v Variant) Description() string {
	if v.Valid() {
		return variants[v].description
	}
	return ""
}

// Layouts returns the supported channel counts, preferred first.
func (v Variant) Layouts() []int {
	return []int{2, 1}
}

// AmountMax returns the upper end of the amount range.
func (v Variant) AmountMax() int {
	return int(v.info().amountMax)
}

// CurveMin returns the lower end of the curve range, or 0 for variants
// without a curve control.
func (v Variant) CurveMin() float64 {
	return v.info().curveMin
}

// ReportsLatency reports whether the variant delays its output by one
// maximum block.
func (v Variant) ReportsLatency() bool {
	return v.info().latency
}

// Supports reports whether the variant reads the control with the given id.
func (v Variant) Supports(id string) bool {
	info := v.info()
	switch id {
	case ParamAmount:
		return v.Valid()
	case ParamTolerance:
		return info.tolerance
	case ParamDither:
		return info.dither
	case ParamCurve:
		return info.curve
	case ParamInvert:
		return info.invert
	default:
		return false
	}
}

// Parameters returns the host-facing parameter list.
func (v Variant) Parameters() []param.Descriptor {
	info := v.info()
	if !v.Valid() {
		return nil
	}

	var out []param.Descriptor
	if info.intAmount {
		out = append(out, param.Int(ParamAmount, "Amount", 0, int(info.amountMax), int(info.amountDefault)))
	} else {
		out = append(out, param.Float(ParamAmount, "Amount", 0, info.amountMax, info.amountDefault))
	}
	if info.tolerance {
		out = append(out, param.Float(ParamTolerance, "Tolerance", 0, 1, 1))
	}
	if info.dither {
		out = append(out, param.Bool(ParamDither, "Dither", false))
	}
	if info.curve {
		out = append(out, param.Float(ParamCurve, "Curve", info.curveMin, 1, 1))
	}
	if info.invert {
		out = append(out, param.Bool(ParamInvert, "Invert", false))
	}
	return out
}

func (v Variant) info() variantInfo {
	if v.Valid() {
		return variants[v]
	}
	return variantInfo{}
}
