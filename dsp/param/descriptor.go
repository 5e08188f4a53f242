package param

import (
	"fmt"
	"math"
	"strconv"
)

// Kind selects how a parameter value is quantized and displayed.
type Kind int

const (
	// KindFloat is a continuous parameter.
	KindFloat Kind = iota
	// KindInt is an integer parameter with unit steps.
	KindInt
	// KindBool is an on/off switch stored as 0 or 1.
	KindBool

	kindCount
)

var kindNames = [kindCount]string{"float", "int", "bool"}

// String returns the kind name.
func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

// Descriptor is the static definition of one parameter.
type Descriptor struct {
	ID      string
	Name    string
	Unit    string
	Kind    Kind
	Min     float64
	Max     float64
	Default float64
}

// Float describes a continuous parameter.
func Float(id, name string, lo, hi, def float64) Descriptor {
	return Descriptor{ID: id, Name: name, Kind: KindFloat, Min: lo, Max: hi, Default: def}
}

// Int describes an integer parameter.
func Int(id, name string, lo, hi, def int) Descriptor {
	return Descriptor{ID: id, Name: name, Kind: KindInt, Min: float64(lo), Max: float64(hi), Default: float64(def)}
}

// Bool describes a switch.
func Bool(id, name string, def bool) Descriptor {
	d := Descriptor{ID: id, Name: name, Kind: KindBool, Min: 0, Max: 1}
	if def {
		d.Default = 1
	}
	return d
}

// Validate checks that the descriptor is usable.
func (d Descriptor) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("param: empty id for %q", d.Name)
	}
	if !d.Kind.Valid() {
		return fmt.Errorf("param %s: invalid kind: %d", d.ID, d.Kind)
	}
	if math.IsNaN(d.Min) || math.IsNaN(d.Max) || math.IsInf(d.Min, 0) || math.IsInf(d.Max, 0) || d.Min > d.Max {
		return fmt.Errorf("param %s: invalid range [%g, %g]", d.ID, d.Min, d.Max)
	}
	if math.IsNaN(d.Default) || d.Default < d.Min || d.Default > d.Max {
		return fmt.Errorf("param %s: default %g outside [%g, %g]", d.ID, d.Default, d.Min, d.Max)
	}
	return nil
}

// StepCount returns the number of discrete steps: 0 for continuous
// parameters, Max-Min for integers and 1 for switches.
func (d Descriptor) StepCount() int {
	switch d.Kind {
	case KindInt:
		return int(d.Max - d.Min)
	case KindBool:
		return 1
	default:
		return 0
	}
}

// Constrain clamps v to the range and snaps it to the kind's grid.
// NaN maps to the default.
func (d Descriptor) Constrain(v float64) float64 {
	if math.IsNaN(v) {
		return d.Default
	}
	if v < d.Min {
		v = d.Min
	} else if v > d.Max {
		v = d.Max
	}

	switch d.Kind {
	case KindInt:
		v = math.Round(v)
	case KindBool:
		if v >= 0.5 {
			return 1
		}
		return 0
	}
	return v
}

// Normalize maps a plain value to [0, 1].
func (d Descriptor) Normalize(plain float64) float64 {
	if d.Max <= d.Min {
		return 0
	}
	return (d.Constrain(plain) - d.Min) / (d.Max - d.Min)
}

// Denormalize maps a normalized value in [0, 1] to a plain value.
func (d Descriptor) Denormalize(normalized float64) float64 {
	if normalized < 0 {
		normalized = 0
	} else if normalized > 1 {
		normalized = 1
	}
	return d.Constrain(d.Min + normalized*(d.Max-d.Min))
}

// Format renders a plain value for display.
func (d Descriptor) Format(plain float64) string {
	plain = d.Constrain(plain)

	var s string
	switch d.Kind {
	case KindBool:
		if plain != 0 {
			return "On"
		}
		return "Off"
	case KindInt:
		s = strconv.Itoa(int(plain))
	default:
		s = strconv.FormatFloat(plain, 'f', 2, 64)
	}

	if d.Unit != "" {
		s += " " + d.Unit
	}
	return s
}
