package param

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
)

// ErrUnknown is returned for ids not present in a Set.
var ErrUnknown = errors.New("param: unknown id")

// Parameter pairs a descriptor with its current plain value.
// Value and Store are safe for concurrent use.
type Parameter struct {
	Descriptor

	bits atomic.Uint64
}

// Value returns the current plain value.
func (p *Parameter) Value() float64 {
	return math.Float64frombits(p.bits.Load())
}

// Bool reports whether a switch is on (any non-zero value).
func (p *Parameter) Bool() bool {
	return p.Value() != 0
}

// Store constrains v to the descriptor and stores it.
func (p *Parameter) Store(v float64) float64 {
	v = p.Constrain(v)
	p.bits.Store(math.Float64bits(v))
	return v
}

// Nudge moves the value by the given number of steps. Continuous parameters
// use a hundredth of their range per step.
func (p *Parameter) Nudge(steps int) float64 {
	step := 1.0
	if p.Kind == KindFloat {
		step = (p.Max - p.Min) / 100
	}
	return p.Store(p.Value() + float64(steps)*step)
}

// Reset restores the default value.
func (p *Parameter) Reset() {
	p.Store(p.Default)
}

// Set is an ordered collection of parameters.
type Set struct {
	params []*Parameter
	byID   map[string]*Parameter
}

// NewSet validates the descriptors and returns a set holding their defaults.
func NewSet(descs ...Descriptor) (*Set, error) {
	s := &Set{
		params: make([]*Parameter, 0, len(descs)),
		byID:   make(map[string]*Parameter, len(descs)),
	}

	for _, d := range descs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, exists := s.byID[d.ID]; exists {
			return nil, fmt.Errorf("param: duplicate id: %s", d.ID)
		}

		p := &Parameter{Descriptor: d}
		p.Reset()
		s.params = append(s.params, p)
		s.byID[d.ID] = p
	}

	return s, nil
}

// Len returns the number of parameters.
func (s *Set) Len() int { return len(s.params) }

// At returns the i-th parameter in declaration order.
func (s *Set) At(i int) *Parameter { return s.params[i] }

// Lookup returns the parameter with the given id, or nil.
func (s *Set) Lookup(id string) *Parameter { return s.byID[id] }

// Value returns the current plain value of id, or def if id is unknown.
func (s *Set) Value(id string, def float64) float64 {
	if p := s.byID[id]; p != nil {
		return p.Value()
	}
	return def
}

// Store sets the plain value of id and returns the constrained value.
func (s *Set) Store(id string, v float64) (float64, error) {
	p := s.byID[id]
	if p == nil {
		return 0, fmt.Errorf("%w: %s", ErrUnknown, id)
	}
	return p.Store(v), nil
}

// Reset restores every parameter to its default.
func (s *Set) Reset() {
	for _, p := range s.params {
		p.Reset()
	}
}
