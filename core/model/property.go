// core/model/property.go
package model

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Property names the fixed vocabulary of evaluated primer properties.
type Property string

const (
	PrimerLength       Property = "primer_length"
	GCRatio            Property = "gc_ratio"
	GCClamp            Property = "gc_clamp"
	NoRuns             Property = "no_runs"
	NoRepeats          Property = "no_repeats"
	MeltingTemp        Property = "melting_temp"
	SelfDimerization   Property = "self_dimerization"
	SecondaryStructure Property = "secondary_structure"
	AnnealingDeltaG    Property = "annealing_delta_g"
	PrimerCoverage     Property = "primer_coverage"
	PrimerSpecificity  Property = "primer_specificity"
)

// Properties lists the vocabulary in report order.
var Properties = []Property{
	PrimerLength, GCRatio, GCClamp, NoRuns, NoRepeats, MeltingTemp,
	SelfDimerization, SecondaryStructure, AnnealingDeltaG,
	PrimerCoverage, PrimerSpecificity,
}

// Known reports whether p is part of the vocabulary.
func (p Property) Known() bool {
	for _, q := range Properties {
		if p == q {
			return true
		}
	}
	return false
}

// CoverageDependent properties change with the coverage rule and region option.
func (p Property) CoverageDependent() bool {
	return p == PrimerCoverage || p == PrimerSpecificity
}

/* -------------------------------- values -------------------------------- */

// Values holds evaluated properties. A missing key is "undefined".
type Values map[Property]float64

// Get returns the value and whether it is defined (NaN counts as undefined).
func (v Values) Get(p Property) (float64, bool) {
	x, ok := v[p]
	if !ok || math.IsNaN(x) {
		return 0, false
	}
	return x, true
}

func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	for k, x := range v {
		out[k] = x
	}
	return out
}

// Merge copies every defined value of o into v.
func (v Values) Merge(o Values) {
	for k, x := range o {
		if !math.IsNaN(x) {
			v[k] = x
		}
	}
}

// Keys returns the defined property names sorted.
func (v Values) Keys() []Property {
	out := make([]Property, 0, len(v))
	for k := range v {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

/* -------------------------------- ranges -------------------------------- */

// Range is a {min,max} bound; a nil side is unbounded.
type Range struct {
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty" mapstructure:"min"`
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty" mapstructure:"max"`
}

// Bounded returns [lo,hi].
func Bounded(lo, hi float64) Range { return Range{Min: &lo, Max: &hi} }

// AtLeast returns [lo,∞).
func AtLeast(lo float64) Range { return Range{Min: &lo} }

// AtMost returns (-∞,hi].
func AtMost(hi float64) Range { return Range{Max: &hi} }

// Unbounded reports whether neither side is set.
func (r Range) Unbounded() bool { return r.Min == nil && r.Max == nil }

// Deviation is the distance of x outside the range (0 when inside).
func (r Range) Deviation(x float64) float64 {
	if r.Min != nil && x < *r.Min {
		return *r.Min - x
	}
	if r.Max != nil && x > *r.Max {
		return x - *r.Max
	}
	return 0
}

// Contains reports whether x satisfies both sides.
func (r Range) Contains(x float64) bool { return r.Deviation(x) == 0 }

// Within reports whether r lies inside outer (r is at least as strict).
func (r Range) Within(outer Range) bool {
	if outer.Min != nil && (r.Min == nil || *r.Min < *outer.Min) {
		return false
	}
	if outer.Max != nil && (r.Max == nil || *r.Max > *outer.Max) {
		return false
	}
	return true
}

// Clone returns a range that shares no pointers with r.
func (r Range) Clone() Range {
	var out Range
	if r.Min != nil {
		v := *r.Min
		out.Min = &v
	}
	if r.Max != nil {
		v := *r.Max
		out.Max = &v
	}
	return out
}

func (r Range) String() string {
	lo, hi := "-inf", "+inf"
	if r.Min != nil {
		lo = strconv.FormatFloat(*r.Min, 'g', 6, 64)
	}
	if r.Max != nil {
		hi = strconv.FormatFloat(*r.Max, 'g', 6, 64)
	}
	return fmt.Sprintf("[%s,%s]", lo, hi)
}

// Verdict is the outcome of one constraint.
type Verdict struct {
	Pass      bool
	Deviation float64 // 0 when inside; +Inf when the value is undefined
}
