// core/constraint/check.go
package constraint

import (
	"math"

	"primerset/core/model"
)

// Check evaluates every constraint against vals. A missing value fails the
// constraint with an infinite deviation.
func Check(vals model.Values, constraints map[model.Property]model.Range) map[model.Property]model.Verdict {
	out := make(map[model.Property]model.Verdict, len(constraints))
	for p, r := range constraints {
		x, ok := vals.Get(p)
		if !ok {
			out[p] = model.Verdict{Pass: false, Deviation: math.Inf(1)}
			continue
		}
		d := r.Deviation(x)
		out[p] = model.Verdict{Pass: d == 0, Deviation: d}
	}
	return out
}

// Passes reports whether vals satisfy every constraint.
func Passes(vals model.Values, constraints map[model.Property]model.Range) bool {
	for p, r := range constraints {
		x, ok := vals.Get(p)
		if !ok || !r.Contains(x) {
			return false
		}
	}
	return true
}

// Annotate sets p.Verdicts for the given snapshot and returns whether p passes.
func Annotate(p *model.Primer, constraints map[model.Property]model.Range) bool {
	p.Verdicts = Check(p.Values, constraints)
	for _, v := range p.Verdicts {
		if !v.Pass {
			return false
		}
	}
	return true
}

// Filter returns the indices of primers passing every active constraint, in
// input order. Primers are not modified.
func Filter(primers []model.Primer, constraints map[model.Property]model.Range) []int {
	out := make([]int, 0, len(primers))
	for i := range primers {
		if Passes(primers[i].Values, constraints) {
			out = append(out, i)
		}
	}
	return out
}

// Score is a non-positive quality score: minus the summed relative deviation
// of every defined value from its nominal range. Deviations are normalized by
// the range width (or 1 for one-sided ranges) so properties on different
// scales weigh alike. Undefined values cost 1 each.
func Score(vals model.Values, nominal map[model.Property]model.Range) float64 {
	s := 0.0
	for p, r := range nominal {
		x, ok := vals.Get(p)
		if !ok {
			s--
			continue
		}
		d := r.Deviation(x)
		if d == 0 {
			continue
		}
		w := 1.0
		if r.Min != nil && r.Max != nil && *r.Max > *r.Min {
			w = *r.Max - *r.Min
		}
		s -= d / w
	}
	return s
}
