// core/settings/relax.go
package settings

import (
	"math"

	"primerset/core/model"
)

// Relax widens every constraint of current that has not yet reached its
// relaxation boundary by one step toward that boundary. The step per side is
// (boundary − nominal)/RelaxSteps; an unbounded boundary side drops the bound
// on the first step. It returns a new snapshot and the properties that moved;
// when nothing moved the snapshot equals current.
func Relax(nominal, current Spec) (Spec, []model.Property) {
	next := current.Clone()
	var moved []model.Property
	steps := float64(max(current.RelaxSteps, 1))
	for _, p := range current.Active() {
		b, ok := current.Relaxation[p]
		if !ok {
			continue
		}
		nom := nominal.Constraints[p]
		cur := current.Constraints[p]
		lo, loMoved := relaxSide(cur.Min, nom.Min, b.Min, steps, -1)
		hi, hiMoved := relaxSide(cur.Max, nom.Max, b.Max, steps, +1)
		if loMoved || hiMoved {
			next.Constraints[p] = model.Range{Min: lo, Max: hi}
			moved = append(moved, p)
		}
	}
	return next, moved
}

// relaxSide moves one bound by one step in direction dir (-1 lowers a min,
// +1 raises a max).
func relaxSide(cur, nom, bound *float64, steps float64, dir float64) (*float64, bool) {
	if cur == nil {
		return nil, false
	}
	if bound == nil {
		return nil, true
	}
	if dir*(*bound-*cur) <= eps(*bound) {
		v := *cur
		return &v, false
	}
	ref := *cur
	if nom != nil {
		ref = *nom
	}
	step := math.Abs(*bound-ref) / steps
	v := *cur + dir*step
	if step == 0 || dir*(*bound-v) <= eps(*bound) {
		v = *bound
	}
	return &v, true
}

func eps(x float64) float64 { return 1e-9 * math.Max(1, math.Abs(x)) }

// Relaxable lists constraints of s that can still be widened.
func Relaxable(s Spec) []model.Property {
	_, moved := Relax(s, s)
	return moved
}

// RelaxFraction reports, per constraint, how far current has moved from
// nominal toward the boundary: 0 = nominal, 1 = at the boundary (or bound
// dropped). Constraints without a boundary report 0.
func RelaxFraction(nominal, current Spec) map[model.Property]float64 {
	out := make(map[model.Property]float64, len(current.Constraints))
	for _, p := range current.Active() {
		b, ok := current.Relaxation[p]
		if !ok {
			out[p] = 0
			continue
		}
		nom, cur := nominal.Constraints[p], current.Constraints[p]
		sum, n := 0.0, 0
		for _, side := range [][3]*float64{{nom.Min, cur.Min, b.Min}, {nom.Max, cur.Max, b.Max}} {
			nv, cv, bv := side[0], side[1], side[2]
			if nv == nil {
				continue
			}
			n++
			switch {
			case cv == nil || bv == nil:
				if cv == nil {
					sum++
				}
			case *bv == *nv:
				sum++
			default:
				sum += (*cv - *nv) / (*bv - *nv)
			}
		}
		if n > 0 {
			out[p] = sum / float64(n)
		}
	}
	return out
}
