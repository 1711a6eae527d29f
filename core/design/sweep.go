// core/design/sweep.go
package design

import (
	"context"
	"math"

	"primerset/core/model"
	"primerset/core/primer"
	"primerset/core/setcover"
	"primerset/core/settings"
	"primerset/core/thermo"
)

// sweep re-optimizes the surviving pool restricted to sliding melting
// temperature windows [lo, lo+Width], lo advancing by Step from the lowest
// survivor Tm. Windows always use the greedy optimizer.
func sweep(ctx context.Context, survivors []model.Primer, templates []model.Template, sw settings.Sweep, req Request) []SweepPoint {
	if sw.Width <= 0 || sw.Step <= 0 || len(survivors) == 0 {
		return nil
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range survivors {
		if tm, ok := p.Values.Get(model.MeltingTemp); ok {
			lo, hi = math.Min(lo, tm), math.Max(hi, tm)
		}
	}
	if math.IsInf(lo, 1) {
		return nil
	}
	greedy := req
	greedy.Optimizer = setcover.Greedy

	var out []SweepPoint
	for start := lo; ; start += sw.Step {
		end := start + sw.Width
		var idx []int
		for i, p := range survivors {
			if tm, ok := p.Values.Get(model.MeltingTemp); ok && tm >= start && tm <= end {
				idx = append(idx, i)
			}
		}
		window := pick(survivors, idx)
		sel, _ := optimize(ctx, window, templates, greedy)
		chosen := pick(window, sel)
		pt := SweepPoint{MinTm: start, MaxTm: end, Candidates: len(idx), SetSize: len(chosen)}
		pt.Ratio = ratioOf(coveredMask(chosen, len(templates), req.Direction))
		out = append(out, pt)
		if end >= hi {
			break
		}
	}
	return out
}

func ratioOf(mask []bool) float64 {
	if len(mask) == 0 {
		return 0
	}
	n := 0
	for _, c := range mask {
		if c {
			n++
		}
	}
	return float64(n) / float64(len(mask))
}

// setStats reports the Tm spread and the worst cross-dimer of a selection.
func setStats(selected []model.Primer, spec settings.Spec) SetStats {
	var st SetStats
	first := true
	for _, p := range selected {
		tm, ok := p.Values.Get(model.MeltingTemp)
		if !ok {
			continue
		}
		if first {
			st.TmMin, st.TmMax, first = tm, tm, false
			continue
		}
		st.TmMin, st.TmMax = math.Min(st.TmMin, tm), math.Max(st.TmMax, tm)
	}
	st.TmSpread = st.TmMax - st.TmMin

	na := spec.PCR.EffectiveMonovalent()
	for i := 0; i < len(selected); i++ {
		for j := i + 1; j < len(selected); j++ {
			dg := crossDimer(selected[i].Seq, selected[j].Seq, na, spec.PCR.AnnealC)
			if dg < st.WorstCrossDimer {
				st.WorstCrossDimer = dg
				st.CrossDimerPair = [2]string{selected[i].ID, selected[j].ID}
			}
		}
	}
	return st
}

// crossDimer evaluates the first expansion of each (possibly degenerate)
// primer.
func crossDimer(a, b string, naM, tempC float64) float64 {
	ea, eb := firstExpansion(a), firstExpansion(b)
	if ea == "" || eb == "" {
		return 0
	}
	return thermo.DimerDeltaG(ea, eb, naM, tempC)
}

func firstExpansion(s string) string {
	if e := primer.Expand(s, 1); len(e) > 0 {
		return e[0]
	}
	return ""
}
