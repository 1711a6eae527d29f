package setcover

import (
	"context"
	"time"

	"github.com/crillab/gophersat/maxsat"

	"primerset/core/coverage"
)

// Pair is a forward and a reverse selection chosen together. A template
// counts as covered only when both selections cover it.
type Pair struct {
	Fw, Rev  Selection
	Covered  int
	Ratio    float64
	Target   int
	Strategy Strategy
	Optimal  bool
	Fallback bool
	Reason   string
}

// Met reports whether the pair reaches its target.
func (p Pair) Met() bool { return p.Covered >= p.Target }

// RunGreedyPair restricts both matrices to the templates that both pools can
// cover, picks forward primers greedily toward ceil(required·|T|), then picks
// reverse primers greedily against the templates the forward set reached.
// fw and rev must share the template axis.
func RunGreedyPair(fw, rev coverage.Matrix, required float64) Pair {
	target := Target(required, fw.Templates)
	joint := coverage.Both(fw.CoverableMask(), rev.CoverableMask())
	fwM := fw.Restrict(joint)
	fwSel := greedyOrder(fwM, target)
	revSel := greedyOrder(rev.Restrict(fwM.Covered(fwSel)), target)
	return pairResult(fw, rev, fwSel, revSel, target, Greedy)
}

// RunExactPair minimizes |fw| + |rev| in one MaxSAT model:
//
//	soft  ¬f_i, ¬r_i
//	hard  ¬t_j ∨ f_a ∨ f_b ...
//	hard  ¬t_j ∨ r_a ∨ r_b ...
//	hard  Σ t_j ≥ target
//
// Infeasible, timed out or cancelled solves fall back to RunGreedyPair.
func RunExactPair(ctx context.Context, fw, rev coverage.Matrix, required float64, timeout time.Duration) Pair {
	target := Target(required, fw.Templates)
	nf, nr := fw.Candidates(), rev.Candidates()
	if target == 0 || nf == 0 || nr == 0 {
		p := RunGreedyPair(fw, rev, required)
		p.Strategy, p.Optimal = Exact, target == 0
		return p
	}
	picked, err := solve(ctx, pairProblem(fw, rev, target), nf+nr, timeout)
	var p Pair
	if err == nil {
		var fwSel, revSel []int
		for _, i := range picked {
			if i < nf {
				fwSel = append(fwSel, i)
			} else {
				revSel = append(revSel, i-nf)
			}
		}
		p = pairResult(fw, rev, fwSel, revSel, target, Exact)
		if !p.Met() {
			err = ErrInfeasible
		}
	}
	if err != nil {
		g := RunGreedyPair(fw, rev, required)
		g.Strategy, g.Fallback, g.Reason = Exact, true, err.Error()
		return g
	}
	p.Optimal = true
	return p
}

func pairProblem(fw, rev coverage.Matrix, target int) []maxsat.Constr {
	nf := fw.Candidates()
	cs := append(coverClausesFrom(fw, 0), coverClausesFrom(rev, nf)...)
	lits := make([]maxsat.Lit, fw.Templates)
	coeffs := make([]int, fw.Templates)
	for j := range lits {
		lits[j], coeffs[j] = maxsat.Var(tVar(j)), 1
	}
	cs = append(cs, maxsat.HardPBConstr(lits, coeffs, target))
	for i := 0; i < nf+rev.Candidates(); i++ {
		cs = append(cs, maxsat.SoftClause(maxsat.Not(pVar(i))))
	}
	return cs
}

func pairResult(fw, rev coverage.Matrix, fwSel, revSel []int, target int, s Strategy) Pair {
	p := Pair{
		Fw:       finish(fw, fwSel, target, s),
		Rev:      finish(rev, revSel, target, s),
		Target:   target,
		Strategy: s,
	}
	for _, ok := range coverage.Both(fw.Covered(p.Fw.Indices), rev.Covered(p.Rev.Indices)) {
		if ok {
			p.Covered++
		}
	}
	if fw.Templates > 0 {
		p.Ratio = float64(p.Covered) / float64(fw.Templates)
	}
	return p
}
