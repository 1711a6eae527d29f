// core/setcover/exact.go
package setcover

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/crillab/gophersat/maxsat"

	"primerset/core/coverage"
)

// RunExact finds a minimum-size selection covering ceil(required·|T|)
// templates by solving a weighted partial MaxSAT problem:
//
//	soft  ¬p_i                  (each selected primer costs 1)
//	hard  ¬t_j ∨ p_a ∨ p_b ...  (t_j only when a covering primer is selected)
//	hard  Σ t_j ≥ target
//
// When the problem is infeasible, the solver exceeds timeout or ctx ends,
// the greedy selection is returned with Fallback set.
func RunExact(ctx context.Context, m coverage.Matrix, required float64, timeout time.Duration) Selection {
	target := Target(required, m.Templates)
	if target == 0 || m.Candidates() == 0 {
		sel := RunGreedy(m, required)
		sel.Strategy, sel.Optimal = Exact, target == 0
		return sel
	}
	picked, err := solve(ctx, minimizeProblem(m, target), m.Candidates(), timeout)
	if err == nil && m.Union(picked) < target {
		err = ErrInfeasible
	}
	if err != nil {
		return fallback(m, required, err)
	}
	sel := finish(m, picked, target, Exact)
	sel.Optimal = true
	return sel
}

func fallback(m coverage.Matrix, required float64, err error) Selection {
	sel := RunGreedy(m, required)
	sel.Strategy = Exact
	sel.Fallback = true
	sel.Reason = err.Error()
	return sel
}

func pVar(i int) string { return "p" + strconv.Itoa(i) }
func tVar(j int) string { return "t" + strconv.Itoa(j) }

// coverClauses links every template variable to the primers covering it.
func coverClauses(m coverage.Matrix) []maxsat.Constr { return coverClausesFrom(m, 0) }

// coverClausesFrom numbers the columns of m from offset, so several
// matrices can share one problem.
func coverClausesFrom(m coverage.Matrix, offset int) []maxsat.Constr {
	covering := make([][]maxsat.Lit, m.Templates)
	for i, col := range m.Columns {
		for _, j := range col {
			covering[j] = append(covering[j], maxsat.Var(pVar(offset+i)))
		}
	}
	out := make([]maxsat.Constr, 0, m.Templates)
	for j, lits := range covering {
		out = append(out, maxsat.HardClause(append([]maxsat.Lit{maxsat.Not(tVar(j))}, lits...)...))
	}
	return out
}

func minimizeProblem(m coverage.Matrix, target int) []maxsat.Constr {
	cs := coverClauses(m)
	lits := make([]maxsat.Lit, m.Templates)
	coeffs := make([]int, m.Templates)
	for j := range lits {
		lits[j], coeffs[j] = maxsat.Var(tVar(j)), 1
	}
	cs = append(cs, maxsat.HardPBConstr(lits, coeffs, target))
	for i := range m.Columns {
		cs = append(cs, maxsat.SoftClause(maxsat.Not(pVar(i))))
	}
	return cs
}

type solveResult struct {
	model map[string]bool
	err   error
}

// solve runs gophersat in its own goroutine. The solver has no cancellation
// hook; on timeout the goroutine is left to finish into a buffered channel.
func solve(ctx context.Context, cs []maxsat.Constr, columns int, timeout time.Duration) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	ch := make(chan solveResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- solveResult{err: fmt.Errorf("solver panic: %v", r)}
			}
		}()
		model, _ := maxsat.New(cs...).Solve()
		ch <- solveResult{model: model}
	}()

	select {
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w after %s", ErrTimeout, timeout)
		}
		return nil, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return nil, r.err
		}
		if r.model == nil {
			return nil, ErrInfeasible
		}
		var picked []int
		for i := 0; i < columns; i++ {
			if r.model[pVar(i)] {
				picked = append(picked, i)
			}
		}
		sort.Ints(picked)
		return picked, nil
	}
}
