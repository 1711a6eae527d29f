// core/setcover/subsets.go
package setcover

import (
	"context"
	"time"

	"github.com/crillab/gophersat/maxsat"

	"primerset/core/coverage"
)

// Subset is the best selection found with exactly Size columns.
type Subset struct {
	Size     int
	Indices  []int
	Covered  int
	Ratio    float64
	Optimal  bool
	Fallback bool
}

// Subsets computes, for k = 1, 2, ..., a best subset of exactly k columns,
// stopping once every coverable template is covered. Exact uses a hard
// cardinality bound Σ¬p_i ≥ n−k and maximizes covered templates; greedy
// uses prefixes of the greedy order. Coverage never decreases with k: a
// size-k result worse than size k−1 is replaced by the k−1 subset plus one
// column.
func Subsets(ctx context.Context, m coverage.Matrix, s Strategy, timeout time.Duration) []Subset {
	coverable := m.Coverable()
	if coverable == 0 {
		return nil
	}
	order := greedyOrder(m, m.Templates)
	var out []Subset
	for k := 1; k <= m.Candidates(); k++ {
		var cur Subset
		if s == Exact && ctx.Err() == nil {
			cur = exactSubset(ctx, m, k, order, timeout)
		} else {
			cur = prefixSubset(m, order, k)
		}
		if n := len(out); n > 0 && cur.Covered < out[n-1].Covered {
			prev := out[n-1]
			idx := pad(append([]int(nil), prev.Indices...), k, order, m.Candidates())
			cur = Subset{Size: k, Indices: idx, Covered: m.Union(idx), Ratio: m.Ratio(idx), Fallback: cur.Fallback}
		}
		out = append(out, cur)
		if cur.Covered >= coverable {
			break
		}
	}
	return out
}

func prefixSubset(m coverage.Matrix, order []int, k int) Subset {
	idx := pad(append([]int(nil), order[:min(k, len(order))]...), k, order, m.Candidates())
	return Subset{Size: k, Indices: idx, Covered: m.Union(idx), Ratio: m.Ratio(idx)}
}

func exactSubset(ctx context.Context, m coverage.Matrix, k int, order []int, timeout time.Duration) Subset {
	n := m.Candidates()
	cs := coverClauses(m)
	lits := make([]maxsat.Lit, n)
	coeffs := make([]int, n)
	for i := range lits {
		lits[i], coeffs[i] = maxsat.Not(pVar(i)), 1
	}
	cs = append(cs, maxsat.HardPBConstr(lits, coeffs, n-k))
	for j := 0; j < m.Templates; j++ {
		cs = append(cs, maxsat.SoftClause(maxsat.Var(tVar(j))))
	}
	picked, err := solve(ctx, cs, n, timeout)
	if err != nil {
		sub := prefixSubset(m, order, k)
		sub.Fallback = true
		return sub
	}
	idx := pad(picked, k, order, n)
	return Subset{Size: k, Indices: idx, Covered: m.Union(idx), Ratio: m.Ratio(idx), Optimal: true}
}

// pad fills sel up to k columns, preferring the greedy order, then column
// order.
func pad(sel []int, k int, order []int, columns int) []int {
	in := make(map[int]bool, len(sel))
	for _, i := range sel {
		in[i] = true
	}
	for _, src := range [][]int{order, seq(columns)} {
		for _, i := range src {
			if len(sel) >= k {
				return sel
			}
			if !in[i] {
				in[i] = true
				sel = append(sel, i)
			}
		}
	}
	return sel
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
