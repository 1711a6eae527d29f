// core/candidates/tree.go
package candidates

import (
	"primerset/core/model"
	"primerset/core/primer"
)

// treeWindows aligns all regions against the longest one, builds a guide
// tree and, for every window of reference columns, walks the tree top-down:
// a node whose members are gap-free and contiguous in the window and whose
// columns show at most MaxDegeneracy distinct bases emits its IUPAC
// consensus; otherwise its children are tried. Leaves emit their exact
// window.
func treeWindows(regs []region, d model.Direction, cfg Config, p *pool) {
	if len(regs) == 0 {
		return
	}
	ref := 0
	for i, r := range regs {
		if len(r.seq) > len(regs[ref].seq) {
			ref = i
		}
	}
	rows := make([][]byte, len(regs))
	splits := make([][]bool, len(regs))
	seqs := make([]string, len(regs))
	for i, r := range regs {
		seqs[i] = r.seq
		if i == ref {
			rows[i] = []byte(r.seq)
			continue
		}
		rows[i], splits[i] = alignToReference(regs[ref].seq, r.seq)
	}
	root := guideTree(seqs)
	width := len(regs[ref].seq)

	for l := cfg.MinLen; l <= cfg.MaxLen; l++ {
		for s := 0; s+l <= width; s++ {
			visit(root, rows, splits, regs, s, l, d, cfg.MaxDegeneracy, p)
		}
	}
}

func visit(n *node, rows [][]byte, splits [][]bool, regs []region, start, l int, d model.Direction, maxDeg int, p *pool) {
	if n == nil {
		return
	}
	if seq, ok := consensus(n.members, rows, splits, start, l, maxDeg); ok {
		origins := make([]string, len(n.members))
		for i, m := range n.members {
			origins[i] = regs[m].id
		}
		p.add(d, seq, origins...)
		return
	}
	if n.leaf() {
		return
	}
	visit(n.left, rows, splits, regs, start, l, d, maxDeg, p)
	visit(n.right, rows, splits, regs, start, l, d, maxDeg, p)
}

// consensus folds the members' window into IUPAC symbols. It fails on gaps,
// non-ACGT bases, a dropped insertion inside the window or a column with more
// than maxDeg distinct bases; maxDeg itself is allowed.
func consensus(members []int, rows [][]byte, splits [][]bool, start, l, maxDeg int) (string, bool) {
	for _, m := range members {
		if splits[m] == nil {
			continue
		}
		for c := start + 1; c < start+l; c++ {
			if splits[m][c] {
				return "", false
			}
		}
	}
	out := make([]byte, l)
	col := make([]byte, len(members))
	for k := 0; k < l; k++ {
		for i, m := range members {
			c := rows[m][start+k]
			switch c {
			case 'A', 'C', 'G', 'T':
			default:
				return "", false
			}
			col[i] = c
		}
		sym, distinct := primer.Consensus(col)
		if distinct > maxDeg {
			return "", false
		}
		out[k] = sym
	}
	return string(out), true
}
