// core/candidates/align.go
package candidates

const (
	alnMatch    = 1
	alnMismatch = -1
	alnGap      = -2
)

// alignToReference globally aligns s against ref (Needleman–Wunsch) and
// projects s onto the reference columns: row has len(ref) bytes, '-' where s
// has a deletion. Insertions in s relative to ref are dropped from row;
// split[c] is set when bases were dropped between columns c-1 and c.
func alignToReference(ref, s string) (row []byte, split []bool) {
	n, m := len(ref), len(s)
	score := make([][]int, n+1)
	for i := range score {
		score[i] = make([]int, m+1)
		score[i][0] = i * alnGap
	}
	for j := 0; j <= m; j++ {
		score[0][j] = j * alnGap
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			sub := alnMismatch
			if ref[i-1] == s[j-1] {
				sub = alnMatch
			}
			score[i][j] = max(score[i-1][j-1]+sub, score[i-1][j]+alnGap, score[i][j-1]+alnGap)
		}
	}

	row = make([]byte, n)
	split = make([]bool, n)
	for i := range row {
		row[i] = '-'
	}
	i, j := n, m
	for i > 0 && j > 0 {
		sub := alnMismatch
		if ref[i-1] == s[j-1] {
			sub = alnMatch
		}
		switch {
		case score[i][j] == score[i-1][j-1]+sub:
			row[i-1] = s[j-1]
			i--
			j--
		case score[i][j] == score[i-1][j]+alnGap:
			i--
		default:
			if i < n {
				split[i] = true
			}
			j--
		}
	}
	return row, split
}

/* ------------------------------ guide tree ------------------------------ */

const guideK = 4

type node struct {
	members     []int // region indices, ascending
	left, right *node
}

func (n *node) leaf() bool { return n.left == nil }

// guideTree clusters regions by UPGMA over k-mer Jaccard distances. Ties are
// broken by the lowest cluster indices so the tree is deterministic.
func guideTree(seqs []string) *node {
	if len(seqs) == 0 {
		return nil
	}
	sets := make([]map[string]struct{}, len(seqs))
	for i, s := range seqs {
		sets[i] = kmers(s, guideK)
	}
	clusters := make([]*node, len(seqs))
	for i := range seqs {
		clusters[i] = &node{members: []int{i}}
	}
	dist := make([][]float64, len(seqs))
	for i := range dist {
		dist[i] = make([]float64, len(seqs))
		for j := 0; j < i; j++ {
			d := jaccard(sets[i], sets[j])
			dist[i][j], dist[j][i] = d, d
		}
	}
	alive := make([]bool, len(seqs))
	for i := range alive {
		alive[i] = true
	}
	for remaining := len(seqs); remaining > 1; remaining-- {
		bi, bj, best := -1, -1, 0.0
		for i := range clusters {
			if !alive[i] {
				continue
			}
			for j := i + 1; j < len(clusters); j++ {
				if alive[j] && (bi < 0 || dist[i][j] < best) {
					bi, bj, best = i, j, dist[i][j]
				}
			}
		}
		a, b := clusters[bi], clusters[bj]
		na, nb := float64(len(a.members)), float64(len(b.members))
		for k := range clusters {
			if alive[k] && k != bi && k != bj {
				d := (dist[bi][k]*na + dist[bj][k]*nb) / (na + nb)
				dist[bi][k], dist[k][bi] = d, d
			}
		}
		clusters[bi] = &node{members: mergeSorted(a.members, b.members), left: a, right: b}
		alive[bj] = false
	}
	for i, ok := range alive {
		if ok {
			return clusters[i]
		}
	}
	return nil
}

func kmers(s string, k int) map[string]struct{} {
	out := map[string]struct{}{}
	for i := 0; i+k <= len(s); i++ {
		out[s[i:i+k]] = struct{}{}
	}
	return out
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	return 1 - float64(inter)/float64(len(a)+len(b)-inter)
}

func mergeSorted(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] < b[j] {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
