// core/setcover/greedy.go
package setcover

import (
	"primerset/core/coverage"
)

// RunGreedy repeatedly picks the column covering the most uncovered
// templates until ceil(required·|T|) templates are covered or no column adds
// coverage. Ties go to the higher score, then the lower column index, so the
// result is deterministic.
func RunGreedy(m coverage.Matrix, required float64) Selection {
	target := Target(required, m.Templates)
	return finish(m, greedyOrder(m, target), target, Greedy)
}

// greedyOrder returns the greedy picks in order, stopping at target.
func greedyOrder(m coverage.Matrix, target int) []int {
	covered := make([]bool, m.Templates)
	used := make([]bool, len(m.Columns))
	n := 0
	var order []int
	for n < target {
		best, bestGain := -1, 0
		for i, col := range m.Columns {
			if used[i] {
				continue
			}
			gain := 0
			for _, j := range col {
				if !covered[j] {
					gain++
				}
			}
			if gain == 0 {
				continue
			}
			if gain > bestGain || (gain == bestGain && score(m, i) > score(m, best)) {
				best, bestGain = i, gain
			}
		}
		if best < 0 {
			break
		}
		used[best] = true
		order = append(order, best)
		for _, j := range m.Columns[best] {
			if !covered[j] {
				covered[j] = true
				n++
			}
		}
	}
	return order
}

func score(m coverage.Matrix, i int) float64 {
	if i < 0 || i >= len(m.Scores) {
		return 0
	}
	return m.Scores[i]
}
