// core/coverage/matrix.go
package coverage

import (
	"primerset/core/model"
)

// Matrix is the primer-by-template coverage relation of one settings
// snapshot. Column i lists the template indices covered by candidate i in
// ascending order.
type Matrix struct {
	Templates int
	IDs       []string
	Columns   [][]int
	Scores    []float64 // greedy tie-break, higher is better
}

// BuildMatrix derives a Matrix from annotated primers.
func BuildMatrix(primers []model.Primer, templates int) Matrix {
	m := Matrix{
		Templates: templates,
		IDs:       make([]string, len(primers)),
		Columns:   make([][]int, len(primers)),
		Scores:    make([]float64, len(primers)),
	}
	for i := range primers {
		m.IDs[i] = primers[i].ID
		m.Columns[i] = primers[i].Covers()
		m.Scores[i] = primers[i].Score
	}
	return m
}

// Candidates is the number of columns.
func (m Matrix) Candidates() int { return len(m.Columns) }

// Coverable counts templates covered by at least one column.
func (m Matrix) Coverable() int {
	seen := make([]bool, m.Templates)
	n := 0
	for _, col := range m.Columns {
		for _, j := range col {
			if !seen[j] {
				seen[j] = true
				n++
			}
		}
	}
	return n
}

// Union counts templates covered by the selected columns.
func (m Matrix) Union(sel []int) int {
	seen := make([]bool, m.Templates)
	n := 0
	for _, i := range sel {
		for _, j := range m.Columns[i] {
			if !seen[j] {
				seen[j] = true
				n++
			}
		}
	}
	return n
}

// Ratio is Union(sel)/Templates.
func (m Matrix) Ratio(sel []int) float64 { return ratio(m.Union(sel), m.Templates) }

// Covered marks the templates covered by the selected columns.
func (m Matrix) Covered(sel []int) []bool {
	out := make([]bool, m.Templates)
	for _, i := range sel {
		for _, j := range m.Columns[i] {
			out[j] = true
		}
	}
	return out
}

// CoverableMask marks the templates covered by any column.
func (m Matrix) CoverableMask() []bool {
	out := make([]bool, m.Templates)
	for _, col := range m.Columns {
		for _, j := range col {
			out[j] = true
		}
	}
	return out
}

// Restrict returns a copy of m whose columns keep only the templates marked
// in keep. Template indices and the denominator are unchanged.
func (m Matrix) Restrict(keep []bool) Matrix {
	r := m
	r.Columns = make([][]int, len(m.Columns))
	for i, col := range m.Columns {
		var kept []int
		for _, j := range col {
			if keep[j] {
				kept = append(kept, j)
			}
		}
		r.Columns[i] = kept
	}
	return r
}
