// core/coverage/stats.go
package coverage

import (
	"sort"

	"primerset/core/model"
)

// GroupStats is the coverage of one template group.
type GroupStats struct {
	Group   string
	Covered int
	Total   int
	Ratio   float64
}

// Stats aggregates template coverage.
type Stats struct {
	Covered int
	Total   int
	Ratio   float64
	Groups  []GroupStats // sorted by group label
}

// CoveredBy marks every template covered by at least one primer.
func CoveredBy(primers []model.Primer, templates int) []bool {
	out := make([]bool, templates)
	for i := range primers {
		for _, r := range primers[i].Records {
			if r.Covered && r.TemplateIndex < templates {
				out[r.TemplateIndex] = true
			}
		}
	}
	return out
}

// Both combines per-direction coverage: a template counts only when covered
// by a forward and a reverse primer.
func Both(fw, rev []bool) []bool {
	out := make([]bool, len(fw))
	for i := range fw {
		out[i] = fw[i] && i < len(rev) && rev[i]
	}
	return out
}

// Compute builds Stats from a covered mask.
func Compute(covered []bool, templates []model.Template) Stats {
	st := Stats{Total: len(templates)}
	groups := map[string]*GroupStats{}
	for i, t := range templates {
		g := groups[t.Group]
		if g == nil {
			g = &GroupStats{Group: t.Group}
			groups[t.Group] = g
		}
		g.Total++
		if i < len(covered) && covered[i] {
			g.Covered++
			st.Covered++
		}
	}
	st.Ratio = ratio(st.Covered, st.Total)
	for _, g := range groups {
		g.Ratio = ratio(g.Covered, g.Total)
		st.Groups = append(st.Groups, *g)
	}
	sort.Slice(st.Groups, func(i, j int) bool { return st.Groups[i].Group < st.Groups[j].Group })
	return st
}

// Union is Compute(CoveredBy(primers)).
func Union(primers []model.Primer, templates []model.Template) Stats {
	return Compute(CoveredBy(primers, len(templates)), templates)
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}
