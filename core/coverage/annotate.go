// core/coverage/annotate.go
package coverage

import (
	"primerset/core/model"
)

// Annotate sets Covered, Probability and OffTarget on every record of every
// primer and stores primer_coverage (covered template count) and
// primer_specificity (1 − off-target ratio) in Values. A binding is
// off-target when its template is outside the primer's target groups or when
// the primer binds that template only outside the allowed region.
func Annotate(primers []model.Primer, templates []model.Template, rule Rule) {
	for i := range primers {
		annotateOne(&primers[i], templates, rule)
	}
}

func annotateOne(p *model.Primer, templates []model.Template, rule Rule) {
	for k := range p.Records {
		r := &p.Records[k]
		t := templates[r.TemplateIndex]
		r.OffTarget = !p.Targets(t.Group) || !r.Binding.InRegion
	}
	ratio := OffTargetRatio(p, len(templates))
	admit := true
	if g, ok := rule.(gate); ok {
		admit = g.Admit(ratio)
	}

	covered := 0
	for k := range p.Records {
		r := &p.Records[k]
		r.Covered, r.Probability = false, 0
		if !admit || r.OffTarget {
			continue
		}
		r.Covered, r.Probability = rule.Covered(p, r.Binding)
		if r.Covered {
			covered++
		}
	}
	if p.Values == nil {
		p.Values = model.Values{}
	}
	p.Values[model.PrimerCoverage] = float64(covered)
	p.Values[model.PrimerSpecificity] = 1 - ratio
}

// OffTargetRatio is the share of templates bound off-target by p, counted
// from its annotated records.
func OffTargetRatio(p *model.Primer, templates int) float64 {
	if templates == 0 {
		return 0
	}
	n := 0
	for _, r := range p.Records {
		if r.OffTarget {
			n++
		}
	}
	return float64(n) / float64(templates)
}
