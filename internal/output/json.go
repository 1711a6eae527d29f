// internal/output/json.go
package output

import (
	"encoding/json"
	"io"
	"sort"

	"primerset/core/coverage"
	"primerset/core/design"
	"primerset/core/model"
	"primerset/core/setcover"
	"primerset/pkg/api"
)

// ToAPIPrimer converts an annotated primer to the stable wire schema (v1).
// Records are included only when withRecords is set; templates resolves
// record indices to identifiers.
func ToAPIPrimer(p model.Primer, templates []model.Template, withRecords bool) api.PrimerV1 {
	v := api.PrimerV1{
		ID:           p.ID,
		Direction:    string(p.Direction),
		Seq:          p.Seq,
		Origins:      append([]string(nil), p.Origins...),
		TargetGroups: append([]string(nil), p.TargetGroups...),
		Score:        p.Score,
	}
	if len(p.Values) > 0 {
		v.Values = make(map[string]float64, len(p.Values))
		for _, k := range p.Values.Keys() {
			if x, ok := p.Values.Get(k); ok {
				v.Values[string(k)] = x
			}
		}
	}
	if len(p.Verdicts) > 0 {
		v.Verdicts = make(map[string]api.VerdictV1, len(p.Verdicts))
		for k, vd := range p.Verdicts {
			v.Verdicts[string(k)] = api.VerdictV1{Pass: vd.Pass, Deviation: vd.Deviation}
		}
	}
	if withRecords {
		for _, r := range p.Records {
			id := r.Binding.TemplateID
			if id == "" && r.TemplateIndex >= 0 && r.TemplateIndex < len(templates) {
				id = templates[r.TemplateIndex].ID
			}
			v.Records = append(v.Records, api.RecordV1{
				TemplateID:  id,
				Start:       r.Binding.Start,
				End:         r.Binding.End,
				Strand:      r.Binding.Strand,
				Mismatches:  r.Binding.Mismatches,
				MismatchIdx: append([]int(nil), r.Binding.MismatchPos...),
				Site:        r.Binding.Site,
				InRegion:    r.Binding.InRegion,
				Covered:     r.Covered,
				Probability: r.Probability,
				OffTarget:   r.OffTarget,
			})
		}
	}
	return v
}

func toAPIPrimers(list []model.Primer, templates []model.Template, withRecords bool) []api.PrimerV1 {
	out := make([]api.PrimerV1, 0, len(list))
	for _, p := range list {
		out = append(out, ToAPIPrimer(p, templates, withRecords))
	}
	return out
}

// ToAPIRanges converts a constraint map.
func ToAPIRanges(m map[model.Property]model.Range) map[string]api.RangeV1 {
	out := make(map[string]api.RangeV1, len(m))
	for k, r := range m {
		c := r.Clone()
		out[string(k)] = api.RangeV1{Min: c.Min, Max: c.Max}
	}
	return out
}

func toAPICoverage(st coverage.Stats) api.CoverageV1 {
	v := api.CoverageV1{Covered: st.Covered, Total: st.Total, Ratio: st.Ratio}
	for _, g := range st.Groups {
		v.Groups = append(v.Groups, api.GroupV1{Group: g.Group, Covered: g.Covered, Total: g.Total, Ratio: g.Ratio})
	}
	return v
}

func toAPITemplates(list []design.TemplateCoverage) []api.TemplateV1 {
	out := make([]api.TemplateV1, 0, len(list))
	for _, t := range list {
		out = append(out, api.TemplateV1{
			TemplateID: t.TemplateID,
			Group:      t.Group,
			Covered:    t.Covered,
			Primers:    append([]string(nil), t.Primers...),
			Mismatches: append([]int(nil), t.Mismatches...),
		})
	}
	return out
}

func toAPIIssues(list []design.Issue) []api.IssueV1 {
	var out []api.IssueV1
	for _, is := range list {
		out = append(out, api.IssueV1{Entity: is.Entity, ID: is.ID, Message: is.Message})
	}
	return out
}

// ToAPIResult converts a design result. Unselected primers and binding
// records are included when verbose is set.
func ToAPIResult(r design.Result, verbose bool) api.ResultV1 {
	v := api.ResultV1{
		RunID:     r.RunID,
		Direction: string(r.Direction),
		Required:  r.Required,
		TargetMet: r.TargetMet,
		Coverage:  toAPICoverage(r.Coverage),
		Selected:  toAPIPrimers(r.Selected, r.Evaluated, verbose),
		Active:    ToAPIRanges(r.Active),
		Templates: toAPITemplates(r.Templates),
		Set: api.SetV1{
			TmMin:           r.Set.TmMin,
			TmMax:           r.Set.TmMax,
			TmSpread:        r.Set.TmSpread,
			WorstCrossDimer: r.Set.WorstCrossDimer,
			CrossDimerPair:  r.Set.CrossDimerPair,
		},
		Optimizer: api.OptimizerV1{
			Strategy: string(r.Optimizer.Strategy),
			Optimal:  r.Optimizer.Optimal,
			Fallback: r.Optimizer.Fallback,
			Reason:   r.Optimizer.Reason,
		},
		Issues: toAPIIssues(r.Issues),
		Stats: api.RunStatsV1{
			Templates:   r.Stats.Templates,
			Candidates:  r.Stats.Candidates,
			Survivors:   r.Stats.Survivors,
			Iterations:  r.Stats.Iterations,
			CacheHits:   r.Stats.CacheHits,
			CacheMisses: r.Stats.CacheMisses,
			ElapsedSec:  r.Stats.Elapsed.Seconds(),
		},
	}
	if verbose {
		v.Unselected = toAPIPrimers(r.Unselected, r.Evaluated, true)
	}
	for _, s := range r.Relaxation.Steps {
		st := api.StepV1{Index: s.Index, Constraints: ToAPIRanges(s.Constraints), Survivors: s.Survivors, Ratio: s.Ratio}
		for _, p := range s.Relaxed {
			st.Relaxed = append(st.Relaxed, string(p))
		}
		v.Relaxation = append(v.Relaxation, st)
	}
	if len(r.Relaxation.Fraction) > 0 {
		v.Fraction = make(map[string]float64, len(r.Relaxation.Fraction))
		for k, f := range r.Relaxation.Fraction {
			v.Fraction[string(k)] = f
		}
	}
	for _, pt := range r.TmSweep {
		v.TmSweep = append(v.TmSweep, api.SweepPointV1{
			MinTm: pt.MinTm, MaxTm: pt.MaxTm, Candidates: pt.Candidates, SetSize: pt.SetSize, Ratio: pt.Ratio,
		})
	}
	return v
}

// ToAPICheck converts a constraint check; records are always included.
func ToAPICheck(c design.Check) api.CheckV1 {
	v := api.CheckV1{
		RunID:     c.RunID,
		Primers:   toAPIPrimers(c.Primers, c.Evaluated, true),
		Passing:   []string{},
		Coverage:  toAPICoverage(c.Coverage),
		Templates: toAPITemplates(c.Templates),
		Issues:    toAPIIssues(c.Issues),
	}
	for _, i := range c.Passing {
		v.Passing = append(v.Passing, c.Primers[i].ID)
	}
	return v
}

// ToAPISubsets converts subsets, resolving indices to primer identifiers.
// Identifiers within a subset are sorted.
func ToAPISubsets(subs []setcover.Subset, primers []model.Primer) []api.SubsetV1 {
	out := make([]api.SubsetV1, 0, len(subs))
	for _, s := range subs {
		ids := make([]string, 0, len(s.Indices))
		for _, i := range s.Indices {
			ids = append(ids, primers[i].ID)
		}
		sort.Strings(ids)
		out = append(out, api.SubsetV1{
			Size: s.Size, Primers: ids, Covered: s.Covered, Ratio: s.Ratio, Optimal: s.Optimal, Fallback: s.Fallback,
		})
	}
	return out
}

// WriteJSON writes v as a single pretty-indented JSON document.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
