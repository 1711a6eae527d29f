// core/design/result.go
package design

import (
	"time"

	"primerset/core/coverage"
	"primerset/core/model"
	"primerset/core/relax"
	"primerset/core/setcover"
)

// Issue is a non-fatal input problem tied to one entity.
type Issue struct {
	Entity  string // "template" or "primer"
	ID      string
	Message string
}

// OptimizerReport summarizes how the selection was found.
type OptimizerReport struct {
	Strategy setcover.Strategy
	Optimal  bool
	Fallback bool
	Reason   string
}

// SweepPoint is the optimized set restricted to one Tm window.
type SweepPoint struct {
	MinTm      float64
	MaxTm      float64
	Candidates int
	SetSize    int
	Ratio      float64
}

// SetStats are set-level properties of the selection.
type SetStats struct {
	TmMin           float64
	TmMax           float64
	TmSpread        float64
	WorstCrossDimer float64 // most negative ΔG between two selected primers
	CrossDimerPair  [2]string
}

// RunStats are counters for reporting and metrics.
type RunStats struct {
	Templates   int
	Candidates  int
	Survivors   int
	Iterations  int
	CacheHits   int64
	CacheMisses int64
	Elapsed     time.Duration
}

// Result is the immutable outcome of a design run.
type Result struct {
	RunID      string
	Direction  model.Direction
	Required   float64
	Selected   []model.Primer // selection order
	Unselected []model.Primer // passed the final constraints but not chosen
	Relaxation relax.Outcome
	Active     map[model.Property]model.Range
	TmSweep    []SweepPoint
	Coverage   coverage.Stats // of the selected set
	Evaluated  []model.Template // templates the coverage records index into
	Templates  []TemplateCoverage
	Set        SetStats
	Optimizer  OptimizerReport
	Issues     []Issue
	Stats      RunStats
	TargetMet  bool
}

// TemplateCoverage is the derived per-template view of a selection.
type TemplateCoverage struct {
	TemplateID string
	Group      string
	Covered    bool
	Primers    []string
	Mismatches []int // parallel to Primers
}

// Check is the outcome of CheckConstraints.
type Check struct {
	RunID     string
	Primers   []model.Primer // annotated in input order
	Passing   []int
	Coverage  coverage.Stats // of the passing primers
	Evaluated []model.Template
	Templates []TemplateCoverage
	Issues    []Issue
}

func templateCoverage(primers []model.Primer, templates []model.Template, covered []bool) []TemplateCoverage {
	out := make([]TemplateCoverage, len(templates))
	for i, t := range templates {
		out[i] = TemplateCoverage{TemplateID: t.ID, Group: t.Group, Covered: covered[i]}
	}
	for _, p := range primers {
		for _, r := range p.Records {
			if !r.Covered {
				continue
			}
			tc := &out[r.TemplateIndex]
			tc.Primers = append(tc.Primers, p.ID)
			tc.Mismatches = append(tc.Mismatches, r.Binding.Mismatches)
		}
	}
	return out
}
