// pkg/api/design_v1.go
package api

// PrimerV1 is the stable JSON/YAML schema for one evaluated primer.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type PrimerV1 struct {
	ID           string               `json:"id" yaml:"id"`
	Direction    string               `json:"direction" yaml:"direction"` // "fw" | "rev"
	Seq          string               `json:"seq" yaml:"seq"`
	Origins      []string             `json:"origins,omitempty" yaml:"origins,omitempty"`
	TargetGroups []string             `json:"target_groups,omitempty" yaml:"target_groups,omitempty"`
	Values       map[string]float64   `json:"values,omitempty" yaml:"values,omitempty"`
	Verdicts     map[string]VerdictV1 `json:"verdicts,omitempty" yaml:"verdicts,omitempty"`
	Score        float64              `json:"score" yaml:"score"`
	Records      []RecordV1           `json:"records,omitempty" yaml:"records,omitempty"`
}

// VerdictV1 is a per-constraint pass/fail with the distance outside the range.
type VerdictV1 struct {
	Pass      bool    `json:"pass" yaml:"pass"`
	Deviation float64 `json:"deviation,omitempty" yaml:"deviation,omitempty"`
}

// RecordV1 is one primer-template binding.
type RecordV1 struct {
	TemplateID  string  `json:"template_id" yaml:"template_id"`
	Start       int     `json:"start" yaml:"start"`
	End         int     `json:"end" yaml:"end"`
	Strand      string  `json:"strand" yaml:"strand"` // "+" | "-"
	Mismatches  int     `json:"mm,omitempty" yaml:"mm,omitempty"`
	MismatchIdx []int   `json:"mm_i,omitempty" yaml:"mm_i,omitempty"`
	Site        string  `json:"site,omitempty" yaml:"site,omitempty"`
	InRegion    bool    `json:"in_region" yaml:"in_region"`
	Covered     bool    `json:"covered" yaml:"covered"`
	Probability float64 `json:"probability,omitempty" yaml:"probability,omitempty"`
	OffTarget   bool    `json:"off_target,omitempty" yaml:"off_target,omitempty"`
}

// RangeV1 is a constraint range; a missing side is unbounded.
type RangeV1 struct {
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// StepV1 is one relaxation pass.
type StepV1 struct {
	Index       int                `json:"index" yaml:"index"`
	Constraints map[string]RangeV1 `json:"constraints" yaml:"constraints"`
	Relaxed     []string           `json:"relaxed,omitempty" yaml:"relaxed,omitempty"`
	Survivors   int                `json:"survivors" yaml:"survivors"`
	Ratio       float64            `json:"ratio" yaml:"ratio"`
}

// GroupV1 is coverage restricted to one template group.
type GroupV1 struct {
	Group   string  `json:"group" yaml:"group"`
	Covered int     `json:"covered" yaml:"covered"`
	Total   int     `json:"total" yaml:"total"`
	Ratio   float64 `json:"ratio" yaml:"ratio"`
}

// CoverageV1 summarizes union coverage.
type CoverageV1 struct {
	Covered int       `json:"covered" yaml:"covered"`
	Total   int       `json:"total" yaml:"total"`
	Ratio   float64   `json:"ratio" yaml:"ratio"`
	Groups  []GroupV1 `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// TemplateV1 lists the selected primers covering one template.
type TemplateV1 struct {
	TemplateID string   `json:"template_id" yaml:"template_id"`
	Group      string   `json:"group,omitempty" yaml:"group,omitempty"`
	Covered    bool     `json:"covered" yaml:"covered"`
	Primers    []string `json:"primers,omitempty" yaml:"primers,omitempty"`
	Mismatches []int    `json:"mm,omitempty" yaml:"mm,omitempty"`
}

// IssueV1 is a non-fatal input problem.
type IssueV1 struct {
	Entity  string `json:"entity" yaml:"entity"` // "template" | "primer"
	ID      string `json:"id,omitempty" yaml:"id,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// OptimizerV1 reports how the selection was made.
type OptimizerV1 struct {
	Strategy string `json:"strategy" yaml:"strategy"`
	Optimal  bool   `json:"optimal" yaml:"optimal"`
	Fallback bool   `json:"fallback,omitempty" yaml:"fallback,omitempty"`
	Reason   string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// SweepPointV1 is the set found inside one melting-temperature window.
type SweepPointV1 struct {
	MinTm      float64 `json:"min_tm" yaml:"min_tm"`
	MaxTm      float64 `json:"max_tm" yaml:"max_tm"`
	Candidates int     `json:"candidates" yaml:"candidates"`
	SetSize    int     `json:"set_size" yaml:"set_size"`
	Ratio      float64 `json:"ratio" yaml:"ratio"`
}

// SetV1 describes the selected set as a whole.
type SetV1 struct {
	TmMin           float64   `json:"tm_min" yaml:"tm_min"`
	TmMax           float64   `json:"tm_max" yaml:"tm_max"`
	TmSpread        float64   `json:"tm_spread" yaml:"tm_spread"`
	WorstCrossDimer float64   `json:"worst_cross_dimer" yaml:"worst_cross_dimer"`
	CrossDimerPair  [2]string `json:"cross_dimer_pair,omitempty" yaml:"cross_dimer_pair,omitempty"`
}

// RunStatsV1 carries counters for a run.
type RunStatsV1 struct {
	Templates   int     `json:"templates" yaml:"templates"`
	Candidates  int     `json:"candidates" yaml:"candidates"`
	Survivors   int     `json:"survivors" yaml:"survivors"`
	Iterations  int     `json:"iterations" yaml:"iterations"`
	CacheHits   int64   `json:"cache_hits" yaml:"cache_hits"`
	CacheMisses int64   `json:"cache_misses" yaml:"cache_misses"`
	ElapsedSec  float64 `json:"elapsed_s" yaml:"elapsed_s"`
}

// ResultV1 is the stable schema of a design run.
type ResultV1 struct {
	RunID      string             `json:"run_id" yaml:"run_id"`
	Direction  string             `json:"direction" yaml:"direction"`
	Required   float64            `json:"required" yaml:"required"`
	TargetMet  bool               `json:"target_met" yaml:"target_met"`
	Coverage   CoverageV1         `json:"coverage" yaml:"coverage"`
	Selected   []PrimerV1         `json:"selected" yaml:"selected"`
	Unselected []PrimerV1         `json:"unselected,omitempty" yaml:"unselected,omitempty"`
	Active     map[string]RangeV1 `json:"active_constraints" yaml:"active_constraints"`
	Relaxation []StepV1           `json:"relaxation" yaml:"relaxation"`
	Fraction   map[string]float64 `json:"relaxed_fraction,omitempty" yaml:"relaxed_fraction,omitempty"`
	Templates  []TemplateV1       `json:"templates" yaml:"templates"`
	Set        SetV1              `json:"set" yaml:"set"`
	Optimizer  OptimizerV1        `json:"optimizer" yaml:"optimizer"`
	TmSweep    []SweepPointV1     `json:"tm_sweep,omitempty" yaml:"tm_sweep,omitempty"`
	Issues     []IssueV1          `json:"issues,omitempty" yaml:"issues,omitempty"`
	Stats      RunStatsV1         `json:"stats" yaml:"stats"`
}

// CheckV1 is the stable schema of a constraint check.
type CheckV1 struct {
	RunID     string       `json:"run_id" yaml:"run_id"`
	Primers   []PrimerV1   `json:"primers" yaml:"primers"`
	Passing   []string     `json:"passing" yaml:"passing"`
	Coverage  CoverageV1   `json:"coverage" yaml:"coverage"`
	Templates []TemplateV1 `json:"templates" yaml:"templates"`
	Issues    []IssueV1    `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// SubsetV1 is the best subset of one size.
type SubsetV1 struct {
	Size     int      `json:"size" yaml:"size"`
	Primers  []string `json:"primers" yaml:"primers"`
	Covered  int      `json:"covered" yaml:"covered"`
	Ratio    float64  `json:"ratio" yaml:"ratio"`
	Optimal  bool     `json:"optimal" yaml:"optimal"`
	Fallback bool     `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}
