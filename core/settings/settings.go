// core/settings/settings.go
package settings

import (
	"fmt"
	"math"
	"sort"

	"primerset/core/model"
	"primerset/core/thermo"
)

// CoverageModel selects the rule deciding whether a primer covers a template.
type CoverageModel string

const (
	Identity      CoverageModel = "identity"
	Mismatch      CoverageModel = "mismatch"
	Probabilistic CoverageModel = "probabilistic"
)

// Region selects how a binding footprint relates to the allowed interval.
type Region string

const (
	Strict Region = "strict" // footprint inside the interval
	Any    Region = "any"    // footprint overlaps the interval
)

// Coverage holds the rule choice and its threshold. Threshold is only read
// by the probabilistic rule.
type Coverage struct {
	Model     CoverageModel
	Threshold float64
}

// Options are the binding/coverage knobs shared by every rule.
type Options struct {
	MaxMismatches        int
	MaxOtherBindingRatio float64 // 1 disables the off-target restriction
	Region               Region
	TerminalWindow       int // 3' bases where mismatches are not tolerated
}

// Sweep configures the melting-temperature window sweep.
type Sweep struct {
	Width float64 // °C; 0 disables the sweep
	Step  float64
}

// Spec is an immutable settings snapshot. Functions that change it return
// a new value; maps are never shared between snapshots.
type Spec struct {
	Constraints   map[model.Property]model.Range
	Relaxation    map[model.Property]model.Range
	RelaxSteps    int
	MaxIterations int
	Coverage      Coverage
	Options       Options
	PCR           thermo.Conditions
	Sweep         Sweep
}

// Default returns common multiplex PCR settings.
func Default() Spec {
	return Spec{
		Constraints: map[model.Property]model.Range{
			model.GCRatio:            model.Bounded(0.4, 0.6),
			model.GCClamp:            model.Bounded(1, 3),
			model.NoRuns:             model.AtMost(4),
			model.NoRepeats:          model.AtMost(4),
			model.MeltingTemp:        model.Bounded(52, 63),
			model.SelfDimerization:   model.AtLeast(-6),
			model.SecondaryStructure: model.AtLeast(-3),
		},
		Relaxation: map[model.Property]model.Range{
			model.GCRatio:            model.Bounded(0.3, 0.7),
			model.GCClamp:            model.Bounded(0, 4),
			model.NoRuns:             model.AtMost(6),
			model.NoRepeats:          model.AtMost(6),
			model.MeltingTemp:        model.Bounded(47, 68),
			model.SelfDimerization:   model.AtLeast(-9),
			model.SecondaryStructure: model.AtLeast(-5),
		},
		RelaxSteps:    4,
		MaxIterations: 50,
		Coverage:      Coverage{Model: Mismatch, Threshold: 0.9},
		Options: Options{
			MaxMismatches:        1,
			MaxOtherBindingRatio: 1,
			Region:               Any,
		},
		PCR:   thermo.DefaultConditions(),
		Sweep: Sweep{Width: 5, Step: 2.5},
	}
}

// Clone deep-copies s.
func (s Spec) Clone() Spec {
	c := s
	c.Constraints = cloneRanges(s.Constraints)
	c.Relaxation = cloneRanges(s.Relaxation)
	return c
}

// Active lists the constrained properties in stable order.
func (s Spec) Active() []model.Property {
	out := make([]model.Property, 0, len(s.Constraints))
	for p := range s.Constraints {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func cloneRanges(m map[model.Property]model.Range) map[model.Property]model.Range {
	if m == nil {
		return nil
	}
	out := make(map[model.Property]model.Range, len(m))
	for k, r := range m {
		out[k] = r.Clone()
	}
	return out
}

/* ------------------------------- validation ------------------------------ */

// Validate reports every configuration error at once. The returned error
// matches ErrInvalidSettings.
func (s Spec) Validate() error {
	var errs []error
	add := func(field, format string, args ...any) {
		errs = append(errs, &ConfigError{Field: field, Msg: fmt.Sprintf(format, args...)})
	}
	for _, p := range s.Active() {
		r := s.Constraints[p]
		if !p.Known() {
			add("constraints."+string(p), "unknown property")
			continue
		}
		if bad(r) {
			add("constraints."+string(p), "min %g > max %g", *r.Min, *r.Max)
		}
	}
	relaxed := make([]model.Property, 0, len(s.Relaxation))
	for p := range s.Relaxation {
		relaxed = append(relaxed, p)
	}
	sort.Slice(relaxed, func(i, j int) bool { return relaxed[i] < relaxed[j] })
	for _, p := range relaxed {
		b := s.Relaxation[p]
		field := "relaxation." + string(p)
		nom, ok := s.Constraints[p]
		switch {
		case !p.Known():
			add(field, "unknown property")
		case !ok:
			add(field, "boundary for a property that is not constrained")
		case bad(b):
			add(field, "min %g > max %g", *b.Min, *b.Max)
		case !nom.Within(b):
			add(field, "boundary %s is narrower than nominal range %s", b, nom)
		}
	}
	switch s.Coverage.Model {
	case Identity, Mismatch, Probabilistic:
	default:
		add("coverage.model", "unknown coverage model %q", s.Coverage.Model)
	}
	if s.Coverage.Threshold < 0 || s.Coverage.Threshold > 1 || math.IsNaN(s.Coverage.Threshold) {
		add("coverage.threshold", "must be in [0,1], got %g", s.Coverage.Threshold)
	}
	switch s.Options.Region {
	case Strict, Any:
	default:
		add("options.region", "unknown region %q (want strict or any)", s.Options.Region)
	}
	if s.Options.MaxMismatches < 0 {
		add("options.max_mismatches", "must be ≥ 0")
	}
	if r := s.Options.MaxOtherBindingRatio; r < 0 || r > 1 {
		add("options.max_other_binding_ratio", "must be in [0,1], got %g", r)
	}
	if s.Options.TerminalWindow < 0 {
		add("options.terminal_window", "must be ≥ 0")
	}
	if s.RelaxSteps < 1 {
		add("relax_steps", "must be ≥ 1")
	}
	if s.MaxIterations < 1 {
		add("max_iterations", "must be ≥ 1")
	}
	if s.Sweep.Width < 0 || (s.Sweep.Width > 0 && s.Sweep.Step <= 0) {
		add("sweep", "width must be ≥ 0 and step > 0 when enabled")
	}
	if err := s.PCR.Validate(); err != nil {
		add("pcr", "%v", err)
	}
	return joinErrors(errs)
}

func bad(r model.Range) bool {
	return r.Min != nil && r.Max != nil && *r.Min > *r.Max
}
