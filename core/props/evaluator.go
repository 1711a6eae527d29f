// core/props/evaluator.go
package props

import (
	"errors"
	"fmt"

	"primerset/core/model"
	"primerset/core/primer"
	"primerset/core/thermo"
)

// MaxExpansions caps how many canonical sequences of a degenerate primer are
// evaluated.
const MaxExpansions = 64

// ClampWindow is the 3' stretch scanned for the GC clamp.
const ClampWindow = 5

// Evaluator computes one family of intrinsic primer properties. A property it
// cannot compute is left out of the returned Values (undefined).
// Implementations must be safe for concurrent use.
type Evaluator interface {
	Names() []model.Property
	Evaluate(seq string, cond thermo.Conditions) (model.Values, error)
}

/* ------------------------------ composition ----------------------------- */

// Composition covers length, GC ratio, GC clamp, runs and repeats.
type Composition struct{}

func (Composition) Names() []model.Property {
	return []model.Property{model.PrimerLength, model.GCRatio, model.GCClamp, model.NoRuns, model.NoRepeats}
}

func (Composition) Evaluate(seq string, _ thermo.Conditions) (model.Values, error) {
	exp, err := expansions(seq)
	if err != nil {
		return nil, err
	}
	v := model.Values{model.PrimerLength: float64(len(seq))}
	var gc, clamp float64
	runs, reps := 0, 0
	for _, e := range exp {
		gc += gcRatio(e)
		clamp += float64(gcClamp(e))
		runs = max(runs, thermo.LongestRun(e))
		reps = max(reps, thermo.LongestDinucleotideRepeat(e))
	}
	n := float64(len(exp))
	v[model.GCRatio] = gc / n
	v[model.GCClamp] = clamp / n
	v[model.NoRuns] = float64(runs)
	v[model.NoRepeats] = float64(reps)
	return v, nil
}

func gcRatio(s string) float64 {
	if s == "" {
		return 0
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == 'G' || s[i] == 'C' {
			n++
		}
	}
	return float64(n) / float64(len(s))
}

// gcClamp counts G/C among the 3'-terminal ClampWindow bases.
func gcClamp(s string) int {
	n := 0
	for i := max(0, len(s)-ClampWindow); i < len(s); i++ {
		if s[i] == 'G' || s[i] == 'C' {
			n++
		}
	}
	return n
}

/* -------------------------------- melting ------------------------------- */

// Melting is the nearest-neighbour Tm against the perfect complement; the
// mean over expansions for degenerate primers.
type Melting struct{}

func (Melting) Names() []model.Property { return []model.Property{model.MeltingTemp} }

func (Melting) Evaluate(seq string, cond thermo.Conditions) (model.Values, error) {
	exp, err := expansions(seq)
	if err != nil {
		return nil, err
	}
	sum := 0.0
	for _, e := range exp {
		r, err := thermo.PrimerTm(e, cond)
		if err != nil {
			return nil, fmt.Errorf("melting_temp: %w", err)
		}
		sum += r.TmC
	}
	return model.Values{model.MeltingTemp: sum / float64(len(exp))}, nil
}

/* ------------------------------- structure ------------------------------ */

// Structure reports the most stable self-dimer and hairpin ΔG (kcal/mol,
// ≤ 0) at the annealing temperature; the worst expansion wins.
type Structure struct{}

func (Structure) Names() []model.Property {
	return []model.Property{model.SelfDimerization, model.SecondaryStructure}
}

func (Structure) Evaluate(seq string, cond thermo.Conditions) (model.Values, error) {
	exp, err := expansions(seq)
	if err != nil {
		return nil, err
	}
	na := cond.EffectiveMonovalent()
	dimer, hairpin := 0.0, 0.0
	for _, e := range exp {
		dimer = min(dimer, thermo.DimerDeltaG(e, e, na, cond.AnnealC))
		hairpin = min(hairpin, thermo.HairpinDeltaG(e, na, cond.AnnealC))
	}
	return model.Values{model.SelfDimerization: dimer, model.SecondaryStructure: hairpin}, nil
}

/* ------------------------------- annealing ------------------------------ */

// Annealing is the ΔG of the perfect primer/target duplex at the annealing
// temperature.
type Annealing struct{}

func (Annealing) Names() []model.Property { return []model.Property{model.AnnealingDeltaG} }

func (Annealing) Evaluate(seq string, cond thermo.Conditions) (model.Values, error) {
	exp, err := expansions(seq)
	if err != nil {
		return nil, err
	}
	sum := 0.0
	for _, e := range exp {
		r, err := thermo.PrimerTm(e, cond)
		if err != nil {
			return nil, fmt.Errorf("annealing_delta_g: %w", err)
		}
		sum += r.DeltaG(cond.AnnealC)
	}
	return model.Values{model.AnnealingDeltaG: sum / float64(len(exp))}, nil
}

/* --------------------------------- chain -------------------------------- */

// Chain runs several evaluators. Values from evaluators that succeed are kept
// even when another one fails; the errors are joined.
type Chain []Evaluator

// Default is the built-in evaluator set.
func Default() Chain {
	return Chain{Composition{}, Melting{}, Structure{}, Annealing{}}
}

func (c Chain) Names() []model.Property {
	var out []model.Property
	for _, e := range c {
		out = append(out, e.Names()...)
	}
	return out
}

func (c Chain) Evaluate(seq string, cond thermo.Conditions) (model.Values, error) {
	out := model.Values{}
	var errs []error
	for _, e := range c {
		v, err := e.Evaluate(seq, cond)
		if err != nil {
			errs = append(errs, err)
		}
		out.Merge(v)
	}
	return out, errors.Join(errs...)
}

func expansions(seq string) ([]string, error) {
	if seq == "" {
		return nil, errors.New("empty primer")
	}
	exp := primer.Expand(seq, MaxExpansions)
	if len(exp) == 0 {
		return nil, fmt.Errorf("invalid primer %q", seq)
	}
	return exp, nil
}
