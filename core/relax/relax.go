// core/relax/relax.go
package relax

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"primerset/core/constraint"
	"primerset/core/coverage"
	"primerset/core/model"
	"primerset/core/settings"
)

// Step records one filtering pass.
type Step struct {
	Index       int
	Constraints map[model.Property]model.Range
	Relaxed     []model.Property // widened to produce this step's snapshot
	Survivors   int
	Ratio       float64
}

// Outcome is the audit trail of a relaxation run.
type Outcome struct {
	Steps     []Step
	Final     settings.Spec
	Fraction  map[model.Property]float64
	Survivors []int // indices into the input primers
	Stats     coverage.Stats
	Required  float64
	TargetMet bool
}

// BestRatio is the highest ratio reached (the last one, since relaxing can
// only admit more primers).
func (o Outcome) BestRatio() float64 { return o.Stats.Ratio }

// Options tunes Run.
type Options struct {
	// Mode is the design direction. In Both mode a template counts only when
	// covered by a surviving forward and a surviving reverse primer.
	Mode   model.Direction
	Logger *zap.Logger
}

// Run filters the annotated primers with successively relaxed snapshots of
// nominal until the union coverage of the survivors reaches required, every
// relaxable constraint sits at its boundary, or MaxIterations passes have
// run. required = 0 runs a single pass at nominal strictness. Primers are
// not modified.
func Run(ctx context.Context, primers []model.Primer, templates []model.Template, nominal settings.Spec, required float64, opt Options) (Outcome, error) {
	if required < 0 || required > 1 {
		return Outcome{}, fmt.Errorf("required coverage ratio must be in [0,1], got %g", required)
	}
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}
	out := Outcome{Required: required}
	cur := nominal.Clone()
	var relaxed []model.Property
	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		surv := constraint.Filter(primers, cur.Constraints)
		st := coverage.Compute(covered(primers, surv, len(templates), opt.Mode), templates)
		out.Steps = append(out.Steps, Step{
			Index:       i,
			Constraints: cur.Clone().Constraints,
			Relaxed:     relaxed,
			Survivors:   len(surv),
			Ratio:       st.Ratio,
		})
		out.Final, out.Survivors, out.Stats = cur, surv, st
		log.Debug("relaxation pass",
			zap.Int("iteration", i), zap.Int("survivors", len(surv)), zap.Float64("ratio", st.Ratio))

		if st.Ratio >= required || required == 0 {
			out.TargetMet = true
			break
		}
		if i+1 >= nominal.MaxIterations {
			log.Info("relaxation stopped at iteration cap",
				zap.Int("iterations", i+1), zap.Any("still_relaxable", settings.Relaxable(cur)))
			break
		}
		next, moved := settings.Relax(nominal, cur)
		if len(moved) == 0 {
			log.Info("relaxation boundaries reached", zap.Float64("ratio", st.Ratio))
			break
		}
		cur, relaxed = next, moved
	}
	out.Fraction = settings.RelaxFraction(nominal, out.Final)
	return out, nil
}

func covered(primers []model.Primer, surv []int, templates int, mode model.Direction) []bool {
	fw := make([]bool, templates)
	rev := make([]bool, templates)
	for _, i := range surv {
		dst := fw
		if mode == model.Both && primers[i].Direction == model.Reverse {
			dst = rev
		}
		for _, r := range primers[i].Records {
			if r.Covered {
				dst[r.TemplateIndex] = true
			}
		}
	}
	if mode == model.Both {
		return coverage.Both(fw, rev)
	}
	return fw
}
