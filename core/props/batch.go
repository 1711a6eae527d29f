// core/props/batch.go
package props

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"primerset/core/model"
	"primerset/core/settings"
)

// Batch configures EvaluateAll.
type Batch struct {
	Evaluator Evaluator // nil ⇒ Default()
	Binder    Binder    // nil ⇒ SiteBinder{}
	Spec      settings.Spec
	Workers   int // ≤ 0 ⇒ GOMAXPROCS
	Logger    *zap.Logger
}

// EvaluateAll fills Values (intrinsic properties) and Records (best binding
// per template, coverage verdicts unset) for every primer. Primers are
// processed concurrently; each task writes only primers[i]. An evaluator
// failure leaves the affected properties undefined and is logged; only
// context cancellation aborts the batch.
func EvaluateAll(ctx context.Context, primers []model.Primer, templates []model.Template, b Batch) error {
	ev := b.Evaluator
	if ev == nil {
		ev = Default()
	}
	binder := b.Binder
	if binder == nil {
		binder = SiteBinder{}
	}
	log := b.Logger
	if log == nil {
		log = zap.NewNop()
	}
	workers := b.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	opt := BindOptions{
		MaxMismatches:  b.Spec.Options.MaxMismatches,
		TerminalWindow: b.Spec.Options.TerminalWindow,
		Region:         b.Spec.Options.Region,
	}
	cond := b.Spec.PCR

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range primers {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p := &primers[i]
			vals, err := ev.Evaluate(p.Seq, cond)
			if err != nil {
				log.Warn("property evaluation failed",
					zap.String("primer", p.ID), zap.String("seq", p.Seq), zap.Error(err))
			}
			if vals == nil {
				vals = model.Values{}
			}
			p.Values = vals
			p.Verdicts = nil
			p.Records = nil
			for j, t := range templates {
				if j%64 == 0 && gctx.Err() != nil {
					return gctx.Err()
				}
				if bd, ok := binder.Bind(*p, t, opt); ok {
					p.Records = append(p.Records, model.CoverageRecord{TemplateIndex: j, Binding: bd})
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
