// core/design/design.go
package design

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"primerset/core/candidates"
	"primerset/core/constraint"
	"primerset/core/coverage"
	"primerset/core/model"
	"primerset/core/props"
	"primerset/core/relax"
	"primerset/core/setcover"
	"primerset/core/settings"
)

// Request holds the per-run design choices.
type Request struct {
	Direction     model.Direction
	Required      float64
	Initializer   candidates.Strategy
	Optimizer     setcover.Strategy
	MinLen        int
	MaxLen        int
	MaxDegeneracy int
	GroupSpecific bool
	Timeout       time.Duration // exact solver budget per solve; 0 = none
}

// DefaultRequest designs forward and reverse 18–22-mers covering every
// template with the greedy optimizer.
func DefaultRequest() Request {
	return Request{
		Direction:     model.Both,
		Required:      1,
		Initializer:   candidates.Naive,
		Optimizer:     setcover.Greedy,
		MinLen:        18,
		MaxLen:        22,
		MaxDegeneracy: 2,
		Timeout:       30 * time.Second,
	}
}

func (r Request) validate() error {
	switch r.Direction {
	case model.Forward, model.Reverse, model.Both:
	default:
		return fmt.Errorf("%w: unknown direction %q", settings.ErrInvalidSettings, r.Direction)
	}
	switch r.Optimizer {
	case setcover.Greedy, setcover.Exact:
	default:
		return fmt.Errorf("%w: unknown optimizer %q", settings.ErrInvalidSettings, r.Optimizer)
	}
	switch r.Initializer {
	case candidates.Naive, candidates.Tree:
	default:
		return fmt.Errorf("%w: unknown initializer %q", settings.ErrInvalidSettings, r.Initializer)
	}
	if r.Required < 0 || r.Required > 1 {
		return fmt.Errorf("%w: required coverage %g outside [0,1]", settings.ErrInvalidSettings, r.Required)
	}
	return nil
}

// Engine carries the pluggable parts of a run. The zero value uses the
// built-in evaluators, the IUPAC site binder and a no-op logger.
type Engine struct {
	Evaluator props.Evaluator
	Binder    props.Binder
	Logger    *zap.Logger
	Workers   int
	CacheSize int
}

func (e *Engine) logger() *zap.Logger {
	if e == nil || e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Design runs the default engine.
func Design(ctx context.Context, templates []model.Template, spec settings.Spec, req Request) (Result, error) {
	return (&Engine{}).Design(ctx, templates, spec, req)
}

// Design generates candidates from templates, evaluates and filters them
// with relaxation toward the boundaries in spec, and selects a minimal set
// reaching req.Required. Configuration errors are returned before any work;
// input problems become Result.Issues.
func (e *Engine) Design(ctx context.Context, templates []model.Template, spec settings.Spec, req Request) (Result, error) {
	began := time.Now()
	if err := spec.Validate(); err != nil {
		return Result{}, err
	}
	if err := req.validate(); err != nil {
		return Result{}, err
	}
	rule, err := coverage.NewRule(spec)
	if err != nil {
		return Result{}, err
	}
	res := Result{RunID: uuid.NewString(), Direction: req.Direction, Required: req.Required}
	log := e.logger().With(zap.String("run_id", res.RunID))

	templates, res.Issues = cleanTemplates(templates)
	res.Evaluated = templates
	res.Stats.Templates = len(templates)
	if len(templates) == 0 {
		res.Issues = append(res.Issues, Issue{Entity: "template", Message: "no usable templates"})
		res.Active = spec.Clone().Constraints
		res.TargetMet = req.Required == 0
		return res, nil
	}

	pool, genIssues, err := candidates.Generate(templates, candidates.Config{
		Strategy:      req.Initializer,
		Direction:     req.Direction,
		MinLen:        req.MinLen,
		MaxLen:        req.MaxLen,
		MaxDegeneracy: req.MaxDegeneracy,
		GroupSpecific: req.GroupSpecific,
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", settings.ErrInvalidSettings, err)
	}
	for _, is := range genIssues {
		res.Issues = append(res.Issues, Issue{Entity: "template", ID: is.TemplateID, Message: is.Message})
	}
	res.Stats.Candidates = len(pool)
	log.Info("candidates generated", zap.Int("candidates", len(pool)), zap.Int("templates", len(templates)))

	cache, err := e.annotate(ctx, pool, templates, spec, rule)
	if err != nil {
		return Result{}, err
	}
	res.Stats.CacheHits, res.Stats.CacheMisses = cache.Stats()

	out, err := relax.Run(ctx, pool, templates, spec, req.Required, relax.Options{Mode: req.Direction, Logger: log})
	if err != nil {
		return Result{}, err
	}
	res.Relaxation = out
	res.Active = out.Final.Clone().Constraints
	res.Stats.Survivors = len(out.Survivors)
	res.Stats.Iterations = len(out.Steps)
	for i := range pool {
		constraint.Annotate(&pool[i], res.Active)
	}

	survivors := pick(pool, out.Survivors)
	sel, rep := optimize(ctx, survivors, templates, req)
	res.Optimizer = rep
	chosen := make(map[int]bool, len(sel))
	for _, i := range sel {
		chosen[i] = true
		res.Selected = append(res.Selected, survivors[i])
	}
	for i := range survivors {
		if !chosen[i] {
			res.Unselected = append(res.Unselected, survivors[i])
		}
	}

	covered := coveredMask(res.Selected, len(templates), req.Direction)
	res.Coverage = coverage.Compute(covered, templates)
	res.Templates = templateCoverage(res.Selected, templates, covered)
	res.Set = setStats(res.Selected, spec)
	res.TargetMet = out.TargetMet && res.Coverage.Ratio >= req.Required
	res.TmSweep = sweep(ctx, survivors, templates, spec.Sweep, req)
	res.Stats.Elapsed = time.Since(began)

	log.Info("design finished",
		zap.Int("selected", len(res.Selected)),
		zap.Float64("ratio", res.Coverage.Ratio),
		zap.Bool("target_met", res.TargetMet),
		zap.Bool("fallback", res.Optimizer.Fallback),
		zap.Duration("elapsed", res.Stats.Elapsed))
	return res, nil
}

// annotate evaluates properties and bindings, applies the coverage rule and
// sets the quality score against the nominal constraints.
func (e *Engine) annotate(ctx context.Context, primers []model.Primer, templates []model.Template, spec settings.Spec, rule coverage.Rule) (*props.Cache, error) {
	ev := props.Evaluator(props.Default())
	var binder props.Binder
	workers, size := 0, 0
	if e != nil {
		if e.Evaluator != nil {
			ev = e.Evaluator
		}
		binder, workers, size = e.Binder, e.Workers, e.CacheSize
	}
	cache, err := props.NewCache(ev, size)
	if err != nil {
		return nil, err
	}
	err = props.EvaluateAll(ctx, primers, templates, props.Batch{
		Evaluator: cache,
		Binder:    binder,
		Spec:      spec,
		Workers:   workers,
		Logger:    e.logger(),
	})
	if err != nil {
		return nil, err
	}
	coverage.Annotate(primers, templates, rule)
	for i := range primers {
		primers[i].Score = constraint.Score(primers[i].Values, spec.Constraints)
	}
	return cache, nil
}

// optimize selects a minimal set from primers. In Both mode forward and
// reverse primers are chosen together so that their covered templates
// overlap on at least ceil(Required·|T|) templates.
func optimize(ctx context.Context, primers []model.Primer, templates []model.Template, req Request) ([]int, OptimizerReport) {
	rep := OptimizerReport{Strategy: req.Optimizer}
	if req.Direction != model.Both {
		idx := byDirection(primers, req.Direction)
		m := coverage.BuildMatrix(pick(primers, idx), len(templates))
		var sel setcover.Selection
		if req.Optimizer == setcover.Exact {
			sel = setcover.RunExact(ctx, m, req.Required, req.Timeout)
		} else {
			sel = setcover.RunGreedy(m, req.Required)
		}
		rep.Optimal, rep.Fallback, rep.Reason = sel.Optimal, sel.Fallback, sel.Reason
		return remap(idx, sel.Indices), rep
	}

	fwIdx := byDirection(primers, model.Forward)
	revIdx := byDirection(primers, model.Reverse)
	fw := coverage.BuildMatrix(pick(primers, fwIdx), len(templates))
	rev := coverage.BuildMatrix(pick(primers, revIdx), len(templates))
	var p setcover.Pair
	if req.Optimizer == setcover.Exact {
		p = setcover.RunExactPair(ctx, fw, rev, req.Required, req.Timeout)
	} else {
		p = setcover.RunGreedyPair(fw, rev, req.Required)
	}
	rep.Optimal, rep.Fallback, rep.Reason = p.Optimal, p.Fallback, p.Reason
	return append(remap(fwIdx, p.Fw.Indices), remap(revIdx, p.Rev.Indices)...), rep
}

// remap translates matrix column indices back to primer indices.
func remap(idx, cols []int) []int {
	out := make([]int, 0, len(cols))
	for _, c := range cols {
		out = append(out, idx[c])
	}
	return out
}

// byDirection lists the primers belonging to mode; Both keeps every primer.
func byDirection(primers []model.Primer, mode model.Direction) []int {
	var out []int
	for i := range primers {
		if mode.Includes(primers[i].Direction) {
			out = append(out, i)
		}
	}
	return out
}

func pick(primers []model.Primer, idx []int) []model.Primer {
	out := make([]model.Primer, len(idx))
	for k, i := range idx {
		out[k] = primers[i]
	}
	return out
}

func coveredMask(primers []model.Primer, templates int, mode model.Direction) []bool {
	if mode != model.Both {
		return coverage.CoveredBy(primers, templates)
	}
	fw := coverage.CoveredBy(pick(primers, byDirection(primers, model.Forward)), templates)
	rev := coverage.CoveredBy(pick(primers, byDirection(primers, model.Reverse)), templates)
	return coverage.Both(fw, rev)
}

// cleanTemplates drops invalid or duplicate templates and reports them.
func cleanTemplates(in []model.Template) ([]model.Template, []Issue) {
	var (
		out    []model.Template
		issues []Issue
	)
	seen := make(map[string]bool, len(in))
	for _, t := range in {
		t.Seq = strings.ToUpper(t.Seq)
		if err := t.Validate(); err != nil {
			issues = append(issues, Issue{Entity: "template", ID: t.ID, Message: err.Error()})
			continue
		}
		if seen[t.ID] {
			issues = append(issues, Issue{Entity: "template", ID: t.ID, Message: "duplicate template identifier"})
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out, issues
}
