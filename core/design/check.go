// core/design/check.go
package design

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"primerset/core/constraint"
	"primerset/core/coverage"
	"primerset/core/model"
	"primerset/core/primer"
	"primerset/core/setcover"
	"primerset/core/settings"
)

// CheckConstraints runs the default engine.
func CheckConstraints(ctx context.Context, primers []model.Primer, templates []model.Template, spec settings.Spec) (Check, error) {
	return (&Engine{}).CheckConstraints(ctx, primers, templates, spec)
}

// CheckConstraints evaluates existing primers against templates under spec
// and returns annotated copies: values, verdicts for the nominal
// constraints, coverage records and quality score. Invalid or duplicate
// primers are reported as Issues and left out.
func (e *Engine) CheckConstraints(ctx context.Context, primers []model.Primer, templates []model.Template, spec settings.Spec) (Check, error) {
	if err := spec.Validate(); err != nil {
		return Check{}, err
	}
	rule, err := coverage.NewRule(spec)
	if err != nil {
		return Check{}, err
	}
	res := Check{RunID: uuid.NewString()}
	templates, res.Issues = cleanTemplates(templates)
	res.Evaluated = templates
	ps, issues := cleanPrimers(primers)
	res.Issues = append(res.Issues, issues...)
	if len(ps) == 0 {
		res.Issues = append(res.Issues, Issue{Entity: "primer", Message: "no usable primers"})
	}

	if _, err := e.annotate(ctx, ps, templates, spec, rule); err != nil {
		return Check{}, err
	}
	for i := range ps {
		if constraint.Annotate(&ps[i], spec.Constraints) {
			res.Passing = append(res.Passing, i)
		}
	}
	res.Primers = ps
	covered := coverage.CoveredBy(pick(ps, res.Passing), len(templates))
	res.Coverage = coverage.Compute(covered, templates)
	res.Templates = templateCoverage(pick(ps, res.Passing), templates, covered)
	e.logger().Info("constraints checked",
		zap.String("run_id", res.RunID),
		zap.Int("primers", len(ps)),
		zap.Int("passing", len(res.Passing)),
		zap.Float64("ratio", res.Coverage.Ratio))
	return res, nil
}

func cleanPrimers(in []model.Primer) ([]model.Primer, []Issue) {
	var (
		out    []model.Primer
		issues []Issue
	)
	seen := make(map[string]bool, len(in))
	for _, p := range in {
		seq, err := primer.Validate(p.Seq)
		switch {
		case err != nil:
			issues = append(issues, Issue{Entity: "primer", ID: p.ID, Message: err.Error()})
			continue
		case p.ID == "":
			issues = append(issues, Issue{Entity: "primer", Message: "primer without identifier"})
			continue
		case seen[p.ID]:
			issues = append(issues, Issue{Entity: "primer", ID: p.ID, Message: "duplicate primer identifier"})
			continue
		case p.Direction != model.Forward && p.Direction != model.Reverse:
			issues = append(issues, Issue{Entity: "primer", ID: p.ID, Message: fmt.Sprintf("unknown direction %q", p.Direction)})
			continue
		}
		seen[p.ID] = true
		c := p.Clone()
		c.Seq = seq
		out = append(out, c)
	}
	return out, issues
}

// CoverageSubsets runs the default engine.
func CoverageSubsets(ctx context.Context, primers []model.Primer, templates []model.Template, s setcover.Strategy, timeout time.Duration) ([]setcover.Subset, error) {
	return (&Engine{}).CoverageSubsets(ctx, primers, templates, s, timeout)
}

// CoverageSubsets computes the best subset of each size from annotated
// primers (see setcover.Subsets). Subset indices refer to primers.
func (e *Engine) CoverageSubsets(ctx context.Context, primers []model.Primer, templates []model.Template, s setcover.Strategy, timeout time.Duration) ([]setcover.Subset, error) {
	switch s {
	case setcover.Greedy, setcover.Exact:
	default:
		return nil, fmt.Errorf("%w: unknown optimizer %q", settings.ErrInvalidSettings, s)
	}
	for _, p := range primers {
		for _, r := range p.Records {
			if r.TemplateIndex < 0 || r.TemplateIndex >= len(templates) {
				return nil, fmt.Errorf("primer %s: coverage record for template %d of %d", p.ID, r.TemplateIndex, len(templates))
			}
		}
	}
	subs := setcover.Subsets(ctx, coverage.BuildMatrix(primers, len(templates)), s, timeout)
	if err := ctx.Err(); err != nil {
		return subs, err
	}
	e.logger().Debug("coverage subsets", zap.Int("sizes", len(subs)))
	return subs, nil
}
