package cli

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"primerset/core/design"
	"primerset/core/settings"
	"primerset/internal/appcore"
	"primerset/internal/cliutil"
	"primerset/internal/writers"
)

// settingsFlags registers the flags shared by every command that evaluates
// primers. Defaults mirror the built-in settings.
func (a *app) settingsFlags(cmd *cobra.Command) {
	s := settings.Default()
	f := cmd.Flags()
	f.String("coverage", string(s.Coverage.Model), "coverage rule: identity | mismatch | probabilistic")
	f.Float64("threshold", s.Coverage.Threshold, "probability threshold (probabilistic rule)")
	f.Int("max-mismatches", s.Options.MaxMismatches, "mismatches tolerated per binding site")
	f.Float64("max-other-binding", s.Options.MaxOtherBindingRatio, "max off-target binding ratio (1 disables)")
	f.String("region", string(s.Options.Region), "binding region rule: any | strict")
	f.Int("terminal-window", s.Options.TerminalWindow, "3' bases where mismatches reject a site")
	f.Float64("anneal-temp", s.PCR.AnnealC, "annealing temperature (°C)")
	f.String("na", "50mM", "monovalent cation concentration")
	f.String("mg", "1.5mM", "Mg2+ concentration")
	f.String("dntp", "200uM", "total dNTP concentration")
	f.String("primer-conc", "250nM", "per-primer concentration")
	f.IntP("threads", "t", 0, "evaluation workers (0 = all CPUs)")
	f.Int("cache-size", 0, "property cache entries (0 = default)")
	f.StringArrayVar(&a.constraints, "constraint", nil, "override a constraint: prop=min:max (open side allowed; prop= removes)")
}

func (a *app) designCmd() *cobra.Command {
	s, r := settings.Default(), design.DefaultRequest()
	cmd := &cobra.Command{
		Use:   "design [flags] TEMPLATES.fa [...]",
		Short: "Design a minimal primer set covering the templates",
		Long: `Design generates candidate primers from the templates, evaluates their
properties, relaxes constraints toward their boundaries until the required
coverage is reachable and selects a minimal covering set.

Template headers may carry tags: >id group=G fwd=START-END rev=START-END
(1-based inclusive, plus-strand coordinates).`,
		Example: `  primerset design -o json --required 0.95 refs/*.fa
  primerset design --optimizer exact --timeout 10s --constraint melting_temp=55:62 refs.fa.gz`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runDesign,
	}
	a.settingsFlags(cmd)
	f := cmd.Flags()
	f.String("direction", string(r.Direction), "primer direction: fw | rev | both")
	f.Float64("required", r.Required, "required fraction of templates covered")
	f.String("initializer", string(r.Initializer), "candidate generation: naive | tree")
	f.String("optimizer", string(r.Optimizer), "set cover: greedy | exact")
	f.Int("min-len", r.MinLen, "minimum primer length")
	f.Int("max-len", r.MaxLen, "maximum primer length")
	f.Int("max-degeneracy", r.MaxDegeneracy, "distinct bases allowed per consensus column (tree)")
	f.Bool("group-specific", r.GroupSpecific, "count binding outside a primer's groups as off-target")
	f.Duration("timeout", r.Timeout, "exact optimizer budget per solve (0 = none)")
	f.Int("relax-steps", s.RelaxSteps, "steps from nominal to boundary")
	f.Int("max-iterations", s.MaxIterations, "cap on filtering passes")
	f.Float64("sweep-width", s.Sweep.Width, "Tm sweep window width (0 disables)")
	f.Float64("sweep-step", s.Sweep.Step, "Tm sweep window step")
	f.StringArrayVar(&a.relaxations, "relax", nil, "override a relaxation boundary: prop=min:max")
	f.IntVar(&a.unmetExit, "unmet-exit-code", appcore.ExitUnmet, "exit code when the coverage target is not met (0 = success)")
	return cmd
}

func (a *app) checkOutput() error {
	if _, ok := writers.ResultWriters[a.output]; !ok {
		return appcore.Usage(errUnknownFormat(a.output, writers.Formats(writers.ResultWriters)))
	}
	return nil
}

func (a *app) runDesign(cmd *cobra.Command, args []string) error {
	if err := a.checkOutput(); err != nil {
		return err
	}
	paths, err := cliutil.ExpandPositionals(args)
	if err != nil {
		return appcore.Usage(err)
	}
	ctx := cmd.Context()
	templates, issues, err := appcore.LoadTemplates(ctx, paths)
	if err != nil {
		a.sinks.Failed("design", err)
		return err
	}

	res, err := a.engine().Design(ctx, templates, a.cfg.Spec, a.cfg.Request)
	if err != nil {
		a.sinks.Failed("design", err)
		return err
	}
	res.Issues = append(issues, res.Issues...)
	for _, is := range res.Issues {
		a.log.Warn("input issue", zap.String("entity", is.Entity), zap.String("id", is.ID), zap.String("message", is.Message))
	}
	if !res.TargetMet {
		a.log.Warn("coverage target not met",
			zap.Float64("required", res.Required), zap.Float64("ratio", res.Coverage.Ratio))
	}
	a.sinks.Design(ctx, res)

	if err := appcore.Emit(a.stdout, func(w io.Writer) error {
		return writers.WriteResult(a.output, w, writers.ResultPayload{Result: res, Verbose: a.verbose, Header: !a.noHeader})
	}); err != nil {
		return err
	}
	return a.unmet(res.TargetMet)
}

func (a *app) engine() *design.Engine {
	return &design.Engine{Logger: a.log, Workers: a.cfg.Workers, CacheSize: a.cfg.CacheSize}
}
