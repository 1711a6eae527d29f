package cli

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"primerset/core/model"
	"primerset/core/setcover"
	"primerset/internal/appcore"
	"primerset/internal/writers"
)

func (a *app) subsetsCmd() *cobra.Command {
	var (
		primersPath string
		passingOnly bool
	)
	cmd := &cobra.Command{
		Use:   "subsets -p PRIMERS.tsv [flags] TEMPLATES.fa [...]",
		Short: "Report the best-covering subset of each size",
		Long: `Subsets evaluates the primers, then for k = 1, 2, ... reports the subset of
k primers covering the most templates, stopping once every coverable
template is covered. Ratios never decrease with k.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := writers.SubsetsWriters[a.output]; !ok {
				return appcore.Usage(errUnknownFormat(a.output, writers.Formats(writers.SubsetsWriters)))
			}
			primers, templates, err := a.loadInputs(cmd, primersPath, args)
			if err != nil {
				a.sinks.Failed("subsets", err)
				return err
			}
			eng := a.engine()
			chk, err := eng.CheckConstraints(cmd.Context(), primers, templates.list, a.cfg.Spec)
			if err != nil {
				a.sinks.Failed("subsets", err)
				return err
			}
			pool := chk.Primers
			if passingOnly {
				pool = make([]model.Primer, 0, len(chk.Passing))
				for _, i := range chk.Passing {
					pool = append(pool, chk.Primers[i])
				}
			}
			subs, err := eng.CoverageSubsets(cmd.Context(), pool, chk.Evaluated, a.cfg.Request.Optimizer, a.cfg.Request.Timeout)
			if err != nil {
				a.sinks.Failed("subsets", err)
				return err
			}
			return appcore.Emit(a.stdout, func(w io.Writer) error {
				return writers.WriteSubsets(a.output, w, writers.SubsetsPayload{Subsets: subs, Primers: pool, Header: !a.noHeader})
			})
		},
	}
	a.settingsFlags(cmd)
	f := cmd.Flags()
	f.StringVarP(&primersPath, "primers", "p", "", "primer table ('-' for stdin)")
	_ = cmd.MarkFlagRequired("primers")
	f.BoolVar(&passingOnly, "passing", false, "only consider primers passing every constraint")
	f.String("optimizer", string(setcover.Greedy), "subset search: greedy | exact")
	f.Duration("timeout", 30*time.Second, "exact optimizer budget per subset size")
	return cmd
}
