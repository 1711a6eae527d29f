package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"primerset/internal/appcore"
)

func (a *app) runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect the run history kept with --db",
	}
	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.sinks.Store == nil {
				return appcore.Usage(errors.New("runs: --db is required"))
			}
			runs, err := a.sinks.Store.Runs(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return appcore.Emit(a.stdout, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				if !a.noHeader {
					fmt.Fprintln(tw, "run_id\tcommand\tcreated\tcovered\ttotal\tratio\ttarget_met")
				}
				for _, r := range runs {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%.3f\t%t\n",
						r.RunID, r.Command, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Covered, r.Total, r.CoverageRatio, r.TargetMet)
				}
				return tw.Flush()
			})
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "maximum runs to list (0 = all)")

	show := &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show the primers of one run as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.sinks.Store == nil {
				return appcore.Usage(errors.New("runs: --db is required"))
			}
			run, err := a.sinks.Store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return appcore.Emit(a.stdout, func(w io.Writer) error {
				fmt.Fprintf(w, "# %s %s covered=%d/%d target_met=%t optimizer=%s\n",
					run.RunID, run.Command, run.Covered, run.Total, run.TargetMet, run.Optimizer)
				if run.Active != "" {
					fmt.Fprintf(w, "# constraints %s\n", run.Active)
				}
				for _, st := range run.Steps {
					fmt.Fprintf(w, "# step %d survivors=%d ratio=%.3f\n", st.Index, st.Survivors, st.Ratio)
				}
				if !a.noHeader {
					fmt.Fprintln(w, "id\tdirection\tseq\tselected\tscore\tcovers")
				}
				for _, p := range run.Primers {
					fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%.4f\t%d\n", p.PrimerID, p.Direction, p.Seq, p.Selected, p.Score, p.Covers)
				}
				for _, is := range run.Issues {
					fmt.Fprintf(w, "# issue %s %s: %s\n", is.Entity, is.ItemID, is.Message)
				}
				return nil
			})
		},
	}
	cmd.AddCommand(list, show)
	return cmd
}
