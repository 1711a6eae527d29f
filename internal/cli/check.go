package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"primerset/core/design"
	"primerset/core/model"
	"primerset/internal/appcore"
	"primerset/internal/cliutil"
	"primerset/internal/primerio"
	"primerset/internal/writers"
)

func errUnknownFormat(f string, known []string) error {
	return fmt.Errorf("unsupported output %q (want %s)", f, strings.Join(known, " | "))
}

func (a *app) checkCmd() *cobra.Command {
	var primersPath string
	cmd := &cobra.Command{
		Use:   "check -p PRIMERS.tsv [flags] TEMPLATES.fa [...]",
		Short: "Evaluate existing primers against the nominal constraints",
		Long: `Check evaluates every primer in the table (id fw|rev SEQ [groups], or
id FWD REV pairs), reports per-constraint verdicts and the coverage of the
primers that pass.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := writers.CheckWriters[a.output]; !ok {
				return appcore.Usage(errUnknownFormat(a.output, writers.Formats(writers.CheckWriters)))
			}
			primers, templates, err := a.loadInputs(cmd, primersPath, args)
			if err != nil {
				a.sinks.Failed("check", err)
				return err
			}
			elapsed := a.timer()
			chk, err := a.engine().CheckConstraints(cmd.Context(), primers, templates.list, a.cfg.Spec)
			if err != nil {
				a.sinks.Failed("check", err)
				return err
			}
			chk.Issues = append(templates.issues, chk.Issues...)
			for _, is := range chk.Issues {
				a.log.Warn("input issue", zap.String("entity", is.Entity), zap.String("id", is.ID), zap.String("message", is.Message))
			}
			a.sinks.Check(cmd.Context(), chk, elapsed())
			if err := appcore.Emit(a.stdout, func(w io.Writer) error {
				return writers.WriteCheck(a.output, w, writers.CheckPayload{Check: chk, Header: !a.noHeader})
			}); err != nil {
				return err
			}
			return a.unmet(len(chk.Primers) > 0 && len(chk.Passing) == len(chk.Primers))
		},
	}
	a.settingsFlags(cmd)
	cmd.Flags().StringVarP(&primersPath, "primers", "p", "", "primer table ('-' for stdin)")
	_ = cmd.MarkFlagRequired("primers")
	cmd.Flags().IntVar(&a.unmetExit, "unmet-exit-code", appcore.ExitUnmet, "exit code when a primer fails a constraint (0 = success)")
	return cmd
}

type templateSet struct {
	list   []model.Template
	issues []design.Issue
}

func (a *app) loadInputs(cmd *cobra.Command, primersPath string, args []string) ([]model.Primer, templateSet, error) {
	paths, err := cliutil.ExpandPositionals(args)
	if err != nil {
		return nil, templateSet{}, appcore.Usage(err)
	}
	primers, err := primerio.LoadTSV(primersPath)
	if err != nil {
		return nil, templateSet{}, appcore.Usage(err)
	}
	list, issues, err := appcore.LoadTemplates(cmd.Context(), paths)
	if err != nil {
		return nil, templateSet{}, err
	}
	return primers, templateSet{list: list, issues: issues}, nil
}
