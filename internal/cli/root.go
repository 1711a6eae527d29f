// Package cli is the primerset command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"primerset/internal/appcore"
	"primerset/internal/config"
	"primerset/internal/logger"
	"primerset/internal/metrics"
	"primerset/internal/store"
)

// app holds the state shared by every subcommand of one invocation.
type app struct {
	stdout, stderr io.Writer

	v           *viper.Viper
	configPath  string
	output      string
	noHeader    bool
	verbose     bool
	quiet       bool
	dbPath      string
	metricsPath string
	unmetExit   int
	constraints []string
	relaxations []string

	ran   bool // set once argument parsing succeeded
	cfg   config.Config
	log   *zap.Logger
	sinks appcore.Sinks
}

// flagKeys binds command-line flags to configuration keys. A flag only
// overrides when the user sets it.
var flagKeys = map[string]string{
	"log-mode":          "log.mode",
	"log-level":         "log.level",
	"direction":         "design.direction",
	"required":          "design.required",
	"initializer":       "design.initializer",
	"optimizer":         "design.optimizer",
	"min-len":           "design.min_len",
	"max-len":           "design.max_len",
	"max-degeneracy":    "design.max_degeneracy",
	"group-specific":    "design.group_specific",
	"timeout":           "design.timeout",
	"threads":           "design.workers",
	"cache-size":        "design.cache_size",
	"coverage":          "coverage.model",
	"threshold":         "coverage.threshold",
	"max-mismatches":    "options.max_mismatches",
	"max-other-binding": "options.max_other_binding_ratio",
	"region":            "options.region",
	"terminal-window":   "options.terminal_window",
	"anneal-temp":       "pcr.anneal_temp",
	"na":                "pcr.na",
	"mg":                "pcr.mg",
	"dntp":              "pcr.dntp",
	"primer-conc":       "pcr.primer",
	"relax-steps":       "relax_steps",
	"max-iterations":    "max_iterations",
	"sweep-width":       "sweep.width",
	"sweep-step":        "sweep.step",
}

func newRoot(stdout, stderr io.Writer) (*cobra.Command, *app) {
	a := &app{stdout: stdout, stderr: stderr, v: config.New()}
	root := &cobra.Command{
		Use:   "primerset",
		Short: "Design minimal multiplex PCR primer sets covering a template collection",
		Long: `primerset generates candidate primers from template sequences, filters them on
thermodynamic and compositional constraints (relaxing toward configured
boundaries when coverage falls short) and selects a minimal set reaching the
required fraction of templates.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return appcore.Usage(err) })

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "settings file (yaml, json or toml)")
	pf.StringVarP(&a.output, "output", "o", "text", "output format: text | tsv | json | jsonl | yaml | fasta")
	pf.BoolVar(&a.noHeader, "no-header", false, "suppress table header lines")
	pf.BoolVar(&a.verbose, "verbose", false, "include unselected primers and binding records")
	pf.BoolVarP(&a.quiet, "quiet", "q", false, "only log errors")
	pf.String("log-mode", "dev", "log encoding: dev | prod")
	pf.String("log-level", "info", "log level: debug | info | warn | error")
	pf.StringVar(&a.dbPath, "db", "", "SQLite run history (empty disables)")
	pf.StringVar(&a.metricsPath, "metrics-file", "", "write Prometheus metrics in textfile format")

	root.AddCommand(a.designCmd(), a.checkCmd(), a.subsetsCmd(), a.runsCmd(), versionCmd(a))
	return root, a
}

// setup resolves configuration, logging and sinks once flags are parsed.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.ran = true
	if err := cmd.ValidateRequiredFlags(); err != nil {
		return appcore.Usage(err)
	}
	if cmd.Annotations["light"] == "true" {
		return nil
	}
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return appcore.Usage(err)
			}
		}
	}
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return appcore.Usage(err)
	}
	if err := applyRanges(&cfg, a.constraints, a.relaxations); err != nil {
		return appcore.Usage(err)
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if a.quiet {
		level = "error"
	}
	if a.log, err = logger.New(cfg.LogMode, level); err != nil {
		return appcore.Usage(err)
	}
	a.sinks.Log = a.log
	if cfg.Source != "" {
		a.log.Debug("settings loaded", zap.String("file", cfg.Source))
	}

	if a.metricsPath != "" {
		rec, err := metrics.New(prometheus.NewRegistry())
		if err != nil {
			return err
		}
		a.sinks.Metrics, a.sinks.MetricsPath = rec, a.metricsPath
	}
	if a.dbPath != "" {
		if a.sinks.Store, err = store.Open(a.dbPath); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) close() {
	if a.sinks.Store != nil {
		_ = a.sinks.Store.Close()
	}
	if a.log != nil {
		logger.Sync(a.log)
	}
}

// unmet turns a missed coverage target into the configured exit code.
func (a *app) unmet(met bool) error {
	if met || a.unmetExit == 0 {
		return nil
	}
	return &appcore.ExitError{Code: a.unmetExit}
}

func (a *app) timer() func() float64 {
	t0 := time.Now()
	return func() float64 { return time.Since(t0).Seconds() }
}

// Run executes argv and returns the process exit code.
func Run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	root, a := newRoot(stdout, stderr)
	root.SetArgs(argv)
	err := root.ExecuteContext(ctx)
	a.close()
	if err == nil {
		return appcore.ExitOK
	}
	code := appcore.Code(err)
	if !a.ran && code == appcore.ExitRuntime {
		// unknown command or bad positional arguments
		code = appcore.ExitUsage
	}
	var ee *appcore.ExitError
	if !errors.As(err, &ee) || ee.Err != nil {
		msg := err.Error()
		if code == appcore.ExitInterrupted {
			msg = "interrupted"
		}
		fmt.Fprintf(stderr, "error: %s\n", strings.TrimSpace(msg))
	}
	return code
}
