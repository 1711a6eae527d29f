// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"primerset/core/design"
	"primerset/core/fasta"
	"primerset/core/model"
	"primerset/core/settings"
	"primerset/internal/metrics"
	"primerset/internal/store"
	"primerset/internal/writers"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitUnmet       = 1 // default when the coverage target is not reached
	ExitUsage       = 2
	ExitRuntime     = 3
	ExitInterrupted = 130
)

// ExitError carries an explicit exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// Usage marks err as a usage or configuration problem.
func Usage(err error) error { return &ExitError{Code: ExitUsage, Err: err} }

// Code maps an error to the process exit code.
func Code(err error) int {
	var ee *ExitError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &ee):
		return ee.Code
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ExitInterrupted
	case errors.Is(err, settings.ErrInvalidSettings):
		return ExitUsage
	}
	return ExitRuntime
}

// Emit buffers everything write produces and flushes it to stdout. A
// downstream reader closing early is not an error.
func Emit(stdout io.Writer, write func(io.Writer) error) error {
	outw := bufio.NewWriter(stdout)
	if err := write(outw); err != nil && !writers.IsBrokenPipe(err) {
		return &ExitError{Code: ExitRuntime, Err: err}
	}
	if err := outw.Flush(); err != nil && !writers.IsBrokenPipe(err) {
		return &ExitError{Code: ExitRuntime, Err: err}
	}
	return nil
}

// LoadTemplates reads every FASTA path in order. Records the reader rejects
// come back as issues located by file and line.
func LoadTemplates(ctx context.Context, paths []string) ([]model.Template, []design.Issue, error) {
	var (
		out    []model.Template
		issues []design.Issue
	)
	for _, p := range paths {
		ts, iss, err := fasta.ReadTemplatesPath(ctx, p)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, nil, err
			}
			return nil, nil, Usage(fmt.Errorf("templates %s: %w", p, err))
		}
		out = append(out, ts...)
		for _, is := range iss {
			issues = append(issues, design.Issue{
				Entity:  "template",
				ID:      is.ID,
				Message: fmt.Sprintf("%s:%d: %s", p, is.Line, is.Message),
			})
		}
	}
	if len(out) == 0 && len(issues) == 0 {
		return nil, nil, Usage(errors.New("no templates read"))
	}
	return out, issues, nil
}

// Sinks are the optional side outputs of a run: run history and metrics.
type Sinks struct {
	Store       *store.Store
	Metrics     *metrics.Recorder
	MetricsPath string
	Log         *zap.Logger
}

func (s Sinks) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

// Design records a design result. Failures are logged, never fatal: the
// result has already been computed.
func (s Sinks) Design(ctx context.Context, r design.Result) {
	if s.Metrics != nil {
		s.Metrics.RecordDesign(r)
	}
	if s.Store != nil {
		if _, err := s.Store.SaveDesign(ctx, r); err != nil {
			s.log().Warn("run history not saved", zap.String("run_id", r.RunID), zap.Error(err))
		}
	}
	s.flush()
}

// Check records a constraint check.
func (s Sinks) Check(ctx context.Context, c design.Check, seconds float64) {
	if s.Metrics != nil {
		s.Metrics.RecordCheck(c, seconds)
	}
	if s.Store != nil {
		if _, err := s.Store.SaveCheck(ctx, c); err != nil {
			s.log().Warn("run history not saved", zap.String("run_id", c.RunID), zap.Error(err))
		}
	}
	s.flush()
}

// Failed counts a command that ended in err.
func (s Sinks) Failed(command string, err error) {
	if s.Metrics != nil && err != nil {
		s.Metrics.RecordError(command)
		s.flush()
	}
}

func (s Sinks) flush() {
	if s.Metrics == nil || s.MetricsPath == "" {
		return
	}
	if err := s.Metrics.WriteTextfile(s.MetricsPath); err != nil {
		s.log().Warn("metrics not written", zap.String("path", s.MetricsPath), zap.Error(err))
	}
}
