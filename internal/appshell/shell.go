// Package appshell runs a command tree as a process: signal handling,
// argv defaults and the exit code.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"primerset/internal/appcore"
)

// Runner executes argv and returns an exit code.
type Runner func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Main runs run with the process arguments and exits.
func Main(run Runner) {
	os.Exit(Exec(context.Background(), os.Args[1:], os.Stdout, os.Stderr, run))
}

// Exec runs run under a context cancelled by SIGINT or SIGTERM. After the
// first signal the default handlers are restored, so a second one kills
// the process outright.
func Exec(parent context.Context, argv []string, stdout, stderr io.Writer, run Runner) int {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		stop()
	}()

	if len(argv) == 0 {
		argv = []string{"-h"}
	}
	code := run(ctx, argv, stdout, stderr)
	if ctx.Err() != nil && code == appcore.ExitOK {
		code = appcore.ExitInterrupted
	}
	return code
}
