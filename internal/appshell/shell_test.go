package appshell

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"primerset/internal/appcore"
)

func TestExecDefaultsToHelp(t *testing.T) {
	var got []string
	code := Exec(context.Background(), nil, io.Discard, io.Discard, func(_ context.Context, argv []string, _, _ io.Writer) int {
		got = argv
		return appcore.ExitUnmet
	})
	assert.Equal(t, []string{"-h"}, got)
	assert.Equal(t, appcore.ExitUnmet, code)
}

func TestExecCancelledRunIsInterrupted(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	cancel()
	code := Exec(parent, []string{"design"}, io.Discard, io.Discard, func(ctx context.Context, _ []string, _, _ io.Writer) int {
		<-ctx.Done()
		return appcore.ExitOK
	})
	assert.Equal(t, appcore.ExitInterrupted, code)
}
