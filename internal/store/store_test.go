package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primerset/core/coverage"
	"primerset/core/design"
	"primerset/core/model"
	"primerset/core/relax"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleResult(id string) design.Result {
	return design.Result{
		RunID:     id,
		Direction: model.Forward,
		Required:  1,
		Selected: []model.Primer{{
			ID: "fw_1", Direction: model.Forward, Seq: "ACGT",
			Values:  model.Values{model.GCRatio: 0.5},
			Records: []model.CoverageRecord{{TemplateIndex: 0, Covered: true}},
		}},
		Unselected: []model.Primer{{ID: "fw_2", Direction: model.Forward, Seq: "TTTT"}},
		Active:     map[model.Property]model.Range{model.GCRatio: model.Bounded(0.4, 0.6)},
		Relaxation: relax.Outcome{Steps: []relax.Step{
			{Index: 0, Survivors: 1, Ratio: 0.5},
			{Index: 1, Survivors: 2, Ratio: 1},
		}},
		Coverage:  coverage.Stats{Covered: 1, Total: 1, Ratio: 1},
		Issues:    []design.Issue{{Entity: "template", ID: "bad", Message: "empty sequence"}},
		Stats:     design.RunStats{Candidates: 2, Survivors: 2, Iterations: 2, Elapsed: time.Millisecond},
		TargetMet: true,
	}
}

func TestSaveAndGetDesign(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	_, err := s.SaveDesign(ctx, sampleResult("run-1"))
	require.NoError(t, err)

	got, err := s.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "design", got.Command)
	assert.True(t, got.TargetMet)
	require.Len(t, got.Primers, 2)
	assert.Equal(t, "fw_1", got.Primers[0].PrimerID)
	assert.True(t, got.Primers[0].Selected)
	assert.Equal(t, 1, got.Primers[0].Covers)
	assert.JSONEq(t, `{"gc_ratio":0.5}`, got.Primers[0].Values)
	require.Len(t, got.Steps, 2)
	assert.Equal(t, 1.0, got.Steps[1].Ratio)
	assert.JSONEq(t, `{"gc_ratio":{"min":0.4,"max":0.6}}`, got.Active)
	require.Len(t, got.Issues, 1)
	assert.Equal(t, "bad", got.Issues[0].ItemID)
}

func TestDuplicateRunIDRejected(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	_, err := s.SaveDesign(ctx, sampleResult("dup"))
	require.NoError(t, err)
	_, err = s.SaveDesign(ctx, sampleResult("dup"))
	assert.Error(t, err)
}

func TestSaveCheckAndList(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	_, err := s.SaveDesign(ctx, sampleResult("a"))
	require.NoError(t, err)
	_, err = s.SaveCheck(ctx, design.Check{
		RunID:   "b",
		Primers: []model.Primer{{ID: "x"}, {ID: "y"}},
		Passing: []int{1},
	})
	require.NoError(t, err)

	runs, err := s.Runs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "b", runs[0].RunID)

	chk, err := s.Get(ctx, "b")
	require.NoError(t, err)
	assert.False(t, chk.TargetMet)
	require.Len(t, chk.Primers, 2)
	assert.Equal(t, "y", chk.Primers[0].PrimerID, "passing primers sort first")
}

func TestGetUnknown(t *testing.T) {
	s := openTemp(t)
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
