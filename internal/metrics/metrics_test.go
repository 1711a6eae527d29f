package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primerset/core/coverage"
	"primerset/core/design"
	"primerset/core/model"
)

func newRecorder(t *testing.T) *Recorder {
	t.Helper()
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)
	return m
}

func TestRecordDesign(t *testing.T) {
	m := newRecorder(t)
	r := design.Result{
		Selected:  []model.Primer{{ID: "a"}, {ID: "b"}},
		Coverage:  coverage.Stats{Covered: 3, Total: 4, Ratio: 0.75},
		Optimizer: design.OptimizerReport{Fallback: true},
		Issues:    []design.Issue{{Entity: "template"}, {Entity: "template"}},
		Stats:     design.RunStats{Candidates: 40, Survivors: 12, Iterations: 3, CacheHits: 5, CacheMisses: 7, Elapsed: time.Second},
	}
	m.RecordDesign(r)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.runsTotal.WithLabelValues("design", "unmet")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fallbacksTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.issuesTotal.WithLabelValues("template")))
	assert.Equal(t, 40.0, testutil.ToFloat64(m.candidates))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.selected))
	assert.Equal(t, 0.75, testutil.ToFloat64(m.coverageRatio))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("miss")))
}

func TestRecordCheckAndError(t *testing.T) {
	m := newRecorder(t)
	m.RecordCheck(design.Check{Primers: []model.Primer{{ID: "a"}}, Passing: []int{0}}, 0.2)
	m.RecordError("subsets")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runsTotal.WithLabelValues("check", "met")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runsTotal.WithLabelValues("subsets", "error")))
}

func TestDoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)
	_, err = New(reg)
	assert.Error(t, err)
}

func TestWriteTextfile(t *testing.T) {
	m := newRecorder(t)
	m.RecordError("design")
	path := filepath.Join(t.TempDir(), "primerset.prom")
	require.NoError(t, m.WriteTextfile(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), `primerset_runs_total{command="design",status="error"} 1`))
}
