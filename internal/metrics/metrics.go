// Package metrics exposes run metrics for a primer design process.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"primerset/core/design"
)

// Recorder holds the Prometheus metrics of one process.
type Recorder struct {
	registry *prometheus.Registry

	runsTotal       *prometheus.CounterVec
	fallbacksTotal  prometheus.Counter
	issuesTotal     *prometheus.CounterVec
	runDuration     *prometheus.HistogramVec
	candidates      prometheus.Gauge
	survivors       prometheus.Gauge
	selected        prometheus.Gauge
	coverageRatio   prometheus.Gauge
	relaxIterations prometheus.Gauge
	cacheLookups    *prometheus.CounterVec
}

// New creates the metrics and registers them with registry.
func New(registry *prometheus.Registry) (*Recorder, error) {
	m := &Recorder{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Recorder) initMetrics() {
	m.runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "primerset_runs_total",
			Help: "Total number of runs by command and outcome",
		},
		[]string{"command", "status"}, // status: met, unmet, error
	)
	m.fallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "primerset_optimizer_fallbacks_total",
		Help: "Exact optimizer runs that fell back to greedy",
	})
	m.issuesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "primerset_input_issues_total",
			Help: "Non-fatal input problems by entity",
		},
		[]string{"entity"},
	)
	m.runDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "primerset_run_duration_seconds",
			Help:    "Wall time of a run",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 14), // 10ms to ~80s
		},
		[]string{"command"},
	)
	m.candidates = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "primerset_candidates",
		Help: "Candidate primers generated by the last design",
	})
	m.survivors = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "primerset_survivors",
		Help: "Candidates passing the final constraints of the last design",
	})
	m.selected = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "primerset_selected_primers",
		Help: "Size of the last selected set",
	})
	m.coverageRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "primerset_coverage_ratio",
		Help: "Template coverage ratio of the last run",
	})
	m.relaxIterations = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "primerset_relaxation_iterations",
		Help: "Filtering passes of the last design",
	})
	m.cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "primerset_property_cache_lookups_total",
			Help: "Property cache lookups by result",
		},
		[]string{"result"}, // hit, miss
	)
}

// Describe implements the Collector interface
func (m *Recorder) Describe(ch chan<- *prometheus.Desc) {
	m.runsTotal.Describe(ch)
	m.fallbacksTotal.Describe(ch)
	m.issuesTotal.Describe(ch)
	m.runDuration.Describe(ch)
	m.candidates.Describe(ch)
	m.survivors.Describe(ch)
	m.selected.Describe(ch)
	m.coverageRatio.Describe(ch)
	m.relaxIterations.Describe(ch)
	m.cacheLookups.Describe(ch)
}

// Collect implements the Collector interface
func (m *Recorder) Collect(ch chan<- prometheus.Metric) {
	m.runsTotal.Collect(ch)
	m.fallbacksTotal.Collect(ch)
	m.issuesTotal.Collect(ch)
	m.runDuration.Collect(ch)
	m.candidates.Collect(ch)
	m.survivors.Collect(ch)
	m.selected.Collect(ch)
	m.coverageRatio.Collect(ch)
	m.relaxIterations.Collect(ch)
	m.cacheLookups.Collect(ch)
}

func status(met bool) string {
	if met {
		return "met"
	}
	return "unmet"
}

// RecordDesign records the outcome of a design run.
func (m *Recorder) RecordDesign(r design.Result) {
	m.runsTotal.WithLabelValues("design", status(r.TargetMet)).Inc()
	m.runDuration.WithLabelValues("design").Observe(r.Stats.Elapsed.Seconds())
	m.candidates.Set(float64(r.Stats.Candidates))
	m.survivors.Set(float64(r.Stats.Survivors))
	m.selected.Set(float64(len(r.Selected)))
	m.coverageRatio.Set(r.Coverage.Ratio)
	m.relaxIterations.Set(float64(r.Stats.Iterations))
	m.cacheLookups.WithLabelValues("hit").Add(float64(r.Stats.CacheHits))
	m.cacheLookups.WithLabelValues("miss").Add(float64(r.Stats.CacheMisses))
	if r.Optimizer.Fallback {
		m.fallbacksTotal.Inc()
	}
	m.recordIssues(r.Issues)
}

// RecordCheck records a constraint check; met means every primer passed.
func (m *Recorder) RecordCheck(c design.Check, seconds float64) {
	m.runsTotal.WithLabelValues("check", status(len(c.Passing) == len(c.Primers))).Inc()
	m.runDuration.WithLabelValues("check").Observe(seconds)
	m.coverageRatio.Set(c.Coverage.Ratio)
	m.recordIssues(c.Issues)
}

// RecordError counts a run that ended in an error.
func (m *Recorder) RecordError(command string) {
	m.runsTotal.WithLabelValues(command, "error").Inc()
}

func (m *Recorder) recordIssues(list []design.Issue) {
	for _, is := range list {
		m.issuesTotal.WithLabelValues(is.Entity).Inc()
	}
}

// WriteTextfile writes the registry in the node-exporter textfile format.
func (m *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
