// Package store keeps a run history in SQLite through gorm.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"primerset/core/design"
	"primerset/core/model"
	"primerset/internal/output"
)

// ErrNotFound is returned when a run id is unknown.
var ErrNotFound = errors.New("run not found")

// Store wraps the database handle.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the SQLite database at path and migrates
// the schema. ":memory:" gives a private in-memory database.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Run{}, &RunPrimer{}, &RelaxStep{}, &RunIssue{}); err != nil {
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func valuesJSON(v model.Values) string {
	m := make(map[string]float64, len(v))
	for _, k := range v.Keys() {
		if x, ok := v.Get(k); ok {
			m[string(k)] = x
		}
	}
	return toJSON(m)
}

func primerRow(p model.Primer, selected bool) RunPrimer {
	return RunPrimer{
		PrimerID:  p.ID,
		Direction: string(p.Direction),
		Seq:       p.Seq,
		Selected:  selected,
		Score:     p.Score,
		Covers:    len(p.Covers()),
		Values:    valuesJSON(p.Values),
	}
}

func issueRows(list []design.Issue) []RunIssue {
	var out []RunIssue
	for _, is := range list {
		out = append(out, RunIssue{Entity: is.Entity, ItemID: is.ID, Message: is.Message})
	}
	return out
}

// SaveDesign persists a design result with its primers, relaxation trail
// and issues in one transaction.
func (s *Store) SaveDesign(ctx context.Context, r design.Result) (*Run, error) {
	run := &Run{
		RunID:         r.RunID,
		Command:       "design",
		Direction:     string(r.Direction),
		Required:      r.Required,
		TargetMet:     r.TargetMet,
		Covered:       r.Coverage.Covered,
		Total:         r.Coverage.Total,
		CoverageRatio: r.Coverage.Ratio,
		Candidates:    r.Stats.Candidates,
		Survivors:     r.Stats.Survivors,
		Iterations:    r.Stats.Iterations,
		Optimizer:     string(r.Optimizer.Strategy),
		Fallback:      r.Optimizer.Fallback,
		Active:        toJSON(output.ToAPIRanges(r.Active)),
		Elapsed:       r.Stats.Elapsed,
		Issues:        issueRows(r.Issues),
	}
	for _, p := range r.Selected {
		run.Primers = append(run.Primers, primerRow(p, true))
	}
	for _, p := range r.Unselected {
		run.Primers = append(run.Primers, primerRow(p, false))
	}
	for _, st := range r.Relaxation.Steps {
		run.Steps = append(run.Steps, RelaxStep{
			Index:       st.Index,
			Survivors:   st.Survivors,
			Ratio:       st.Ratio,
			Constraints: toJSON(output.ToAPIRanges(st.Constraints)),
		})
	}
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, fmt.Errorf("save run %s: %w", r.RunID, err)
	}
	return run, nil
}

// SaveCheck persists a constraint check.
func (s *Store) SaveCheck(ctx context.Context, c design.Check) (*Run, error) {
	passing := make(map[int]bool, len(c.Passing))
	for _, i := range c.Passing {
		passing[i] = true
	}
	run := &Run{
		RunID:         c.RunID,
		Command:       "check",
		TargetMet:     len(c.Passing) == len(c.Primers),
		Covered:       c.Coverage.Covered,
		Total:         c.Coverage.Total,
		CoverageRatio: c.Coverage.Ratio,
		Issues:        issueRows(c.Issues),
	}
	for i, p := range c.Primers {
		run.Primers = append(run.Primers, primerRow(p, passing[i]))
	}
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, fmt.Errorf("save run %s: %w", c.RunID, err)
	}
	return run, nil
}

// Runs lists the most recent runs, newest first, without children.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	var out []Run
	q := s.db.WithContext(ctx).Order("created_at desc, id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Get loads one run with its primers (selected first), steps and issues.
func (s *Store) Get(ctx context.Context, runID string) (*Run, error) {
	var run Run
	err := s.db.WithContext(ctx).
		Preload("Primers", func(db *gorm.DB) *gorm.DB { return db.Order("selected desc, id") }).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("pass") }).
		Preload("Issues").
		Where("run_id = ?", runID).
		First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}
