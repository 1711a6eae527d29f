// core/candidates/candidates.go
package candidates

import (
	"fmt"
	"strings"

	"primerset/core/model"
)

// Strategy selects how the initial pool is built.
type Strategy string

const (
	Naive Strategy = "naive" // every window of every template
	Tree  Strategy = "tree"  // degenerate consensus windows over a guide tree
)

// ParseStrategy accepts naive and tree.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case Naive, "":
		return Naive, nil
	case Tree:
		return Tree, nil
	}
	return "", fmt.Errorf("unknown initializer strategy %q (want naive or tree)", s)
}

// Config drives Generate.
type Config struct {
	Strategy      Strategy
	Direction     model.Direction
	MinLen        int
	MaxLen        int
	MaxDegeneracy int  // distinct bases allowed per consensus column (tree)
	GroupSpecific bool // set TargetGroups to the origin templates' groups
}

// Issue is a non-fatal per-template problem.
type Issue struct {
	TemplateID string
	Message    string
}

func (c Config) validate() error {
	switch {
	case c.MinLen < 2:
		return fmt.Errorf("minimum primer length must be ≥ 2, got %d", c.MinLen)
	case c.MaxLen < c.MinLen:
		return fmt.Errorf("maximum primer length %d < minimum %d", c.MaxLen, c.MinLen)
	case c.Strategy == Tree && c.MaxDegeneracy < 1:
		return fmt.Errorf("max degeneracy must be ≥ 1, got %d", c.MaxDegeneracy)
	}
	return nil
}

// Generate builds the candidate pool. Templates whose allowed interval is
// invalid or shorter than MinLen are reported as Issues and contribute no
// candidates. Output is deterministic for identical input.
func Generate(templates []model.Template, cfg Config) ([]model.Primer, []Issue, error) {
	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}
	if cfg.Direction == "" {
		cfg.Direction = model.Both
	}
	pool := newPool()
	var issues []Issue
	for _, d := range cfg.Direction.Directions() {
		regs, iss := regions(templates, d, cfg.MinLen)
		issues = append(issues, iss...)
		switch cfg.Strategy {
		case Tree:
			treeWindows(regs, d, cfg, pool)
		default:
			naiveWindows(regs, d, cfg, pool)
		}
	}
	out := pool.primers()
	if cfg.GroupSpecific {
		groups := make(map[string]string, len(templates))
		for _, t := range templates {
			groups[t.ID] = t.Group
		}
		for i := range out {
			out[i].TargetGroups = originGroups(out[i].Origins, groups)
		}
	}
	return out, issues, nil
}

// region is a template's allowed interval in primer sense: forward regions
// read the + strand, reverse regions the reverse complement.
type region struct {
	id  string
	seq string
}

func regions(templates []model.Template, d model.Direction, minLen int) ([]region, []Issue) {
	var (
		out    []region
		issues []Issue
	)
	for _, t := range templates {
		iv, err := t.Interval(d)
		if err != nil {
			issues = append(issues, Issue{TemplateID: t.ID, Message: fmt.Sprintf("%s: %v", d, err)})
			continue
		}
		if iv.Len() < minLen {
			issues = append(issues, Issue{
				TemplateID: t.ID,
				Message:    fmt.Sprintf("%s interval %s shorter than primer length %d", d, iv, minLen),
			})
			continue
		}
		s := strings.ToUpper(t.Seq[iv.Start-1 : iv.End])
		if d == model.Reverse {
			s = revComp(s)
		}
		out = append(out, region{id: t.ID, seq: s})
	}
	return out, issues
}

/* --------------------------------- pool --------------------------------- */

type poolKey struct {
	dir model.Direction
	seq string
}

// pool deduplicates (direction, sequence) pairs, keeping origins in
// first-seen order.
type pool struct {
	index map[poolKey]int
	list  []model.Primer
	seen  []map[string]bool
	count map[model.Direction]int
}

func newPool() *pool {
	return &pool{index: map[poolKey]int{}, count: map[model.Direction]int{}}
}

func (p *pool) add(d model.Direction, seq string, origins ...string) {
	k := poolKey{d, seq}
	i, ok := p.index[k]
	if !ok {
		p.count[d]++
		i = len(p.list)
		p.index[k] = i
		p.list = append(p.list, model.Primer{
			ID:        fmt.Sprintf("%s_%d", d, p.count[d]),
			Direction: d,
			Seq:       seq,
		})
		p.seen = append(p.seen, map[string]bool{})
	}
	for _, o := range origins {
		if !p.seen[i][o] {
			p.seen[i][o] = true
			p.list[i].Origins = append(p.list[i].Origins, o)
		}
	}
}

func (p *pool) primers() []model.Primer { return p.list }

func originGroups(origins []string, groups map[string]string) []string {
	var out []string
	seen := map[string]bool{}
	for _, o := range origins {
		g := groups[o]
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	return out
}

func canonical(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'A', 'C', 'G', 'T':
		default:
			return false
		}
	}
	return true
}
