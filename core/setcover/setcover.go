// core/setcover/setcover.go
package setcover

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"primerset/core/coverage"
)

// Strategy selects the optimizer.
type Strategy string

const (
	Greedy Strategy = "greedy"
	Exact  Strategy = "exact"
)

// ParseStrategy accepts greedy and exact.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case Greedy, "":
		return Greedy, nil
	case Exact, "ilp", "optimal":
		return Exact, nil
	}
	return "", fmt.Errorf("unknown optimizer strategy %q (want greedy or exact)", s)
}

var (
	// ErrInfeasible means no subset reaches the requested coverage.
	ErrInfeasible = errors.New("set cover infeasible")
	// ErrTimeout means the exact solver did not finish in time.
	ErrTimeout = errors.New("exact solver timed out")
)

// Selection is an optimizer result. Indices refer to matrix columns.
type Selection struct {
	Indices  []int // in selection order
	Covered  int
	Ratio    float64
	Target   int // templates that had to be covered
	Strategy Strategy
	Optimal  bool   // proven minimal by the exact solver
	Fallback bool   // exact failed, greedy result returned
	Reason   string // why the fallback happened
}

// Met reports whether the selection reaches its target.
func (s Selection) Met() bool { return s.Covered >= s.Target }

// Target converts a required ratio into a template count: ceil(r·n).
func Target(required float64, templates int) int {
	t := int(math.Ceil(required*float64(templates) - 1e-9))
	return min(max(t, 0), templates)
}

func finish(m coverage.Matrix, sel []int, target int, s Strategy) Selection {
	if sel == nil {
		sel = []int{}
	}
	cov := m.Union(sel)
	return Selection{
		Indices:  sel,
		Covered:  cov,
		Ratio:    m.Ratio(sel),
		Target:   target,
		Strategy: s,
	}
}
