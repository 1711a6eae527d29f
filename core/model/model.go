// core/model/model.go
package model

import (
	"fmt"
	"strings"
)

/* ------------------------------ direction ------------------------------- */

// Direction selects which strand sense a primer (or a design run) targets.
type Direction string

const (
	Forward Direction = "fw"
	Reverse Direction = "rev"
	Both    Direction = "both"
)

// ParseDirection accepts fw/forward, rev/reverse and both.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fw", "fwd", "forward", "f":
		return Forward, nil
	case "rev", "reverse", "r":
		return Reverse, nil
	case "both", "":
		return Both, nil
	}
	return "", fmt.Errorf("unknown direction %q (want fw, rev or both)", s)
}

// Includes reports whether mode d asks for primers of direction x.
func (d Direction) Includes(x Direction) bool {
	return d == Both || d == x
}

// Directions expands a mode into its concrete directions, forward first.
func (d Direction) Directions() []Direction {
	switch d {
	case Forward:
		return []Direction{Forward}
	case Reverse:
		return []Direction{Reverse}
	}
	return []Direction{Forward, Reverse}
}

/* ------------------------------- interval ------------------------------- */

// Interval is a 1-based inclusive range on the template + strand.
// The zero value means "the whole sequence".
type Interval struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

func (iv Interval) IsZero() bool { return iv.Start == 0 && iv.End == 0 }

// Len is the number of bases covered (0 for the zero value).
func (iv Interval) Len() int {
	if iv.IsZero() || iv.End < iv.Start {
		return 0
	}
	return iv.End - iv.Start + 1
}

// Resolve maps the zero value to [1,n] and checks the bounds against a
// sequence of length n.
func (iv Interval) Resolve(n int) (Interval, error) {
	if iv.IsZero() {
		if n == 0 {
			return iv, fmt.Errorf("empty sequence")
		}
		return Interval{Start: 1, End: n}, nil
	}
	if iv.Start < 1 || iv.End > n || iv.Start > iv.End {
		return iv, fmt.Errorf("interval [%d,%d] outside sequence of length %d", iv.Start, iv.End, n)
	}
	return iv, nil
}

// Contains reports whether [start,end] lies entirely inside iv.
func (iv Interval) Contains(start, end int) bool {
	return start >= iv.Start && end <= iv.End
}

// Overlaps reports whether [start,end] shares at least one base with iv.
func (iv Interval) Overlaps(start, end int) bool {
	return start <= iv.End && end >= iv.Start
}

func (iv Interval) String() string {
	if iv.IsZero() {
		return "*"
	}
	return fmt.Sprintf("%d-%d", iv.Start, iv.End)
}

/* ------------------------------- template ------------------------------- */

// Template is a read-only target sequence. Fwd is the region forward primers
// may bind (anchored at the 5' end), Rev the region reverse primers may bind
// (anchored at the 3' end); both use + strand coordinates.
type Template struct {
	ID    string
	Group string
	Seq   string
	Fwd   Interval
	Rev   Interval
}

// Interval returns the resolved allowed region for direction d.
func (t Template) Interval(d Direction) (Interval, error) {
	if d == Reverse {
		return t.Rev.Resolve(len(t.Seq))
	}
	return t.Fwd.Resolve(len(t.Seq))
}

// Validate checks the interval invariants.
func (t Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("template without identifier")
	}
	if len(t.Seq) == 0 {
		return fmt.Errorf("template %s: empty sequence", t.ID)
	}
	if _, err := t.Fwd.Resolve(len(t.Seq)); err != nil {
		return fmt.Errorf("template %s: forward %w", t.ID, err)
	}
	if _, err := t.Rev.Resolve(len(t.Seq)); err != nil {
		return fmt.Errorf("template %s: reverse %w", t.ID, err)
	}
	return nil
}

/* -------------------------------- binding ------------------------------- */

// Binding is the best site of a primer on one template.
type Binding struct {
	TemplateID  string
	Start       int    // 1-based, + strand
	End         int    // inclusive
	Strand      string // "+" or "-"
	Mismatches  int
	MismatchPos []int  // 0-based, primer 5'→3'
	Site        string // template bases read in the primer's sense
	InRegion    bool
}

// CoverageRecord relates a primer to one template it binds.
type CoverageRecord struct {
	TemplateIndex int
	Binding       Binding
	Covered       bool
	Probability   float64 // 1 for boolean rules when covered
	OffTarget     bool
}

/* --------------------------------- primer ------------------------------- */

// Primer is a candidate or supplied oligo. Values, Verdicts and Records are
// only meaningful for the settings snapshot that produced them.
type Primer struct {
	ID           string
	Direction    Direction
	Seq          string // 5'→3', IUPAC
	Origins      []string
	TargetGroups []string

	Values   Values
	Verdicts map[Property]Verdict
	Records  []CoverageRecord
	Score    float64
}

// Covers returns the template indices covered by p in ascending order.
func (p *Primer) Covers() []int {
	out := make([]int, 0, len(p.Records))
	for _, r := range p.Records {
		if r.Covered {
			out = append(out, r.TemplateIndex)
		}
	}
	return out
}

// Targets reports whether group is one the primer is meant to amplify.
func (p *Primer) Targets(group string) bool {
	if len(p.TargetGroups) == 0 {
		return true
	}
	for _, g := range p.TargetGroups {
		if g == group {
			return true
		}
	}
	return false
}

// Clone copies p deeply enough that annotating the copy leaves p untouched.
func (p Primer) Clone() Primer {
	c := p
	c.Origins = append([]string(nil), p.Origins...)
	c.TargetGroups = append([]string(nil), p.TargetGroups...)
	c.Values = p.Values.Clone()
	if p.Verdicts != nil {
		c.Verdicts = make(map[Property]Verdict, len(p.Verdicts))
		for k, v := range p.Verdicts {
			c.Verdicts[k] = v
		}
	}
	c.Records = append([]CoverageRecord(nil), p.Records...)
	return c
}
