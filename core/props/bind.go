// core/props/bind.go
package props

import (
	"primerset/core/model"
	"primerset/core/primer"
	"primerset/core/settings"
)

// BindOptions controls site search.
type BindOptions struct {
	MaxMismatches  int
	TerminalWindow int // 3' bases where a mismatch rejects the site
	Region         settings.Region
}

// Binder locates the best binding site of a primer on a template.
type Binder interface {
	Bind(p model.Primer, t model.Template, opt BindOptions) (model.Binding, bool)
}

// SiteBinder scans the strand matching the primer's direction with IUPAC
// set-membership matching: forward primers read the + strand, reverse
// primers the − strand. Among all sites with at most MaxMismatches, an
// in-region site beats an out-of-region one, then fewer mismatches, then the
// leftmost position.
type SiteBinder struct{}

func (SiteBinder) Bind(p model.Primer, t model.Template, opt BindOptions) (model.Binding, bool) {
	pat := []byte(p.Seq)
	n, pl := len(t.Seq), len(pat)
	if pl == 0 || n < pl {
		return model.Binding{}, false
	}
	region, err := t.Interval(p.Direction)
	if err != nil {
		return model.Binding{}, false
	}

	strand := "+"
	scan := []byte(t.Seq)
	if p.Direction == model.Reverse {
		strand = "-"
		scan = primer.RevComp(scan)
	}

	var (
		best  model.Binding
		found bool
	)
	for _, m := range primer.FindMatches(scan, pat, opt.MaxMismatches, 0, opt.TerminalWindow) {
		start := m.Pos + 1
		if strand == "-" {
			start = n - m.Pos - pl + 1
		}
		end := start + pl - 1
		in := region.Overlaps(start, end)
		if opt.Region == settings.Strict {
			in = region.Contains(start, end)
		}
		b := model.Binding{
			TemplateID:  t.ID,
			Start:       start,
			End:         end,
			Strand:      strand,
			Mismatches:  m.Mismatches,
			MismatchPos: m.MismatchIdx,
			Site:        string(scan[m.Pos : m.Pos+pl]),
			InRegion:    in,
		}
		if !found || better(b, best) {
			best, found = b, true
		}
	}
	return best, found
}

func better(a, b model.Binding) bool {
	if a.InRegion != b.InRegion {
		return a.InRegion
	}
	if a.Mismatches != b.Mismatches {
		return a.Mismatches < b.Mismatches
	}
	return a.Start < b.Start
}
