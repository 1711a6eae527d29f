package pretty

import (
	"fmt"
	"io"
	"strings"

	"primerset/core/design"
	"primerset/core/model"
)

// Options control the ASCII rendering.
type Options struct {
	// Render every covered template per primer; otherwise only the first
	// MaxSites.
	AllSites bool
	MaxSites int // default 3

	// Glyphs
	ExactGlyph   string // default "|"
	PartialGlyph string // default "¦"
	MissGlyph    string // default " "
}

// DefaultOptions is the look used by the text writer.
var DefaultOptions = Options{
	MaxSites:     3,
	ExactGlyph:   "|",
	PartialGlyph: "¦",
	MissGlyph:    " ",
}

const linePrefix = "# "

func isACGT(b byte) bool { return b == 'A' || b == 'C' || b == 'G' || b == 'T' }

// matchLine draws bars between a primer and its site: exact glyph for a
// matching concrete base, partial for a matching degenerate one.
func matchLine(primer string, mismIdx []int, o Options) string {
	mism := make(map[int]struct{}, len(mismIdx))
	for _, i := range mismIdx {
		mism[i] = struct{}{}
	}
	var b strings.Builder
	b.Grow(len(primer))
	for i := 0; i < len(primer); i++ {
		switch _, bad := mism[i]; {
		case bad:
			b.WriteString(o.MissGlyph)
		case isACGT(primer[i]):
			b.WriteString(o.ExactGlyph)
		default:
			b.WriteString(o.PartialGlyph)
		}
	}
	return b.String()
}

func withDefaults(o Options) Options {
	if o.MaxSites <= 0 {
		o.MaxSites = DefaultOptions.MaxSites
	}
	if o.ExactGlyph == "" {
		o.ExactGlyph = DefaultOptions.ExactGlyph
	}
	if o.PartialGlyph == "" {
		o.PartialGlyph = DefaultOptions.PartialGlyph
	}
	if o.MissGlyph == "" {
		o.MissGlyph = DefaultOptions.MissGlyph
	}
	return o
}

// RenderSite draws one primer over its binding site:
//
//	# t1:6-25(+) mm=1
//	# 5'-GATCCAGTCAGTGCATGCAA-3' fw_1
//	#    ||||| ||||||||||||||
//	# 5'-GATCCTGTCAGTGCATGCAA-3'
func RenderSite(p model.Primer, b model.Binding, o Options) string {
	o = withDefaults(o)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s%s:%d-%d(%s) mm=%d\n", linePrefix, b.TemplateID, b.Start, b.End, b.Strand, b.Mismatches)
	fmt.Fprintf(&sb, "%s5'-%s-3' %s\n", linePrefix, p.Seq, p.ID)
	fmt.Fprintf(&sb, "%s   %s\n", linePrefix, matchLine(p.Seq, b.MismatchPos, o))
	fmt.Fprintf(&sb, "%s5'-%s-3'\n", linePrefix, b.Site)
	return sb.String()
}

// RenderPrimer draws the covered sites of one primer.
func RenderPrimer(p model.Primer, o Options) string {
	o = withDefaults(o)
	var sb strings.Builder
	n := 0
	for _, r := range p.Records {
		if !r.Covered {
			continue
		}
		if !o.AllSites && n == o.MaxSites {
			fmt.Fprintf(&sb, "%s... %d more covered templates\n", linePrefix, len(p.Covers())-n)
			break
		}
		sb.WriteString(RenderSite(p, r.Binding, o))
		n++
	}
	return sb.String()
}

// WriteSummary prints a human-readable report of a design result.
func WriteSummary(w io.Writer, r design.Result, o Options) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%srun %s direction=%s required=%.3f\n", linePrefix, r.RunID, r.Direction, r.Required)
	fmt.Fprintf(&sb, "%scoverage %d/%d (%.3f) target_met=%t\n", linePrefix, r.Coverage.Covered, r.Coverage.Total, r.Coverage.Ratio, r.TargetMet)
	for _, g := range r.Coverage.Groups {
		fmt.Fprintf(&sb, "%s  group %s %d/%d\n", linePrefix, g.Group, g.Covered, g.Total)
	}
	fmt.Fprintf(&sb, "%srelaxation steps=%d optimizer=%s optimal=%t", linePrefix, len(r.Relaxation.Steps), r.Optimizer.Strategy, r.Optimizer.Optimal)
	if r.Optimizer.Fallback {
		fmt.Fprintf(&sb, " fallback=%q", r.Optimizer.Reason)
	}
	sb.WriteByte('\n')
	for _, prop := range model.Properties {
		if rg, ok := r.Active[prop]; ok {
			fmt.Fprintf(&sb, "%s  %s %s\n", linePrefix, prop, rg)
		}
	}
	if len(r.Selected) > 1 {
		fmt.Fprintf(&sb, "%sset tm %.1f-%.1f worst cross-dimer %.2f (%s/%s)\n", linePrefix,
			r.Set.TmMin, r.Set.TmMax, r.Set.WorstCrossDimer, r.Set.CrossDimerPair[0], r.Set.CrossDimerPair[1])
	}
	for _, p := range r.Selected {
		sb.WriteString(linePrefix + "\n")
		sb.WriteString(RenderPrimer(p, o))
	}
	for _, is := range r.Issues {
		fmt.Fprintf(&sb, "%sissue %s %s: %s\n", linePrefix, is.Entity, is.ID, is.Message)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
