// core/candidates/naive.go
package candidates

import (
	"primerset/core/model"
	"primerset/core/primer"
)

// naiveWindows emits every window of every length in [MinLen,MaxLen].
// Windows containing non-ACGT template bases are skipped.
func naiveWindows(regs []region, d model.Direction, cfg Config, p *pool) {
	for _, r := range regs {
		for l := cfg.MinLen; l <= cfg.MaxLen; l++ {
			for s := 0; s+l <= len(r.seq); s++ {
				w := r.seq[s : s+l]
				if canonical(w) {
					p.add(d, w, r.id)
				}
			}
		}
	}
}

func revComp(s string) string { return primer.RevCompString(s) }
