// core/primer/match.go
package primer

import "bytes"

/* ----------------------- types --------------------- */

type Match struct {
	Pos         int // 0-based start on the scanned sequence
	Mismatches  int
	Length      int
	MismatchIdx []int // 0-based positions in the pattern that mismatched
}

func isUnambiguous(p []byte) bool {
	for _, c := range p {
		if c != 'A' && c != 'C' && c != 'G' && c != 'T' {
			return false
		}
	}
	return true
}

/* --------------------------- FindMatches (cap) -------------------------- */

// FindMatches scans seq for every window matching pattern with at most maxMM
// mismatches.
//
// capHits == 0  ➜ unlimited
// terminalWindow: N bases at the pattern's 3' end where mismatches are
// disallowed (0 = allow).
func FindMatches(seq, pattern []byte, maxMM, capHits int, terminalWindow int) []Match {
	pl := len(pattern)
	if pl == 0 || len(seq) < pl {
		return nil
	}

	// Exact fast path: bytes.Index jump scanning.
	if maxMM == 0 && isUnambiguous(pattern) {
		out := make([]Match, 0, 4)
		for i := 0; ; {
			j := bytes.Index(seq[i:], pattern)
			if j < 0 {
				break
			}
			pos := i + j
			out = append(out, Match{Pos: pos, Length: pl})
			if capHits > 0 && len(out) >= capHits {
				break
			}
			i = pos + 1
		}
		return out
	}

	cutoff := pl - terminalWindow
	if terminalWindow <= 0 {
		cutoff = pl + 1
	}
	if cutoff < 0 {
		cutoff = 0
	}

	end := len(seq) - pl
	out := make([]Match, 0, 4)
window:
	for pos := 0; pos <= end; pos++ {
		mm := 0
		var idx []int
		for j := 0; j < pl; j++ {
			if !BaseMatch(seq[pos+j], pattern[j]) {
				if j >= cutoff {
					continue window
				}
				mm++
				if mm > maxMM {
					continue window
				}
				idx = append(idx, j)
			}
		}
		out = append(out, Match{Pos: pos, Mismatches: mm, Length: pl, MismatchIdx: idx})
		if capHits > 0 && len(out) >= capHits {
			break
		}
	}
	return out
}
