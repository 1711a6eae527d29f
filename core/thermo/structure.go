// core/thermo/structure.go
package thermo

import "math"

// Hairpin loop initiation ΔG37 (kcal/mol) for loops of 3..9 nt
// (SantaLucia & Hicks 2004); longer loops extrapolate Jacobson–Stockmayer.
var hairpinLoopDG = map[int]float64{3: 3.5, 4: 3.5, 5: 3.3, 6: 4.0, 7: 4.2, 8: 4.3, 9: 4.5}

const (
	minHairpinStem = 3
	minHairpinLoop = 3
)

// DimerDeltaG returns the most stable (most negative) ΔG (kcal/mol) at
// tempC over every contiguous Watson–Crick stretch (≥2 bp) formed when a
// and b (both 5'→3') anneal antiparallel at any offset. 0 when none forms.
// Non-ACGT positions break stretches.
func DimerDeltaG(a, b string, naM, tempC float64) float64 {
	la, lb := len(a), len(b)
	if la < 2 || lb < 2 {
		return 0
	}
	best := 0.0
	// a[i] faces b[lb-1-(i-s)]; s shifts b along a.
	for s := -(lb - 1); s <= la-1; s++ {
		run := 0
		for i := 0; i < la; i++ {
			j := i - s
			paired := false
			if j >= 0 && j < lb {
				paired = wc(a[i], b[lb-1-j])
			}
			if paired {
				run++
				continue
			}
			best = minStretch(best, a, i, run, naM, tempC)
			run = 0
		}
		best = minStretch(best, a, la, run, naM, tempC)
	}
	return best
}

func minStretch(best float64, a string, end, run int, naM, tempC float64) float64 {
	if run < 2 {
		return best
	}
	if dg, ok := StackDeltaG(a[end-run:end], naM, tempC, true); ok && dg < best {
		return dg
	}
	return best
}

// HairpinDeltaG returns the most stable hairpin ΔG (kcal/mol) at tempC: a
// stem of ≥3 bp closing a loop of ≥3 nt. 0 when no hairpin forms.
func HairpinDeltaG(s string, naM, tempC float64) float64 {
	n := len(s)
	best := 0.0
	for i := 0; i < n; i++ {
		for j := n - 1; j > i; j-- {
			k := 0
			for i+k < j-k && wc(s[i+k], s[j-k]) {
				k++
			}
			// shrink the stem until the loop is long enough
			for k >= minHairpinStem && (j-k)-(i+k)+1 < minHairpinLoop {
				k--
			}
			if k < minHairpinStem {
				continue
			}
			stem, ok := StackDeltaG(s[i:i+k], naM, tempC, false)
			if !ok {
				continue
			}
			loop := (j - k) - (i + k) + 1
			if dg := stem + loopDeltaG(loop, tempC); dg < best {
				best = dg
			}
		}
	}
	return best
}

func loopDeltaG(n int, tempC float64) float64 {
	if dg, ok := hairpinLoopDG[n]; ok {
		return dg
	}
	if n < minHairpinLoop {
		return math.Inf(1)
	}
	tK := tempC + KelvinOffset
	return hairpinLoopDG[9] + 2.44*Rcal*tK*math.Log(float64(n)/9.0)/1000.0
}

// LongestRun is the longest homopolymer run in s.
func LongestRun(s string) int {
	best, cur := 0, 0
	for i := 0; i < len(s); i++ {
		if i > 0 && s[i] == s[i-1] {
			cur++
		} else {
			cur = 1
		}
		if cur > best {
			best = cur
		}
	}
	return best
}

// LongestDinucleotideRepeat is the largest number of consecutive copies of
// any dinucleotide (e.g. ATATAT = 3). Homopolymers do not count.
func LongestDinucleotideRepeat(s string) int {
	best := 0
	if len(s) >= 2 {
		best = 1
	}
	for off := 0; off < 2; off++ {
		cur := 0
		var prev string
		for i := off; i+2 <= len(s); i += 2 {
			d := s[i : i+2]
			if d[0] == d[1] {
				cur, prev = 0, ""
				continue
			}
			if d == prev {
				cur++
			} else {
				cur = 1
			}
			prev = d
			if cur > best {
				best = cur
			}
		}
	}
	return best
}
