// core/thermo/efficiency.go
package thermo

import "math"

// MismatchDeltaG sums the position-weighted ΔΔG (kcal/mol) of the mismatches
// between a primer and its binding site. site is the template read in the
// primer's sense (a perfect primer equals site). For degenerate primer
// symbols the mildest represented base is used; canonicalBases maps a primer
// symbol to its bases.
func MismatchDeltaG(primer5to3, site string, mismatchPos []int, canonicalBases func(byte) []byte) float64 {
	n := len(primer5to3)
	if n == 0 || len(site) != n {
		return 0
	}
	target := func(i int) byte {
		if i < 0 || i >= n {
			return 'N'
		}
		c, _ := compBase(site[i])
		return c
	}
	primerAt := func(i int) byte {
		if i < 0 || i >= n {
			return 'N'
		}
		bs := canonicalBases(primer5to3[i])
		if len(bs) == 1 {
			return bs[0]
		}
		return 'N'
	}
	total := 0.0
	for _, i := range mismatchPos {
		if i < 0 || i >= n {
			continue
		}
		best := math.Inf(1)
		for _, p := range canonicalBases(primer5to3[i]) {
			if dg, ok := LookupDeltaG(primerAt(i-1), p, primerAt(i+1), target(i-1), target(i), target(i+1)); ok && dg < best {
				best = dg
			}
		}
		if math.IsInf(best, 1) {
			best = 1.0
		}
		total += best * PosMultiplier(i, n)
	}
	return total
}

// RelativeEfficiency is the Boltzmann factor exp(−ΔΔG/RT) at the annealing
// temperature, capped to [0,1]: the binding probability of a mismatched
// duplex relative to the perfect one. Zero mismatches ⇒ 1.
func RelativeEfficiency(ddG, annealC float64) float64 {
	if ddG <= 0 {
		return 1
	}
	tK := annealC + KelvinOffset
	return math.Exp(-ddG * 1000.0 / (Rcal * tK))
}
