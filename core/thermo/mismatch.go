// core/thermo/mismatch.go
package thermo

// Context-aware mismatch chemistry.
//
// LookupDeltaG returns a ΔΔG (kcal/mol) for a single mismatch given its
// immediate neighbours. Ordering follows the literature: G·T wobble is the
// mildest, transitions (A·G/C·T) are moderate, transversions harsher, and
// C·C is the harshest like-with-like pair. 3' vs 5' position severity is the
// caller's job (PosMultiplier).

// MismatchKey is a triplet context; target bases are read 3'→5'.
type MismatchKey struct {
	P5, P, P3 byte
	T5, T, T3 byte
}

// DeltaGTriplet holds curated triplet overrides (empty by default).
var DeltaGTriplet = map[MismatchKey]float64{}

// Pair-only ΔΔG (kcal/mol) baseline penalties (primer base, target base).
var pairDeltaG = map[[2]byte]float64{
	{'G', 'T'}: 0.60, {'T', 'G'}: 0.60,
	{'A', 'G'}: 0.85, {'G', 'A'}: 0.85,
	{'C', 'T'}: 0.85, {'T', 'C'}: 0.85,
	{'A', 'C'}: 1.10, {'C', 'A'}: 1.10,
	{'A', 'A'}: 1.40, {'C', 'C'}: 1.40, {'G', 'G'}: 1.40, {'T', 'T'}: 1.40,
	{'A', 'T'}: 1.20, {'T', 'A'}: 1.20,
	{'C', 'G'}: 1.20, {'G', 'C'}: 1.20,
}

// LookupDeltaG returns ΔΔG (kcal/mol) using precedence:
// 1) triplet context if available, else 2) pair-only with context tweaks.
// A slightly negative value is allowed (rare stabilizing contexts).
func LookupDeltaG(p5, p, p3, t5, t, t3 byte) (float64, bool) {
	if !isACGT(p) || !isNT(t) {
		return 0, false
	}
	if isACGT(p5) && isACGT(p3) && isNT(t5) && isNT(t3) {
		if dg, ok := DeltaGTriplet[MismatchKey{P5: p5, P: p, P3: p3, T5: t5, T: t, T3: t3}]; ok {
			return dg, true
		}
	}

	key := [2]byte{p, t}
	base, ok := pairDeltaG[key]
	if !ok {
		base = 1.0
	}

	gc := countGC(p5) + countGC(p3) + countGC(t5) + countGC(t3)
	at := countAT(p5) + countAT(p3) + countAT(t5) + countAT(t3)
	purP := isPurine(p5) + isPurine(p3)
	purT := isPurine(t5) + isPurine(t3)

	switch key {
	case [2]byte{'G', 'T'}, [2]byte{'T', 'G'}:
		// wobble in AT-rich flanks can be slightly stabilizing
		if at >= 3 {
			base -= 0.45
		} else if at == 2 {
			base -= 0.20
		}
	case [2]byte{'G', 'A'}, [2]byte{'A', 'G'}:
		if purP > 0 && purT > 0 {
			base -= 0.20
		}
	case [2]byte{'G', 'G'}:
		base -= 0.45
	case [2]byte{'A', 'A'}, [2]byte{'T', 'T'}:
		base -= 0.25
	case [2]byte{'C', 'C'}:
		base += 0.25
	}
	if gc >= at+2 {
		base -= 0.05
	}
	if base < -0.10 {
		base = -0.10
	}
	return base, true
}

// PosMultiplier weights a mismatch at primer index i (5'→3') of n: the
// last three 3' bases count double, the first three 1.5×.
func PosMultiplier(i, n int) float64 {
	if n <= 0 {
		return 1.0
	}
	if i >= n-3 {
		return 2.0
	}
	if i <= 2 {
		return 1.5
	}
	return 1.0
}

func isACGT(b byte) bool { return b == 'A' || b == 'C' || b == 'G' || b == 'T' }
func isNT(b byte) bool   { return isACGT(b) || b == 'N' }

func countGC(b byte) int {
	if b == 'G' || b == 'C' {
		return 1
	}
	return 0
}

func countAT(b byte) int {
	if b == 'A' || b == 'T' {
		return 1
	}
	return 0
}

func isPurine(b byte) int {
	if b == 'A' || b == 'G' {
		return 1
	}
	return 0
}
