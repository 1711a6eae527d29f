// core/primer/iupac.go
package primer

import "math/bits"

/* ------------------------- tagged IUPAC alphabet ------------------------- */

// Mask is a set of canonical bases: bit0=A bit1=C bit2=G bit3=T.
// Every IUPAC symbol denotes exactly one non-empty Mask.
type Mask uint8

const (
	MaskA Mask = 1
	MaskC Mask = 2
	MaskG Mask = 4
	MaskT Mask = 8
	MaskN Mask = MaskA | MaskC | MaskG | MaskT
)

var (
	iupacMask [256]Mask
	maskSym   [16]byte
)

func init() {
	set := func(c byte, m Mask) {
		iupacMask[c] = m
		iupacMask[c+('a'-'A')] = m
		maskSym[m] = c
	}
	set('A', MaskA)
	set('C', MaskC)
	set('G', MaskG)
	set('T', MaskT)
	set('R', MaskA|MaskG) // purine
	set('Y', MaskC|MaskT) // pyrimidine
	set('S', MaskC|MaskG)
	set('W', MaskA|MaskT)
	set('K', MaskG|MaskT)
	set('M', MaskA|MaskC)
	set('B', MaskC|MaskG|MaskT)
	set('D', MaskA|MaskG|MaskT)
	set('H', MaskA|MaskC|MaskT)
	set('V', MaskA|MaskC|MaskG)
	set('N', MaskN)
	// U reads as T but T stays the canonical symbol.
	iupacMask['U'], iupacMask['u'] = MaskT, MaskT
}

// MaskOf returns the base set for an IUPAC symbol (0 for anything else).
func MaskOf(b byte) Mask { return iupacMask[b] }

// Symbol returns the upper-case IUPAC symbol for m (0 for the empty set).
func Symbol(m Mask) byte { return maskSym[m&MaskN] }

// Count is the number of canonical bases in m.
func (m Mask) Count() int { return bits.OnesCount8(uint8(m & MaskN)) }

// Has reports whether the canonical base b is in m.
func (m Mask) Has(b byte) bool {
	g := iupacMask[b]
	return g.Count() == 1 && m&g != 0
}

// Bases lists the canonical bases of m in A,C,G,T order.
func (m Mask) Bases() []byte {
	out := make([]byte, 0, 4)
	for _, b := range []byte("ACGT") {
		if m&iupacMask[b] != 0 {
			out = append(out, b)
		}
	}
	return out
}

/* --------------------------- BaseMatch (FAST) --------------------------- */

// BaseMatch reports whether primer symbol p can pair with template base g.
// A degenerate primer symbol matches any of its bases at zero cost.
//
// A template base of 'N' (or any non-ACGT byte) is a HARD mismatch so that
// N-blocks never count as binding sites.
func BaseMatch(g, p byte) bool {
	gm := iupacMask[g]
	if gm.Count() != 1 {
		return false
	}
	return iupacMask[p]&gm != 0
}

/* ----------------------------- degeneracy ------------------------------- */

// IsDegenerate reports whether seq has any non-canonical symbol.
func IsDegenerate(seq string) bool {
	for i := 0; i < len(seq); i++ {
		if iupacMask[seq[i]].Count() != 1 {
			return true
		}
	}
	return false
}

// Degeneracy is the number of distinct canonical sequences seq expands to,
// saturating at limit when limit > 0.
func Degeneracy(seq string, limit int) int {
	n := 1
	for i := 0; i < len(seq); i++ {
		c := iupacMask[seq[i]].Count()
		if c == 0 {
			return 0
		}
		n *= c
		if limit > 0 && n >= limit {
			return limit
		}
	}
	return n
}

// Expand enumerates the canonical sequences of seq in lexicographic
// (A<C<G<T) order, stopping after limit sequences when limit > 0.
func Expand(seq string, limit int) []string {
	if seq == "" {
		return nil
	}
	out := []string{""}
	for i := 0; i < len(seq); i++ {
		bs := iupacMask[seq[i]].Bases()
		if len(bs) == 0 {
			return nil
		}
		next := make([]string, 0, len(out)*len(bs))
	grow:
		for _, prefix := range out {
			for _, b := range bs {
				next = append(next, prefix+string(b))
				if limit > 0 && len(next) >= limit && i < len(seq)-1 {
					break grow
				}
			}
		}
		out = next
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Consensus folds a column of symbols into one IUPAC symbol. It also returns
// the number of distinct canonical bases observed.
func Consensus(column []byte) (byte, int) {
	var m Mask
	for _, c := range column {
		m |= iupacMask[c]
	}
	return Symbol(m), m.Count()
}
