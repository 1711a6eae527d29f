// core/thermo/nn.go
// Nearest-neighbor thermodynamics for DNA duplexes (SantaLucia unified set).
// Units: ΔH in kcal/mol, ΔS in cal/(K·mol). Tm in °C.
//
// Steps:
//  1. Sum initiation + per-stack ΔH/ΔS (Table 1) + terminal AT penalties + symmetry.
//  2. Salt correction to ΔS for monovalent ions: ΔS([Na+]) = ΔS(1M) + 0.368*(N/2)*ln[Na+].
//  3. Two-state Tm (K): Tm = ΔH*1000 / (ΔS_Na + R ln(CT/x)) − 273.15 (°C).
//
// This package has no app/output deps.
package thermo

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	// Gas constant in cal/(K·mol)
	Rcal = 1.9872
	// KelvinOffset converts °C to K.
	KelvinOffset = 273.15
)

// NNParams holds nearest-neighbor propagation parameters.
type NNParams struct {
	DH float64 // kcal/mol
	DS float64 // cal/(K·mol)
}

// Watson–Crick propagation parameters (1 M Na+), top 5'→3' / bottom 3'→5'.
// SantaLucia & Hicks (2004), Table 1, plus the swapped-strand synonyms.
var dimerParams = map[string]NNParams{
	"AA/TT": {-7.6, -21.3},
	"AT/TA": {-7.2, -20.4},
	"TA/AT": {-7.2, -21.3},
	"CA/GT": {-8.5, -22.7},
	"GT/CA": {-8.4, -22.4},
	"CT/GA": {-7.8, -21.0},
	"GA/CT": {-8.2, -22.2},
	"CG/GC": {-10.6, -27.2},
	"GC/CG": {-9.8, -24.4},
	"GG/CC": {-8.0, -19.9},

	"TT/AA": {-7.6, -21.3},
	"CC/GG": {-8.0, -19.9},
	"AC/TG": {-8.5, -22.7},
	"TG/AC": {-8.4, -22.4},
	"AG/TC": {-8.2, -22.2},
	"TC/AG": {-7.8, -21.0},
}

// Initiation / terminal / symmetry (1 M Na+).
var (
	initDH, initDS       = +0.2, -5.7
	termAT_DH, termAT_DS = +2.2, +6.9
	symmDH, symmDS       = 0.0, -1.4
)

// TmInput describes solution and concentration.
type TmInput struct {
	CT float64 // total strand conc (mol/L)
	Na float64 // monovalent cations (mol/L), e.g. 0.05 for 50 mM
	X  int     // duplex type: 4 (non-self, default) or 1 (self-compl)
}

// Result reports ΔH/ΔS (1M and salt-corrected) and Tm.
type Result struct {
	DH_kcal float64 // total ΔH (kcal/mol)
	DS_cal  float64 // total ΔS at 1 M (cal/K·mol)
	DS_Na   float64 // ΔS corrected by [Na+] (cal/K·mol)
	TmC     float64 // melting temperature (°C)
}

// DeltaG returns ΔG (kcal/mol) at tempC using the salt-corrected entropy.
func (r Result) DeltaG(tempC float64) float64 {
	return r.DH_kcal - (tempC+KelvinOffset)*r.DS_Na/1000.0
}

// Tm computes Tm for primer (5'→3') vs target (3'→5') aligned WC.
// Seqs must be equal length; only A/C/G/T bases supported.
func Tm(primer5to3, target3to5 string, in TmInput) (Result, error) {
	var out Result

	p := strings.ToUpper(strings.TrimSpace(primer5to3))
	t := strings.ToUpper(strings.TrimSpace(target3to5))
	if len(p) == 0 || len(t) == 0 || len(p) != len(t) {
		return out, errors.New("Tm: sequences must be equal length and non-empty")
	}
	if in.CT <= 0 {
		return out, errors.New("Tm: CT must be > 0")
	}
	if in.Na <= 0 {
		return out, errors.New("Tm: [Na+] must be > 0")
	}
	x := in.X
	if x != 1 && x != 4 {
		x = 4
	}
	if _, ok := compStrict(t); !ok {
		return out, errors.New("Tm: non-ACGT base in target")
	}
	for i := 0; i < len(p); i++ {
		if !wc(p[i], t[i]) {
			return out, fmt.Errorf("Tm: non-WC pair at pos %d (%c/%c)", i, p[i], t[i])
		}
	}

	dh, ds, err := duplexSums(p, true)
	if err != nil {
		return out, err
	}
	if isSelfCompl(p) {
		dh += symmDH
		ds += symmDS
	}
	dsNa := saltCorrectDS(ds, len(p), in.Na)

	tmK := (dh * 1000.0) / (dsNa + Rcal*math.Log(in.CT/float64(x)))
	out.DH_kcal = dh
	out.DS_cal = ds
	out.DS_Na = dsNa
	out.TmC = tmK - KelvinOffset
	return out, nil
}

// PrimerTm is the Tm of a canonical primer against its perfect complement
// under cond.
func PrimerTm(primer5to3 string, cond Conditions) (Result, error) {
	p := strings.ToUpper(primer5to3)
	if len(p) < 2 {
		return Result{}, errors.New("PrimerTm: primer shorter than 2 nt")
	}
	t, ok := compStrict(p)
	if !ok {
		return Result{}, errors.New("PrimerTm: non-ACGT base in primer")
	}
	x := 4
	if isSelfCompl(p) {
		x = 1
	}
	return Tm(p, t, TmInput{CT: cond.PrimerM, Na: cond.EffectiveMonovalent(), X: x})
}

// StackDeltaG returns ΔG (kcal/mol) at tempC of a perfectly paired stretch
// whose top strand is top5to3. Bimolecular duplexes pay the initiation term;
// hairpin stems do not. Non-ACGT input yields ok=false.
func StackDeltaG(top5to3 string, naM, tempC float64, bimolecular bool) (float64, bool) {
	if len(top5to3) < 2 {
		return 0, false
	}
	dh, ds, err := duplexSums(top5to3, bimolecular)
	if err != nil {
		return 0, false
	}
	ds = saltCorrectDS(ds, len(top5to3), naM)
	return dh - (tempC+KelvinOffset)*ds/1000.0, true
}

// ---------- helpers ----------

// duplexSums adds up stacks (+ initiation and terminal AT when withInit).
func duplexSums(top string, withInit bool) (dh, ds float64, err error) {
	bot, ok := compStrict(top)
	if !ok {
		return 0, 0, errors.New("thermo: non-ACGT base")
	}
	n := len(top)
	for i := 0; i < n-1; i++ {
		prm, ok := dimerParams[top[i:i+2]+"/"+bot[i:i+2]]
		if !ok {
			return 0, 0, fmt.Errorf("thermo: missing NN params for %q", top[i:i+2])
		}
		dh += prm.DH
		ds += prm.DS
	}
	if withInit {
		dh += initDH
		ds += initDS
		if isATPair(top[0], bot[0]) {
			dh += termAT_DH
			ds += termAT_DS
		}
		if isATPair(top[n-1], bot[n-1]) {
			dh += termAT_DH
			ds += termAT_DS
		}
	}
	return dh, ds, nil
}

// N = 2n−2 phosphates ⇒ 0.368*(N/2)*ln[Na+].
func saltCorrectDS(ds float64, n int, naM float64) float64 {
	if naM <= 0 {
		naM = 1e-6
	}
	return ds + 0.368*float64(n-1)*math.Log(naM)
}

func wc(a, b byte) bool {
	switch a {
	case 'A':
		return b == 'T'
	case 'C':
		return b == 'G'
	case 'G':
		return b == 'C'
	case 'T':
		return b == 'A'
	default:
		return false
	}
}

func isATPair(a, b byte) bool { return (a == 'A' && b == 'T') || (a == 'T' && b == 'A') }

func compBase(b byte) (byte, bool) {
	switch b {
	case 'A', 'a':
		return 'T', true
	case 'C', 'c':
		return 'G', true
	case 'G', 'g':
		return 'C', true
	case 'T', 't':
		return 'A', true
	}
	return 'N', false
}

func compStrict(s string) (string, bool) {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c, ok := compBase(s[i])
		if !ok {
			return "", false
		}
		out[i] = c
	}
	return string(out), true
}

func revCompStrict(s string) (string, bool) {
	c, ok := compStrict(s)
	if !ok {
		return "", false
	}
	b := []byte(c)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b), true
}

func isSelfCompl(s string) bool {
	rc, ok := revCompStrict(s)
	return ok && strings.EqualFold(s, rc)
}
