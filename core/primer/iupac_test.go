package primer

import "testing"

func TestIUPACMask_Snapshot(t *testing.T) {
	if MaskOf('A') != 1 || MaskOf('C') != 2 || MaskOf('G') != 4 || MaskOf('T') != 8 {
		t.Fatalf("canonical masks corrupted: A=%d C=%d G=%d T=%d", MaskOf('A'), MaskOf('C'), MaskOf('G'), MaskOf('T'))
	}
	if MaskOf('U') != MaskOf('T') || MaskOf('u') != MaskOf('t') {
		t.Fatalf("U/u must equal T/t")
	}
	if MaskOf('R') != (1|4) || MaskOf('Y') != (2|8) || MaskOf('N') != (1|2|4|8) {
		t.Fatalf("ambiguity masks corrupted: R=%d Y=%d N=%d", MaskOf('R'), MaskOf('Y'), MaskOf('N'))
	}
	if MaskOf('r') != MaskOf('R') || MaskOf('n') != MaskOf('N') {
		t.Fatalf("lowercase masks must mirror uppercase")
	}
	if MaskOf('X') != 0 || MaskOf('-') != 0 {
		t.Fatalf("non-IUPAC bytes must map to the empty set")
	}
}

func TestSymbolRoundTrip(t *testing.T) {
	for _, c := range []byte("ACGTRYSWKMBDHVN") {
		if got := Symbol(MaskOf(c)); got != c {
			t.Errorf("Symbol(MaskOf(%c)) = %c", c, got)
		}
	}
}

func TestBaseMatch(t *testing.T) {
	tests := []struct {
		g, p byte
		want bool
	}{
		{'A', 'A', true},
		{'A', 'R', true},
		{'C', 'R', false},
		{'T', 'N', true},
		{'N', 'N', false}, // template N is a hard mismatch
		{'R', 'A', false}, // degenerate template base never pairs
		{'G', 'S', true},
	}
	for _, tc := range tests {
		if got := BaseMatch(tc.g, tc.p); got != tc.want {
			t.Errorf("BaseMatch(%c,%c) = %v, want %v", tc.g, tc.p, got, tc.want)
		}
	}
}

func TestDegeneracyAndExpand(t *testing.T) {
	if d := Degeneracy("ACGT", 0); d != 1 {
		t.Fatalf("Degeneracy(ACGT) = %d", d)
	}
	if d := Degeneracy("ARYN", 0); d != 16 {
		t.Fatalf("Degeneracy(ARYN) = %d, want 16", d)
	}
	if d := Degeneracy("NNNNNN", 100); d != 100 {
		t.Fatalf("saturating degeneracy = %d, want 100", d)
	}
	got := Expand("AR", 0)
	if len(got) != 2 || got[0] != "AA" || got[1] != "AG" {
		t.Fatalf("Expand(AR) = %v", got)
	}
	if got := Expand("NNNN", 10); len(got) != 10 || got[0] != "AAAA" {
		t.Fatalf("capped expand = %v", got)
	}
	if Expand("AXG", 0) != nil {
		t.Fatalf("invalid symbol must not expand")
	}
}

func TestConsensus(t *testing.T) {
	sym, n := Consensus([]byte("AAG"))
	if sym != 'R' || n != 2 {
		t.Fatalf("Consensus(AAG) = %c,%d", sym, n)
	}
	sym, n = Consensus([]byte("ACGT"))
	if sym != 'N' || n != 4 {
		t.Fatalf("Consensus(ACGT) = %c,%d", sym, n)
	}
}
