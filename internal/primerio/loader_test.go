// internal/primerio/loader_test.go
package primerio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"primerset/core/model"
)

func TestRead(t *testing.T) {
	in := "# id dir seq groups\n" +
		"p1 fw acgtacgt g1,g2\n" +
		"\n" +
		"p2 rev TTTTGGGG\n" +
		"pr ACGTAC GGTTAA\n"
	ps, err := Read(strings.NewReader(in), "mem")
	if err != nil {
		t.Fatal(err)
	}
	if len(ps) != 4 {
		t.Fatalf("want 4 primers, got %d: %+v", len(ps), ps)
	}
	if ps[0].Seq != "ACGTACGT" || ps[0].Direction != model.Forward || len(ps[0].TargetGroups) != 2 {
		t.Fatalf("p1 = %+v", ps[0])
	}
	if ps[1].Direction != model.Reverse {
		t.Fatalf("p2 = %+v", ps[1])
	}
	if ps[2].ID != "pr_fw" || ps[3].ID != "pr_rev" || ps[3].Seq != "GGTTAA" {
		t.Fatalf("pair = %+v %+v", ps[2], ps[3])
	}
}

func TestReadErrors(t *testing.T) {
	for _, in := range []string{
		"p1 fw\n",
		"p1 fw ACGT g extra\n",
		"p1 both ACGT\n",
		"p1 ACGT ACGT g\n",
	} {
		if _, err := Read(strings.NewReader(in), "mem"); err == nil || !strings.Contains(err.Error(), "mem:1") {
			t.Fatalf("%q: want located error, got %v", in, err)
		}
	}
}

func TestLoadTSVRoundTrip(t *testing.T) {
	want := []model.Primer{
		{ID: "a", Direction: model.Forward, Seq: "ACGT", TargetGroups: []string{"g"}},
		{ID: "b", Direction: model.Reverse, Seq: "TTGA"},
	}
	var buf bytes.Buffer
	if err := WriteTSV(&buf, want); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "primers.tsv")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadTSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].TargetGroups[0] != "g" || got[1].Seq != "TTGA" {
		t.Fatalf("round trip = %+v", got)
	}
}
