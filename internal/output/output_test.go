// internal/output/output_test.go
package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"primerset/core/coverage"
	"primerset/core/design"
	"primerset/core/model"
	"primerset/core/setcover"
)

func annotated() model.Primer {
	return model.Primer{
		ID: "fw_1", Direction: model.Forward, Seq: "ACGTACGTACGTACGTACGT",
		Origins: []string{"t1"},
		Values:  model.Values{model.PrimerLength: 20, model.GCRatio: 0.5},
		Verdicts: map[model.Property]model.Verdict{
			model.GCRatio: {Pass: false, Deviation: 0.1},
		},
		Records: []model.CoverageRecord{{
			TemplateIndex: 0,
			Binding:       model.Binding{Start: 3, End: 22, Strand: "+", Mismatches: 1, MismatchPos: []int{4}},
			Covered:       true,
			Probability:   1,
		}},
		Score: -0.5,
	}
}

func TestPrimerRowTSV(t *testing.T) {
	row := FormatPrimerRowTSV(annotated(), true)
	cols := strings.Split(row, "\t")
	if want := len(strings.Split(PrimerTSVHeader, "\t")); len(cols) != want {
		t.Fatalf("columns = %d, header has %d", len(cols), want)
	}
	if cols[3] != "true" || cols[5] != "20.000" || cols[6] != "0.500" {
		t.Fatalf("unexpected row: %q", row)
	}
	if cols[len(cols)-1] != "gc_ratio" {
		t.Fatalf("failed column = %q", cols[len(cols)-1])
	}
	if cols[10] != "NA" {
		t.Fatalf("undefined melting_temp should render NA, got %q", cols[10])
	}
}

func TestWriteFASTA(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFASTA(&buf, []model.Primer{annotated(), {ID: "empty"}}); err != nil {
		t.Fatal(err)
	}
	want := ">fw_1 dir=fw origins=t1\nACGTACGTACGTACGTACGT\n"
	if buf.String() != want {
		t.Fatalf("got %q want %q", buf.String(), want)
	}
}

func TestToAPIPrimerResolvesTemplates(t *testing.T) {
	v := ToAPIPrimer(annotated(), []model.Template{{ID: "t1"}}, true)
	if len(v.Records) != 1 || v.Records[0].TemplateID != "t1" {
		t.Fatalf("records = %+v", v.Records)
	}
	if v.Verdicts["gc_ratio"].Pass {
		t.Fatal("verdict lost")
	}
	if got := ToAPIPrimer(annotated(), nil, false); got.Records != nil {
		t.Fatal("records should be omitted")
	}
}

func TestResultJSONSnakeCase(t *testing.T) {
	lo, hi := 0.4, 0.6
	r := design.Result{
		RunID:     "run",
		Direction: model.Forward,
		Required:  1,
		Selected:  []model.Primer{annotated()},
		Active:    map[model.Property]model.Range{model.GCRatio: {Min: &lo, Max: &hi}},
		Coverage:  coverage.Stats{Covered: 1, Total: 1, Ratio: 1},
		Evaluated: []model.Template{{ID: "t1"}},
		TargetMet: true,
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, ToAPIResult(r, false)); err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"run_id", "target_met", "active_constraints", "selected", "coverage"} {
		if _, ok := m[k]; !ok {
			t.Fatalf("missing key %q in %s", k, buf.String())
		}
	}
	if _, ok := m["unselected"]; ok {
		t.Fatal("unselected should be omitted when empty")
	}
}

func TestToAPISubsetsSortsIDs(t *testing.T) {
	ps := []model.Primer{{ID: "b"}, {ID: "a"}}
	out := ToAPISubsets([]setcover.Subset{{Size: 2, Indices: []int{0, 1}, Covered: 2, Ratio: 1}}, ps)
	if got := strings.Join(out[0].Primers, ","); got != "a,b" {
		t.Fatalf("primers = %s", got)
	}
}

func TestToAPICheckPassingIDs(t *testing.T) {
	c := design.Check{Primers: []model.Primer{{ID: "x"}, {ID: "y"}}, Passing: []int{1}}
	if got := ToAPICheck(c).Passing; len(got) != 1 || got[0] != "y" {
		t.Fatalf("passing = %v", got)
	}
}
