package model

import (
	"math"
	"testing"
)

func TestIntervalResolve(t *testing.T) {
	cases := []struct {
		iv      Interval
		n       int
		want    Interval
		wantErr bool
	}{
		{Interval{}, 60, Interval{1, 60}, false},
		{Interval{1, 30}, 60, Interval{1, 30}, false},
		{Interval{0, 30}, 60, Interval{}, true},
		{Interval{10, 61}, 60, Interval{}, true},
		{Interval{20, 10}, 60, Interval{}, true},
		{Interval{}, 0, Interval{}, true},
	}
	for _, c := range cases {
		got, err := c.iv.Resolve(c.n)
		if (err != nil) != c.wantErr {
			t.Fatalf("%v.Resolve(%d) err=%v", c.iv, c.n, err)
		}
		if err == nil && got != c.want {
			t.Fatalf("%v.Resolve(%d) = %v want %v", c.iv, c.n, got, c.want)
		}
	}
}

func TestIntervalContainsOverlaps(t *testing.T) {
	iv := Interval{Start: 10, End: 20}
	if !iv.Contains(10, 20) || iv.Contains(9, 15) {
		t.Fatalf("Contains wrong")
	}
	if !iv.Overlaps(5, 10) || !iv.Overlaps(20, 25) || iv.Overlaps(21, 30) {
		t.Fatalf("Overlaps wrong")
	}
}

func TestRange(t *testing.T) {
	r := Bounded(50, 60)
	if r.Deviation(45) != 5 || r.Deviation(62) != 2 || r.Deviation(55) != 0 {
		t.Fatalf("Deviation wrong")
	}
	if !AtLeast(1).Contains(1e9) || AtMost(3).Contains(3.5) {
		t.Fatalf("one-sided ranges wrong")
	}
	if !r.Within(Bounded(40, 70)) || Bounded(40, 70).Within(r) {
		t.Fatalf("Within wrong")
	}
	if (Range{}).Within(AtLeast(0)) {
		t.Fatalf("unbounded is not within a bounded side")
	}
	c := r.Clone()
	*c.Min = 0
	if *r.Min != 50 {
		t.Fatalf("Clone shares pointers")
	}
}

func TestValuesUndefined(t *testing.T) {
	v := Values{GCRatio: 0.5, MeltingTemp: math.NaN()}
	if _, ok := v.Get(MeltingTemp); ok {
		t.Fatalf("NaN must be undefined")
	}
	if _, ok := v.Get(NoRuns); ok {
		t.Fatalf("missing must be undefined")
	}
	if x, ok := v.Get(GCRatio); !ok || x != 0.5 {
		t.Fatalf("Get = %v %v", x, ok)
	}
}

func TestPrimerTargetsAndClone(t *testing.T) {
	p := Primer{ID: "fw_1", TargetGroups: []string{"A"}, Values: Values{GCRatio: 0.4}}
	if !p.Targets("A") || p.Targets("B") {
		t.Fatalf("Targets wrong")
	}
	c := p.Clone()
	c.Values[GCRatio] = 0.9
	if p.Values[GCRatio] != 0.4 {
		t.Fatalf("Clone shares Values")
	}
	if !(&Primer{}).Targets("anything") {
		t.Fatalf("no target groups means all")
	}
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{"fw": Forward, "Reverse": Reverse, "both": Both} {
		got, err := ParseDirection(in)
		if err != nil || got != want {
			t.Fatalf("ParseDirection(%q) = %v %v", in, got, err)
		}
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Fatalf("expected error")
	}
	if len(Both.Directions()) != 2 || !Both.Includes(Reverse) || Forward.Includes(Reverse) {
		t.Fatalf("direction helpers wrong")
	}
}
