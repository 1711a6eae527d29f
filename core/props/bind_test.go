package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primerset/core/model"
	"primerset/core/primer"
	"primerset/core/settings"
)

const tmpl = "TTTTTACGTACGGATCCATGTTTTTTTTTTGGCATCGATCAGGTTTTT"

func TestSiteBinderForward(t *testing.T) {
	tp := model.Template{ID: "t1", Seq: tmpl, Fwd: model.Interval{Start: 1, End: 25}}
	p := model.Primer{ID: "fw_1", Direction: model.Forward, Seq: "ACGTACGGATCC"}

	b, ok := SiteBinder{}.Bind(p, tp, BindOptions{Region: settings.Strict})
	require.True(t, ok)
	assert.Equal(t, 6, b.Start)
	assert.Equal(t, 17, b.End)
	assert.Equal(t, "+", b.Strand)
	assert.Equal(t, 0, b.Mismatches)
	assert.True(t, b.InRegion)
	assert.Equal(t, p.Seq, b.Site)
}

func TestSiteBinderReverse(t *testing.T) {
	// Reverse primer = reverse complement of GGCATCGATCAG (+ strand 31..42).
	rev := primer.RevCompString("GGCATCGATCAG")
	tp := model.Template{ID: "t1", Seq: tmpl, Rev: model.Interval{Start: 26, End: len(tmpl)}}
	p := model.Primer{ID: "rev_1", Direction: model.Reverse, Seq: rev}

	b, ok := SiteBinder{}.Bind(p, tp, BindOptions{Region: settings.Strict})
	require.True(t, ok)
	assert.Equal(t, 31, b.Start)
	assert.Equal(t, 42, b.End)
	assert.Equal(t, "-", b.Strand)
	assert.True(t, b.InRegion)
	assert.Equal(t, rev, b.Site)
}

func TestSiteBinderDegenerateAndMismatch(t *testing.T) {
	tp := model.Template{ID: "t1", Seq: tmpl}
	// R covers the template A at position 0 of the site.
	deg := model.Primer{Direction: model.Forward, Seq: "RCGTACGGATCC"}
	b, ok := SiteBinder{}.Bind(deg, tp, BindOptions{})
	require.True(t, ok)
	assert.Equal(t, 0, b.Mismatches)

	mm := model.Primer{Direction: model.Forward, Seq: "ACGTACGCATCC"}
	_, ok = SiteBinder{}.Bind(mm, tp, BindOptions{})
	assert.False(t, ok, "one mismatch with MaxMismatches=0")
	b, ok = SiteBinder{}.Bind(mm, tp, BindOptions{MaxMismatches: 1})
	require.True(t, ok)
	assert.Equal(t, []int{7}, b.MismatchPos)

	// A mismatch inside the 3' terminal window rejects the site.
	_, ok = SiteBinder{}.Bind(mm, tp, BindOptions{MaxMismatches: 1, TerminalWindow: 5})
	assert.False(t, ok)
}

func TestSiteBinderRegion(t *testing.T) {
	tp := model.Template{ID: "t1", Seq: tmpl, Fwd: model.Interval{Start: 1, End: 10}}
	p := model.Primer{Direction: model.Forward, Seq: "ACGTACGGATCC"} // 6..17
	b, ok := SiteBinder{}.Bind(p, tp, BindOptions{Region: settings.Strict})
	require.True(t, ok)
	assert.False(t, b.InRegion)
	b, _ = SiteBinder{}.Bind(p, tp, BindOptions{Region: settings.Any})
	assert.True(t, b.InRegion)
}

func TestSiteBinderTemplateN(t *testing.T) {
	tp := model.Template{ID: "t1", Seq: "NNNNNNNNNNNN"}
	_, ok := SiteBinder{}.Bind(model.Primer{Direction: model.Forward, Seq: "NNNNNNNNNNNN"}, tp, BindOptions{MaxMismatches: 3})
	assert.False(t, ok)
}
