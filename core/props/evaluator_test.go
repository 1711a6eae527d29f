package props

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primerset/core/model"
	"primerset/core/thermo"
)

func TestComposition(t *testing.T) {
	v, err := Composition{}.Evaluate("AAAAGCGCTTAGC", thermo.DefaultConditions())
	require.NoError(t, err)
	assert.Equal(t, 13.0, v[model.PrimerLength])
	assert.InDelta(t, 6.0/13.0, v[model.GCRatio], 1e-12)
	assert.Equal(t, 2.0, v[model.GCClamp]) // TTAGC
	assert.Equal(t, 4.0, v[model.NoRuns])
	assert.Equal(t, 2.0, v[model.NoRepeats]) // GCGC
}

func TestCompositionDegenerateUsesExpectation(t *testing.T) {
	// S is always G or C, W never.
	s, err := Composition{}.Evaluate("ASA", thermo.DefaultConditions())
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, s[model.GCRatio], 1e-12)

	r, err := Composition{}.Evaluate("ANA", thermo.DefaultConditions())
	require.NoError(t, err)
	assert.InDelta(t, 0.5/3.0, r[model.GCRatio], 1e-12)
	// AAA is one of the expansions.
	assert.Equal(t, 3.0, r[model.NoRuns])
}

func TestMeltingAndAnnealing(t *testing.T) {
	cond := thermo.DefaultConditions()
	seq := "AGCGTACGATCGATCGTAGC"
	m, err := Melting{}.Evaluate(seq, cond)
	require.NoError(t, err)
	a, err := Annealing{}.Evaluate(seq, cond)
	require.NoError(t, err)
	assert.Greater(t, m[model.MeltingTemp], cond.AnnealC)
	assert.Less(t, a[model.AnnealingDeltaG], 0.0)

	gcRich, err := Melting{}.Evaluate("GCGCGGCCGCGGCGCCGCGG", cond)
	require.NoError(t, err)
	assert.Greater(t, gcRich[model.MeltingTemp], m[model.MeltingTemp])
}

func TestStructure(t *testing.T) {
	cond := thermo.DefaultConditions()
	v, err := Structure{}.Evaluate("ACGTACGTACGTACGT", cond)
	require.NoError(t, err)
	assert.Less(t, v[model.SelfDimerization], 0.0)
	plain, err := Structure{}.Evaluate("AAAAAAAAAAAAAAAA", cond)
	require.NoError(t, err)
	assert.Equal(t, 0.0, plain[model.SelfDimerization])
	assert.Equal(t, 0.0, plain[model.SecondaryStructure])
}

type failing struct{ name model.Property }

func (f failing) Names() []model.Property { return []model.Property{f.name} }
func (f failing) Evaluate(string, thermo.Conditions) (model.Values, error) {
	return nil, errors.New("external routine unavailable")
}

func TestChainKeepsPartialValues(t *testing.T) {
	c := Chain{Composition{}, failing{model.MeltingTemp}}
	v, err := c.Evaluate("ACGTACGTACGT", thermo.DefaultConditions())
	require.Error(t, err)
	_, ok := v.Get(model.MeltingTemp)
	assert.False(t, ok)
	_, ok = v.Get(model.GCRatio)
	assert.True(t, ok)
	assert.Len(t, c.Names(), 6)
}

type counting struct {
	Evaluator
	calls int
}

func (c *counting) Evaluate(seq string, cond thermo.Conditions) (model.Values, error) {
	c.calls++
	return c.Evaluator.Evaluate(seq, cond)
}

func TestCache(t *testing.T) {
	inner := &counting{Evaluator: Composition{}}
	c, err := NewCache(inner, 8)
	require.NoError(t, err)
	cond := thermo.DefaultConditions()

	v1, err := c.Evaluate("ACGTTGCA", cond)
	require.NoError(t, err)
	v1[model.GCRatio] = 99 // callers may scribble on their copy
	v2, err := c.Evaluate("ACGTTGCA", cond)
	require.NoError(t, err)
	assert.Equal(t, 0.5, v2[model.GCRatio])
	assert.Equal(t, 1, inner.calls)

	cond.AnnealC = 60
	_, _ = c.Evaluate("ACGTTGCA", cond)
	assert.Equal(t, 2, inner.calls)
	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(2), misses)
}
