package setcover

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreedyPairAlignsDirections(t *testing.T) {
	fw := matrix(4, []int{0, 1}, []int{2, 3})
	rev := matrix(4, []int{2, 3}, []int{0, 1})
	p := RunGreedyPair(fw, rev, 0.5)
	assert.Equal(t, []int{0}, p.Fw.Indices)
	assert.Equal(t, []int{1}, p.Rev.Indices)
	assert.Equal(t, 2, p.Covered)
	assert.Equal(t, 0.5, p.Ratio)
	assert.True(t, p.Met())

	full := RunGreedyPair(fw, rev, 1)
	assert.Len(t, full.Fw.Indices, 2)
	assert.Len(t, full.Rev.Indices, 2)
	assert.Equal(t, 4, full.Covered)
}

func TestGreedyPairSkipsOneSidedTemplates(t *testing.T) {
	// Template 3 has no reverse binder, so spending F2 on it buys nothing.
	fw := matrix(4, []int{0, 1, 2}, []int{3})
	rev := matrix(4, []int{0, 1}, []int{2})
	p := RunGreedyPair(fw, rev, 1)
	assert.Equal(t, []int{0}, p.Fw.Indices)
	assert.Equal(t, []int{0, 1}, p.Rev.Indices)
	assert.Equal(t, 3, p.Covered)
	assert.False(t, p.Met())
}

func TestExactPair(t *testing.T) {
	fw := matrix(4, []int{0, 1}, []int{2, 3})
	rev := matrix(4, []int{2, 3}, []int{0, 1})
	p := RunExactPair(context.Background(), fw, rev, 0.5, time.Minute)
	require.False(t, p.Fallback, p.Reason)
	assert.True(t, p.Optimal)
	assert.Len(t, p.Fw.Indices, 1)
	assert.Len(t, p.Rev.Indices, 1)
	assert.GreaterOrEqual(t, p.Covered, 2)

	none := RunExactPair(context.Background(), fw, matrix(4), 0.5, time.Minute)
	assert.Equal(t, 0, none.Covered)
	assert.False(t, none.Met())
}

func TestExactPairNoLargerThanGreedy(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for round := 0; round < 6; round++ {
		fw, rev := randomMatrix(r, 12, 8), randomMatrix(r, 12, 8)
		for _, req := range []float64{0.3, 0.6} {
			g := RunGreedyPair(fw, rev, req)
			e := RunExactPair(context.Background(), fw, rev, req, time.Minute)
			if !g.Met() {
				continue
			}
			require.False(t, e.Fallback, e.Reason)
			assert.True(t, e.Met())
			assert.LessOrEqual(t, len(e.Fw.Indices)+len(e.Rev.Indices), len(g.Fw.Indices)+len(g.Rev.Indices))
		}
	}
}

func TestExactPairInfeasibleFallsBack(t *testing.T) {
	fw := matrix(3, []int{0}, []int{1})
	rev := matrix(3, []int{1}, []int{2})
	e := RunExactPair(context.Background(), fw, rev, 1, time.Minute)
	assert.True(t, e.Fallback)
	assert.Contains(t, e.Reason, ErrInfeasible.Error())
	g := RunGreedyPair(fw, rev, 1)
	assert.Equal(t, g.Fw.Indices, e.Fw.Indices)
	assert.Equal(t, g.Rev.Indices, e.Rev.Indices)
	assert.Equal(t, 1, e.Covered)
}
