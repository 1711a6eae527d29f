package settings

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primerset/core/model"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateCollectsErrors(t *testing.T) {
	s := Default()
	s.Constraints[model.GCRatio] = model.Bounded(0.7, 0.3)
	s.Relaxation[model.MeltingTemp] = model.Bounded(55, 60) // nominal is 52..63
	s.Coverage.Model = "fuzzy"
	s.Options.Region = "inside"

	err := s.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSettings))

	var ce *ConfigError
	require.True(t, errors.As(err, &ce))
	for _, frag := range []string{"constraints.gc_ratio", "relaxation.melting_temp", "coverage.model", "options.region"} {
		assert.Contains(t, err.Error(), frag)
	}
}

func TestValidateBoundaryWithoutConstraint(t *testing.T) {
	s := Default()
	s.Relaxation[model.AnnealingDeltaG] = model.AtLeast(-20)
	assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)
}

func TestRelaxIsPure(t *testing.T) {
	nominal := Default()
	before := nominal.Constraints[model.MeltingTemp].String()
	next, moved := Relax(nominal, nominal)
	assert.NotEmpty(t, moved)
	assert.Equal(t, before, nominal.Constraints[model.MeltingTemp].String(), "input snapshot mutated")
	assert.Equal(t, "[50.75,64.25]", next.Constraints[model.MeltingTemp].String())
}

func TestRelaxReachesBoundaryAndStops(t *testing.T) {
	nominal := Default()
	cur := nominal
	for i := 0; i < 100; i++ {
		next, moved := Relax(nominal, cur)
		for _, p := range next.Active() {
			r := next.Constraints[p]
			assert.True(t, cur.Constraints[p].Within(r), "range narrowed for %s", p)
			if b, ok := nominal.Relaxation[p]; ok {
				assert.True(t, r.Within(b), "range %s past boundary %s for %s", r, b, p)
			}
		}
		cur = next
		if len(moved) == 0 {
			assert.LessOrEqual(t, i, nominal.RelaxSteps)
			break
		}
	}
	assert.Empty(t, Relaxable(cur))
	for p, frac := range RelaxFraction(nominal, cur) {
		assert.InDelta(t, 1.0, frac, 1e-9, "%s", p)
	}
}

func TestRelaxUnboundedBoundaryDropsBound(t *testing.T) {
	s := Default()
	s.Constraints = map[model.Property]model.Range{model.GCClamp: model.Bounded(1, 3)}
	s.Relaxation = map[model.Property]model.Range{model.GCClamp: model.AtLeast(0)}
	require.NoError(t, s.Validate())

	next, moved := Relax(s, s)
	assert.Equal(t, []model.Property{model.GCClamp}, moved)
	r := next.Constraints[model.GCClamp]
	assert.Nil(t, r.Max)
	require.NotNil(t, r.Min)
	assert.InDelta(t, 0.75, *r.Min, 1e-12)
}

func TestRelaxWithoutBoundaryIsFixed(t *testing.T) {
	s := Default()
	s.Relaxation = nil
	_, moved := Relax(s, s)
	assert.Empty(t, moved)
	assert.Zero(t, RelaxFraction(s, s)[model.GCRatio])
}
