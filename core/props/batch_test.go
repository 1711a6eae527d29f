package props

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"primerset/core/model"
	"primerset/core/settings"
	"primerset/core/thermo"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func batchFixture(n int) ([]model.Primer, []model.Template) {
	templates := []model.Template{
		{ID: "t1", Group: "A", Seq: tmpl},
		{ID: "t2", Group: "B", Seq: "GGGGGGGGGGACGTACGGATCCGGGGGGGGGG"},
		{ID: "t3", Group: "B", Seq: "CCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCC"},
	}
	primers := make([]model.Primer, n)
	for i := range primers {
		primers[i] = model.Primer{ID: fmt.Sprintf("fw_%d", i+1), Direction: model.Forward, Seq: "ACGTACGGATCC"}
	}
	return primers, templates
}

func TestEvaluateAll(t *testing.T) {
	primers, templates := batchFixture(16)
	err := EvaluateAll(context.Background(), primers, templates, Batch{
		Spec:    settings.Default(),
		Workers: 4,
		Logger:  zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	for _, p := range primers {
		_, ok := p.Values.Get(model.MeltingTemp)
		assert.True(t, ok)
		require.Len(t, p.Records, 2)
		assert.Equal(t, 0, p.Records[0].TemplateIndex)
		assert.Equal(t, 1, p.Records[1].TemplateIndex)
		assert.False(t, p.Records[0].Covered, "coverage verdicts are set by the coverage model")
	}
}

type flaky struct{}

func (flaky) Names() []model.Property { return []model.Property{model.MeltingTemp} }
func (flaky) Evaluate(seq string, _ thermo.Conditions) (model.Values, error) {
	if seq == "BAD" {
		return nil, fmt.Errorf("cannot compute")
	}
	return model.Values{model.MeltingTemp: 60}, nil
}

func TestEvaluateAllDegradesSinglePrimer(t *testing.T) {
	primers, templates := batchFixture(3)
	primers[1].Seq = "BAD"
	err := EvaluateAll(context.Background(), primers, templates, Batch{
		Evaluator: flaky{},
		Spec:      settings.Default(),
		Workers:   2,
	})
	require.NoError(t, err)
	_, ok := primers[1].Values.Get(model.MeltingTemp)
	assert.False(t, ok)
	assert.NotNil(t, primers[1].Values)
	_, ok = primers[2].Values.Get(model.MeltingTemp)
	assert.True(t, ok)
}

func TestEvaluateAllCancelled(t *testing.T) {
	primers, templates := batchFixture(64)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := EvaluateAll(ctx, primers, templates, Batch{Spec: settings.Default(), Workers: 2})
	assert.ErrorIs(t, err, context.Canceled)
}
