package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primerset/core/candidates"
	"primerset/core/model"
	"primerset/core/setcover"
	"primerset/core/settings"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	def := settings.Default()
	assert.Equal(t, def.Active(), cfg.Spec.Active())
	assert.Equal(t, def.Coverage, cfg.Spec.Coverage)
	assert.InDelta(t, def.PCR.NaM, cfg.Spec.PCR.NaM, 1e-12)
	assert.InDelta(t, def.PCR.PrimerM, cfg.Spec.PCR.PrimerM, 1e-15)
	assert.Equal(t, model.Both, cfg.Request.Direction)
	assert.Equal(t, setcover.Greedy, cfg.Request.Optimizer)
	assert.Equal(t, 30*time.Second, cfg.Request.Timeout)
	assert.Empty(t, cfg.Source)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "primerset.yaml", `
constraints:
  gc_ratio: {min: 0.45, max: 0.55}
  melting_temp: {min: 55, max: 60}
coverage:
  model: probabilistic
  threshold: 0.5
options:
  region: strict
pcr:
  anneal_temp: 58
  na: 40mM
  mg: 2mM
design:
  direction: fw
  optimizer: ilp
  initializer: tree
  required: 0.9
  timeout: 5s
`)
	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Source)
	assert.Equal(t, []model.Property{model.GCRatio, model.MeltingTemp}, cfg.Spec.Active())
	assert.Equal(t, "[0.45,0.55]", cfg.Spec.Constraints[model.GCRatio].String())
	// default boundaries survive only for constrained properties
	assert.Len(t, cfg.Spec.Relaxation, 2)
	assert.Equal(t, settings.Probabilistic, cfg.Spec.Coverage.Model)
	assert.Equal(t, settings.Strict, cfg.Spec.Options.Region)
	assert.Equal(t, 58.0, cfg.Spec.PCR.AnnealC)
	assert.InDelta(t, 0.04, cfg.Spec.PCR.NaM, 1e-12)
	assert.InDelta(t, 0.002, cfg.Spec.PCR.MgM, 1e-12)
	assert.Equal(t, model.Forward, cfg.Request.Direction)
	assert.Equal(t, setcover.Exact, cfg.Request.Optimizer)
	assert.Equal(t, candidates.Tree, cfg.Request.Initializer)
	assert.Equal(t, 0.9, cfg.Request.Required)
	assert.Equal(t, 5*time.Second, cfg.Request.Timeout)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PRIMERSET_DESIGN_REQUIRED", "0.75")
	t.Setenv("PRIMERSET_OPTIONS_MAX_MISMATCHES", "2")
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, 0.75, cfg.Request.Required)
	assert.Equal(t, 2, cfg.Spec.Options.MaxMismatches)
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]string{
		"unknown model":    "coverage: {model: fuzzy}\n",
		"bad unit":         "pcr: {na: 50furlongs}\n",
		"bad direction":    "design: {direction: sideways}\n",
		"bad optimizer":    "design: {optimizer: annealing}\n",
		"narrow boundary":  "constraints: {gc_ratio: {min: 0.4, max: 0.6}}\nrelaxation: {gc_ratio: {min: 0.5, max: 0.7}}\n",
		"unknown property": "constraints: {sweetness: {min: 1}}\n",
		"negative workers": "design: {workers: -1}\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(New(), writeFile(t, "c.yaml", body))
			require.Error(t, err)
			assert.ErrorIs(t, err, settings.ErrInvalidSettings)
		})
	}
}

func TestMissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, settings.ErrInvalidSettings)
}
