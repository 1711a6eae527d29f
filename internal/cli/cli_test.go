package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primerset/internal/appcore"
)

const shared = "GATCCAGTCAGTGCATGCAA"

const templatesFA = ">t1 group=g fwd=1-30\n" +
	"TTAGC" + shared + "CTAGTACCGTTAGCAATCGGCTTAACGATCCGTAA\n" +
	">t2 group=g fwd=1-30\n" +
	"CGGTA" + shared + "AGCTTGGCATTCCAGGTATGCCAATTGACCTGAAC\n"

const lengthOnly = "constraints:\n  primer_length: {min: 20, max: 20}\n"

type fixture struct {
	dir       string
	templates string
	config    string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{dir: dir, templates: filepath.Join(dir, "t.fa"), config: filepath.Join(dir, "c.yaml")}
	require.NoError(t, os.WriteFile(f.templates, []byte(templatesFA), 0o644))
	require.NoError(t, os.WriteFile(f.config, []byte(lengthOnly), 0o644))
	return f
}

func (f fixture) write(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func run(args ...string) (int, string, string) {
	var out, errb bytes.Buffer
	code := Run(context.Background(), args, &out, &errb)
	return code, out.String(), errb.String()
}

func TestHelpAndVersion(t *testing.T) {
	code, out, _ := run()
	assert.Equal(t, appcore.ExitOK, code)
	assert.Contains(t, out, "design")

	code, out, _ = run("version")
	assert.Equal(t, appcore.ExitOK, code)
	assert.Equal(t, "primerset version dev\n", out)
}

func TestUsageErrors(t *testing.T) {
	f := newFixture(t)
	for name, args := range map[string][]string{
		"unknown flag":    {"design", "--bogus", f.templates},
		"unknown command": {"frobnicate"},
		"missing args":    {"design"},
		"bad format":      {"design", "-q", "-o", "xml", "--config", f.config, f.templates},
		"bad config":      {"design", "-q", "--config", f.write(t, "bad.yaml", "coverage: {model: fuzzy}\n"), f.templates},
		"bad constraint":  {"design", "-q", "--constraint", "sweetness=1:2", f.templates},
		"missing file":    {"design", "-q", filepath.Join(f.dir, "nope.fa")},
		"missing primers": {"check", "-q", f.templates},
	} {
		t.Run(name, func(t *testing.T) {
			code, _, errb := run(args...)
			assert.Equal(t, appcore.ExitUsage, code, errb)
			assert.Contains(t, errb, "error:")
		})
	}
}

func TestDesignJSON(t *testing.T) {
	f := newFixture(t)
	code, out, errb := run("design", "-q", "-o", "json", "--config", f.config,
		"--direction", "fw", "--min-len", "20", "--max-len", "20", "--coverage", "identity", f.templates)
	require.Equal(t, appcore.ExitOK, code, errb)

	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, true, res["target_met"])
	sel := res["selected"].([]any)
	require.Len(t, sel, 1)
	assert.Equal(t, shared, sel[0].(map[string]any)["seq"])
}

func TestDesignUnmetExitCode(t *testing.T) {
	f := newFixture(t)
	at := f.write(t, "at.fa", ">t3\nAAAATTTTAAAATTTTAAAATTTTAAAATTTTAAAATTTTAAAA\n")
	args := []string{"design", "-q", "-o", "tsv", "--config", f.config,
		"--direction", "fw", "--min-len", "20", "--max-len", "20", "--max-mismatches", "0",
		"--constraint", "gc_ratio=0.3:0.7", f.templates, at}

	code, out, _ := run(args...)
	assert.Equal(t, appcore.ExitUnmet, code)
	assert.True(t, strings.HasPrefix(out, "id\tdirection\tseq"), out)

	code, _, _ = run(append(args, "--unmet-exit-code", "0")...)
	assert.Equal(t, appcore.ExitOK, code)

	code, _, _ = run(append(args, "--unmet-exit-code", "4")...)
	assert.Equal(t, 4, code)
}

func TestCheckAndSubsets(t *testing.T) {
	f := newFixture(t)
	primers := f.write(t, "p.tsv", "shared fw "+shared+"\nonly_t1 fw TTAGC"+shared[:15]+"\nlong fw "+shared+"CTAGT\n")

	code, out, errb := run("check", "-q", "-o", "json", "--config", f.config, "-p", primers, f.templates)
	assert.Equal(t, appcore.ExitUnmet, code, errb)
	var chk map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &chk))
	assert.Equal(t, []any{"shared", "only_t1"}, chk["passing"])

	code, out, errb = run("subsets", "-q", "-o", "tsv", "--no-header", "--config", f.config,
		"--coverage", "identity", "--optimizer", "exact", "-p", primers, f.templates)
	require.Equal(t, appcore.ExitOK, code, errb)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "1\t2\t1.0000\t"), lines[0])
}

func TestRunHistory(t *testing.T) {
	f := newFixture(t)
	db := filepath.Join(f.dir, "runs.db")
	prom := filepath.Join(f.dir, "m.prom")
	code, out, errb := run("design", "-q", "-o", "json", "--db", db, "--metrics-file", prom, "--config", f.config,
		"--direction", "fw", "--min-len", "20", "--max-len", "20", f.templates)
	require.Equal(t, appcore.ExitOK, code, errb)
	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	id := res["run_id"].(string)

	code, out, _ = run("runs", "list", "-q", "--db", db)
	require.Equal(t, appcore.ExitOK, code)
	assert.Contains(t, out, id)

	code, out, _ = run("runs", "show", "-q", "--db", db, id)
	require.Equal(t, appcore.ExitOK, code)
	assert.Contains(t, out, shared+"\ttrue")

	b, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(b), "primerset_runs_total")

	code, _, _ = run("runs", "list", "-q")
	assert.Equal(t, appcore.ExitUsage, code)
}
