package cli

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioYAML = `
basis:
  mode: distance
  distance: 30
tools:
  - kind: solid
    name: carbide
    body_life: 10
    body_price: 50000
    change_seconds: 30
  - kind: indexable
    name: KDM
    corner_life: 17
    corners: 2
    simultaneous: 2
    insert_price: 9000
    holder_price: 60000
    holder_ratio: 15
    change_seconds: 30
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeScenario(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioYAML), 0o600))
	return path
}

func TestEvaluate_TableWithComparison(t *testing.T) {
	out, err := run(t, "evaluate", "-f", writeScenario(t), "--reference", "1", "--alternative", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "Job: 30 m / 1,000 holes")
	assert.Contains(t, out, "KDM instead of carbide")
	assert.Contains(t, out, "annual cost saving:     21,600,000")
}

func TestEvaluate_CSV(t *testing.T) {
	out, err := run(t, "evaluate", "-f", writeScenario(t), "--format", "csv")
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewBufferString(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "KDM", rows[2][0])
	assert.Equal(t, "78000.00", rows[2][6])
}

func TestEvaluate_Errors(t *testing.T) {
	path := writeScenario(t)

	_, err := run(t, "evaluate", "-f", path, "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")

	_, err = run(t, "evaluate", "-f", path, "--reference", "3")
	assert.ErrorContains(t, err, "between 1 and 2")

	_, err = run(t, "evaluate", "-f", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read scenario file")

	_, err = run(t, "evaluate")
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	out, err := run(t, "convert", "--distance", "30")
	require.NoError(t, err)
	assert.Equal(t, "30 m = 1,000 holes (depth 0.03 m/hole)\n", out)

	out, err = run(t, "convert", "--holes", "1000", "--depth", "0.05")
	require.NoError(t, err)
	assert.Equal(t, "50 m = 1,000 holes (depth 0.05 m/hole)\n", out)

	_, err = run(t, "convert", "--holes", "10", "--distance", "1")
	assert.Error(t, err)

	_, err = run(t, "convert")
	assert.Error(t, err)
}

func TestPresetsAndMigrate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "presets.db")

	out, err := run(t, "migrate", "--db", dbPath)
	require.NoError(t, err)
	assert.Equal(t, "schema version 2\n", out)

	out, err = run(t, "presets", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "king-drill-mini")
	assert.Contains(t, out, "Top-solid indexable")
}
