package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CI", "false")
	t.Setenv("APP_ENV", "test")

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func seededDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "diary.db")
	out, err := execute(t, "--sqlite", path, "seed", "--accounts", "2", "--days", "21", "--start", "2024-03-01", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded account 1:")
	assert.Contains(t, out, "Seeded account 2:")
	return path
}

func TestMigrateSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diary.db")
	out, err := execute(t, "--sqlite", path, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "is up to date")

	_, err = execute(t, "--sqlite", path, "migrate", "--rollback")
	assert.Error(t, err)
}

func TestSeedRejectsBadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diary.db")
	_, err := execute(t, "--sqlite", path, "seed", "--days", "0")
	assert.Error(t, err)

	_, err = execute(t, "--sqlite", path, "seed", "--start", "01.03.2024")
	assert.Error(t, err)
}

func TestReportJSON(t *testing.T) {
	path := seededDB(t)

	out, err := execute(t, "--sqlite", path, "report", "1", "--timespan", "all", "--size", "3")
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	search := report["search"].(map[string]any)
	assert.Equal(t, "ready", search["status"])
	assert.Equal(t, "Informationen über Konto 1", search["message"])
	assert.NotEmpty(t, search["session_id"])

	document := report["document"].(map[string]any)
	assert.Equal(t, float64(1), document["account_id"])
	assert.Contains(t, document, "statistics")
	assert.Contains(t, document, "diary")

	combinations := report["combinations"].(map[string]any)
	assert.Equal(t, float64(3), combinations["size"])
	assert.Contains(t, report, "top_foods")
}

func TestReportYAML(t *testing.T) {
	path := seededDB(t)

	out, err := execute(t, "--sqlite", path, "report", "2", "--format", "yaml")
	require.NoError(t, err)
	assert.NotContains(t, out, "{\"")

	var report map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	search := report["search"].(map[string]any)
	assert.Equal(t, "ready", search["status"])
	assert.Equal(t, 2, search["account_id"])
}

func TestReportUnknownAccount(t *testing.T) {
	path := seededDB(t)

	out, err := execute(t, "--sqlite", path, "report", "99")
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "not_found", report["search"].(map[string]any)["status"])
	assert.NotContains(t, report, "document")
}

func TestReportErrors(t *testing.T) {
	path := seededDB(t)

	_, err := execute(t, "--sqlite", path, "report", "1", "--format", "xml")
	assert.Error(t, err)

	_, err = execute(t, "--sqlite", path, "report", "1", "--timespan", "forever")
	assert.Error(t, err)

	_, err = execute(t, "--sqlite", path, "report", "abc")
	assert.Error(t, err)

	_, err = execute(t, "--sqlite", path, "report", "1", "--size", "9")
	assert.Error(t, err)

	_, err = execute(t, "--sqlite", path, "report")
	assert.Error(t, err)
}
