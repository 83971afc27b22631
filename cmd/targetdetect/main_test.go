package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/errors"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/log"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/store"
)

func writeCSV(t *testing.T, dir string, n int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("customer_id,tenure,visits,plan,churn\n")
	plans := []string{"basic", "plus", "premium"}
	for i := 0; i < n; i++ {
		tenure := i % 10
		visits := (i * 7) % 13
		churn := 0
		if tenure >= 7 {
			churn = 1
		}
		fmt.Fprintf(&b, "c%05d,%d,%d,%s,%d\n", i, tenure, visits, plans[i%3], churn)
	}
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	prev := log.GetLogger()
	t.Cleanup(func() {
		log.SetLogger(prev)
		errors.SetZerologWarnFunc(nil)
	})

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestDetectAndShow(t *testing.T) {
	dir := t.TempDir()
	input := writeCSV(t, dir, 300)
	out := filepath.Join(dir, "jobs")
	chart := filepath.Join(dir, "chart.svg")

	stdout, _, err := run(t, "detect", "--input", input, "--job-id", "job-cli",
		"--out", out, "--chart", chart, "--log-level", "error")
	require.NoError(t, err)

	var decision map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &decision))
	assert.Equal(t, "job-cli", decision["job_id"])
	assert.Contains(t, []any{"auto", "requires_confirmation"}, decision["decision_mode"])

	cands := decision["candidates"].([]any)
	require.NotEmpty(t, cands)
	for _, c := range cands {
		assert.NotEqual(t, "customer_id", c.(map[string]any)["column"])
	}

	for _, rel := range []string{store.DecisionFile, store.SummaryFile, store.ManifestFile} {
		_, err := os.Stat(filepath.Join(out, "job-cli", filepath.FromSlash(rel)))
		assert.NoError(t, err, rel)
	}
	_, err = os.Stat(chart)
	assert.NoError(t, err)

	shown, _, err := run(t, "show", "job-cli", "--out", out, "--log-level", "error")
	require.NoError(t, err)
	assert.JSONEq(t, stdout, shown)

	withSummary, _, err := run(t, "show", "job-cli", "--out", out, "--summary", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, withSummary, `"eda_summary"`)
	assert.Contains(t, withSummary, `"dataset_hash"`)
}

func TestDetectGeneratesJobID(t *testing.T) {
	dir := t.TempDir()
	input := writeCSV(t, dir, 40)

	stdout, _, err := run(t, "detect", "--input", input, "--no-store", "--log-level", "error")
	require.NoError(t, err)

	var decision map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &decision))
	jobID, _ := decision["job_id"].(string)
	assert.Len(t, jobID, 36)
}

func TestDetectWithSQLiteConfig(t *testing.T) {
	dir := t.TempDir()
	input := writeCSV(t, dir, 60)
	dsn := filepath.Join(dir, "detect.db")
	cfgPath := filepath.Join(dir, "detect.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(
		"logging:\n  level: error\nstore:\n  driver: sqlite\n  dsn: %q\n", dsn)), 0o600))

	_, _, err := run(t, "--config", cfgPath, "detect", "--input", input, "--job-id", "job-sql")
	require.NoError(t, err)

	shown, _, err := run(t, "--config", cfgPath, "show", "job-sql")
	require.NoError(t, err)
	assert.Contains(t, shown, `"job-sql"`)
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := run(t, "detect", "--log-level", "error")
	assert.Error(t, err, "missing --input")

	_, _, err = run(t, "detect", "--input", filepath.Join(dir, "missing.csv"), "--log-level", "error")
	assert.Error(t, err)

	_, _, err = run(t, "detect", "--input", writeCSV(t, dir, 10), "--log-level", "loud")
	assert.Error(t, err)

	_, _, err = run(t, "show", "nope", "--out", dir, "--log-level", "error")
	assert.True(t, errors.Is(err, store.ErrNotFound))

	_, _, err = run(t, "--config", filepath.Join(dir, "absent.yaml"), "version")
	assert.Error(t, err)
}

func TestEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("TARGETDETECT_STORE_DRIVER=none\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("TARGETDETECT_STORE_DRIVER") })

	_, _, err := run(t, "--env-file", envPath, "show", "x", "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no store configured")
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "version", "--env-file", "")
	require.NoError(t, err)
	assert.Equal(t, "targetdetect dev\n", stdout)
}
