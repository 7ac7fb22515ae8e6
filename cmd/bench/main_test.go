package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDemo_PrintsOptimalTrace(t *testing.T) {
	out, err := execute(t, "demo", "--config", "")
	require.NoError(t, err)

	assert.Contains(t, out, "Best job order: [3 1 2 4]")
	assert.Contains(t, out, "Job 3: Start=0, End=3, P=3")
	assert.Contains(t, out, "C_max = 9")
	assert.Contains(t, out, "Optimal C_max using Bitmask DP = 9")
}

func TestVerify_WritesCSVAndMetrics(t *testing.T) {
	dir := t.TempDir()
	promPath := filepath.Join(dir, "maintshop.prom")
	cfgPath := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logging:\n  level: error\nmetrics:\n  textfile: "+promPath+"\n"), 0o600))
	csvPath := filepath.Join(dir, "verify.csv")

	out, err := execute(t, "verify", "--config", cfgPath, "--jobs", "4", "--tests", "5", "--seed", "3", "--out", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "All 5 tests passed successfully.")

	_, err = os.Stat(csvPath)
	assert.NoError(t, err)
	body, err := os.ReadFile(promPath)
	require.NoError(t, err)
	assert.Contains(t, string(body), "maintshop_instances_total")
}

func TestVerify_RejectsBadRule(t *testing.T) {
	_, err := execute(t, "verify", "--config", "", "--rule", "sideways", "--tests", "1")
	assert.ErrorContains(t, err, "verify.rule")
}

func TestCompare(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "compare.csv")
	out, err := execute(t, "compare", "--config", "", "--jobs", "2,3", "--tests", "3", "--out", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved: "+csvPath)

	_, err = execute(t, "compare", "--config", "", "--jobs", "x", "--out", csvPath)
	assert.Error(t, err)
}

func TestParseSizes(t *testing.T) {
	sizes, err := parseSizes(" 2, 4 ,,6")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6}, sizes)

	_, err = parseSizes("")
	assert.Error(t, err)
	_, err = parseSizes("-1")
	assert.Error(t, err)
}
