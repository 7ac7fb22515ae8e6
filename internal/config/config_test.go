package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintShop/internal/machine"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, machine.DefaultRanges(), cfg.Ranges.ToMachine())
	assert.True(t, cfg.DPConfig().Reconstruct)
}

func TestLoad_YAMLOverridesOnlyGivenKeys(t *testing.T) {
	path := writeFile(t, "cfg.yaml", `
verify:
  jobs: 5
  rule: finish
ranges:
  d:
    min: 0
    max: 3
dp:
  max_states: 1024
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Verify.Jobs)
	assert.Equal(t, "finish", cfg.Verify.Rule)
	assert.Equal(t, 300, cfg.Verify.Tests)
	assert.Equal(t, RangeConfig{Min: 0, Max: 3}, cfg.Ranges.D)
	assert.Equal(t, RangeConfig{Min: 1, Max: 5}, cfg.Ranges.A)
	assert.Equal(t, 1024, cfg.DP.MaxStates)
	assert.Equal(t, Default().DP.MaxJobs, cfg.DP.MaxJobs)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "cfg.json", `{"verify":{"tests":7,"seed":42},"logging":{"level":"debug"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Verify.Tests)
	assert.Equal(t, int64(42), cfg.Verify.Seed)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("MS_VERIFY__TESTS", "12")
	t.Setenv("MS_BRUTE__MAX_JOBS", "8")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Verify.Tests)
	assert.Equal(t, 8, cfg.Brute.MaxJobs)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(writeFile(t, "cfg.toml", "x = 1"))
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = Load(writeFile(t, "bad.yaml", "verify:\n  rule: sideways\n"))
	assert.ErrorContains(t, err, "verify.rule")

	_, err = Load(writeFile(t, "bad.yaml", "ranges:\n  a:\n    min: 0\n    max: 2\n"))
	assert.ErrorContains(t, err, "ranges")

	_, err = Load(writeFile(t, "bad.yaml", "dp:\n  max_jobs: 31\n"))
	assert.ErrorContains(t, err, "dp")
}
