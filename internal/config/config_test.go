package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"EXAMPREP_DB", "EXAMPREP_BANK", "EXAMPREP_LOG_FILE", "EXAMPREP_LOG_LEVEL", "EXAMPREP_LOG_MODE", "EXAMPREP_SEED"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultBankPath}, cfg.BankPaths)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.DBPath)
	assert.Empty(t, cfg.LogFile)
	assert.False(t, cfg.HasSeed)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("EXAMPREP_DB", "/tmp/x.db")
	t.Setenv("EXAMPREP_BANK", "gk.csv, math.json")
	t.Setenv("EXAMPREP_LOG_LEVEL", "debug")
	t.Setenv("EXAMPREP_SEED", "42")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, []string{"gk.csv", "math.json"}, cfg.BankPaths)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.HasSeed)
	assert.Equal(t, uint64(42), cfg.Seed)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("EXAMPREP_LOG_FILE=from-dotenv.log\n"), 0o600))

	// godotenv sets variables the process does not already have; unset the
	// cleared key so the file value is visible.
	require.NoError(t, os.Unsetenv("EXAMPREP_LOG_FILE"))
	t.Cleanup(func() { os.Unsetenv("EXAMPREP_LOG_FILE") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.log", cfg.LogFile)
}

func TestLoad_BadSeed(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("EXAMPREP_SEED", "-3")

	_, err := Load()
	assert.Error(t, err)
}

func TestSplitPaths(t *testing.T) {
	sep := string(filepath.ListSeparator)
	assert.Equal(t, []string{"a.csv", "b.yaml", "c.json"}, SplitPaths("a.csv,b.yaml"+sep+" c.json ,"))
	assert.Empty(t, SplitPaths(""))
}
