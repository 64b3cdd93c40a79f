package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var settingKeys = []string{
	"APP_ENV", "PORT", "DB_PATH", "SESSION_SECRET", "SESSION_TTL", "LOG_FORMAT", "LOG_LEVEL",
	"PUBLIC_HOST", "WORKING_DAYS", "DEPTH_PER_HOLE", "MINUTES_PER_PART", "PART_VALUE",
}

// unsetAll clears every setting for the test and restores it afterwards.
func unsetAll(t *testing.T) {
	t.Helper()
	for _, key := range settingKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetAll(t)
	t.Chdir(t.TempDir())

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./toolcost.db", cfg.DBPath)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.InDelta(t, 300, cfg.WorkingDays, 1e-9)
	assert.InDelta(t, 0.03, cfg.DepthPerHole, 1e-9)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_ReadsDotEnvWithoutOverwriting(t *testing.T) {
	unsetAll(t)
	dir := t.TempDir()
	t.Chdir(dir)

	content := []byte(`
# comment

PORT=9090
export WORKING_DAYS=250
DB_PATH="/tmp/presets.db"
APP_ENV='prod'
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), content, 0o600))
	t.Setenv("DB_PATH", "/already/set.db")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.InDelta(t, 250, cfg.WorkingDays, 1e-9)
	assert.Equal(t, "/already/set.db", cfg.DBPath)
	assert.False(t, cfg.IsDev())
}

func TestLoad_MalformedNumbersFallBack(t *testing.T) {
	unsetAll(t)
	t.Chdir(t.TempDir())
	t.Setenv("WORKING_DAYS", "many")
	t.Setenv("DEPTH_PER_HOLE", "-1")
	t.Setenv("SESSION_TTL", "soon")

	cfg := Load()

	assert.InDelta(t, 300, cfg.WorkingDays, 1e-9)
	assert.InDelta(t, 0.03, cfg.DepthPerHole, 1e-9)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
}

func TestLoad_CollectsWarningsForLaterLogging(t *testing.T) {
	unsetAll(t)
	t.Chdir(t.TempDir())
	t.Setenv("WORKING_DAYS", "many")
	t.Setenv("DEPTH_PER_HOLE", "-1")

	var early bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&early, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	cfg := Load()

	assert.Empty(t, early.String())
	require.Len(t, cfg.Warnings, 2)
	assert.Equal(t, "WORKING_DAYS", cfg.Warnings[0].Key)
	assert.Equal(t, "DEPTH_PER_HOLE", cfg.Warnings[1].Key)

	var out bytes.Buffer
	cfg.LogWarnings(slog.New(slog.NewJSONHandler(&out, nil)))
	assert.Contains(t, out.String(), `"key":"WORKING_DAYS"`)
	assert.Contains(t, out.String(), `"value":"many"`)
	assert.Contains(t, out.String(), `"level":"WARN"`)
}

func TestConfig_AnnualParamsAndBasis(t *testing.T) {
	cfg := Config{WorkingDays: 250, MinutesPerPart: 2, PartValue: 1500, DepthPerHole: 0.05}

	params := cfg.AnnualParams()
	assert.InDelta(t, 250, params.WorkingDays, 1e-9)
	assert.InDelta(t, 2, params.MinutesPerPart, 1e-9)
	assert.InDelta(t, 1500, params.PartValue, 1e-9)

	basis := cfg.DefaultBasis()
	assert.InDelta(t, 0.05, basis.DepthPerHole, 1e-9)
	assert.InDelta(t, 30, basis.Distance, 1e-9)
}
