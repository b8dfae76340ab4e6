package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chTempDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "place-audit.db", cfg.Store.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://pcmap-api.place.naver.com/place/graphql", cfg.Naver.GraphQLURL)
	assert.Equal(t, "https://m.search.naver.com", cfg.Naver.SearchBaseURL)
	assert.Equal(t, "https://m.place.naver.com", cfg.Naver.PlaceBaseURL)
	assert.Equal(t, 1000, cfg.Naver.SearchDelayMs)
	assert.Equal(t, 2000, cfg.Naver.FetchDelayMs)
	assert.Equal(t, 30, cfg.Naver.TimeoutSecs)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.Model)
	assert.InDelta(t, 1.0, cfg.Competitor.RadiusKm, 0.001)
	assert.Equal(t, 1, cfg.Competitor.Workers)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chTempDir(t)

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/placeaudit
log:
  level: debug
  format: console
server:
  port: 9090
competitor:
  radius_km: 2.5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/placeaudit", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.InDelta(t, 2.5, cfg.Competitor.RadiusKm, 0.001)
	// Defaults still apply for unset values
	assert.Equal(t, 1000, cfg.Naver.SearchDelayMs)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chTempDir(t)

	yaml := `
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))
	t.Setenv("PLACEAUDIT_LOG_LEVEL", "warn")
	t.Setenv("PLACEAUDIT_ANTHROPIC_KEY", "sk-test")
	t.Setenv("PLACEAUDIT_STORE_DATABASE_URL", "postgres://env/placeaudit")
	t.Setenv("PLACEAUDIT_NAVER_USER_AGENT", "test-agent")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "sk-test", cfg.Anthropic.Key)
	assert.Equal(t, "postgres://env/placeaudit", cfg.Store.DatabaseURL)
	assert.Equal(t, "test-agent", cfg.Naver.UserAgent)
}

func TestNaverConfigMinInterval(t *testing.T) {
	cfg := NaverConfig{SearchDelayMs: 1000, FetchDelayMs: 2000}
	assert.Equal(t, 2*time.Second, cfg.MinInterval())

	cfg = NaverConfig{SearchDelayMs: 3000, FetchDelayMs: 2000}
	assert.Equal(t, 3*time.Second, cfg.MinInterval())
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NotNil(t, zap.L())

	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	assert.Error(t, InitLogger(LogConfig{Level: "not-a-level", Format: "json"}))
}
