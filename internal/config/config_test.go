package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/outing/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("OUTING_DB", "/tmp/outing-test.db")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/outing-test.db", cfg.DBPath)
	assert.Equal(t, DefaultPlacesBaseURL, cfg.PlacesBaseURL)
	assert.Equal(t, 3, cfg.SearchCalls)
	assert.Equal(t, 6, cfg.DetailsCalls)
	assert.Equal(t, 2, cfg.RouteCalls)
	assert.Equal(t, 7*24*time.Hour, cfg.VenueCacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.CenterCacheTTL)
	assert.Equal(t, 1500.0, cfg.ClusterRadiusM)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, llm.ProviderOllama, cfg.LLM.Provider)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("OUTING_DB", "/tmp/x.db")
	t.Setenv("GOOGLE_MAPS_API_KEY", "fallback-key")
	t.Setenv("OUTING_PLACES_API_KEY", "primary-key")
	t.Setenv("OUTING_PLACES_BASE_URL", "http://localhost:9999/maps/api/")
	t.Setenv("OUTING_PLACES_TIMEOUT", "3s")
	t.Setenv("OUTING_VENUE_CACHE_TTL", "48h")
	t.Setenv("OUTING_DETAILS_CALLS", "0")
	t.Setenv("OUTING_LOG_FORMAT", "JSON")
	t.Setenv("OUTING_LOG_LEVEL", "debug")
	t.Setenv("OUTING_TABLES", "/etc/outing/tables.yaml")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "primary-key", cfg.PlacesAPIKey)
	assert.Equal(t, "http://localhost:9999/maps/api", cfg.PlacesBaseURL)
	assert.Equal(t, 3*time.Second, cfg.PlacesTimeout)
	assert.Equal(t, 48*time.Hour, cfg.VenueCacheTTL)
	assert.Equal(t, 0, cfg.DetailsCalls)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "/etc/outing/tables.yaml", cfg.TablesPath)
}

func TestFromEnv_MapsKeyFallback(t *testing.T) {
	t.Setenv("OUTING_DB", "/tmp/x.db")
	t.Setenv("OUTING_PLACES_API_KEY", "")
	t.Setenv("GOOGLE_MAPS_API_KEY", "fallback-key")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "fallback-key", cfg.PlacesAPIKey)
}

func TestFromEnv_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"OUTING_PLACES_RPS":       "-1",
		"OUTING_PLACES_TIMEOUT":   "soon",
		"OUTING_SEARCH_CALLS":     "-2",
		"OUTING_ROUTE_CALLS":      "3",
		"OUTING_DETAILS_CALLS":    "7",
		"OUTING_CLUSTER_RADIUS_M": "zero",
		"OUTING_LOG_FORMAT":       "xml",
		"OUTING_LOG_LEVEL":        "loud",
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("OUTING_DB", "/tmp/x.db")
			t.Setenv(name, value)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "outing.env")
	require.NoError(t, os.WriteFile(path, []byte("OUTING_TEST_FROM_FILE=hello\nOUTING_TEST_PRESET=file\n"), 0o600))

	t.Setenv("OUTING_TEST_PRESET", "shell")
	// Registers cleanup for the variable the file introduces.
	t.Setenv("OUTING_TEST_FROM_FILE", "")
	require.NoError(t, os.Unsetenv("OUTING_TEST_FROM_FILE"))

	require.NoError(t, LoadEnvFiles(path, filepath.Join(dir, "missing.env")))

	assert.Equal(t, "hello", os.Getenv("OUTING_TEST_FROM_FILE"))
	assert.Equal(t, "shell", os.Getenv("OUTING_TEST_PRESET"))
}

func TestNewLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.LogFormat = "json"
	cfg.LogLevel = slog.LevelInfo

	cfg.NewLogger(&buf).Info("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	cfg.LogFormat = "text"
	cfg.NewLogger(&buf).Debug("hidden")
	assert.Empty(t, buf.String())
}
