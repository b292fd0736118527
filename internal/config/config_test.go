package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `{
	"app": {"port": 8080},
	"repository": {"db_host": "localhost", "db_port": 5432},
	"cache": {"redis_host": "localhost", "redis_port": 6379},
	"tracking": {}
}`

func TestGetConfigDefaults(t *testing.T) {
	cfg, err := GetConfig(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "Our company", cfg.Tracking.TrackedSeller)
	assert.Equal(t, "products.csv", cfg.Tracking.CatalogPath)
	assert.Equal(t, "reports", cfg.Tracking.ReportDir)
}

func TestGetConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("TRACKED_SELLER", "ACME GmbH")
	t.Setenv("SELLERS", "Ebay,Amazon")

	cfg, err := GetConfig(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, 3, cfg.Cache.RedisDB)
	assert.Equal(t, "ACME GmbH", cfg.Tracking.TrackedSeller)
	assert.Equal(t, []string{"Ebay", "Amazon"}, cfg.Tracking.Sellers)
}

func TestGetConfigRejectsBadNumericEnv(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PORT", "REDIS_PORT", "REDIS_DB", "REQUEST_DELAY_MS"} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, "not-a-number")
			_, err := GetConfig(writeConfig(t, minimalConfig))
			assert.Error(t, err)
		})
	}
}

func TestGetConfigMissingFile(t *testing.T) {
	_, err := GetConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
