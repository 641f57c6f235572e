package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futofind/futofind/internal/client"
)

var keys = []string{
	"FUTOFIND_API_URL", "FUTOFIND_ADDR", "FUTOFIND_DB", "FUTOFIND_KEY_FILE",
	"FUTOFIND_LOG", "FUTOFIND_BANNER_TIMEOUT",
	"OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_INSECURE",
}

// clearEnv blanks every variable Load reads; godotenv only sets variables
// that are unset, so they are unset here and restored afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, client.DefaultBaseURL, cfg.APIURL)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr)
	assert.Equal(t, "futofind.sqlite3", cfg.DBPath)
	assert.Equal(t, "futofind.sqlite3.key", cfg.ResolvedKeyFile())
	assert.Equal(t, 5*time.Second, cfg.BannerTimeout)
	assert.False(t, cfg.OTLPInsecure)
}

func TestLoadEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("FUTOFIND_API_URL", "http://localhost:5000/api")
	t.Setenv("FUTOFIND_KEY_FILE", "/etc/futofind/key")
	t.Setenv("FUTOFIND_BANNER_TIMEOUT", "2s")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/api", cfg.APIURL)
	assert.Equal(t, "/etc/futofind/key", cfg.ResolvedKeyFile())
	assert.Equal(t, 2*time.Second, cfg.BannerTimeout)
	assert.True(t, cfg.OTLPInsecure)
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("FUTOFIND_BANNER_TIMEOUT", "soon")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.BannerTimeout)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("FUTOFIND_ADDR", "0.0.0.0:9000")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FUTOFIND_DB=/var/lib/futofind.db\nFUTOFIND_ADDR=ignored:1\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/futofind.db", cfg.DBPath)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr, "environment wins over .env")
}

func TestLoadMissingDotEnv(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}
