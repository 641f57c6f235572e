// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/futofind/futofind/internal/client"
	"github.com/futofind/futofind/internal/view"
)

// Config is the client configuration. Command-line flags override it.
type Config struct {
	APIURL        string
	Addr          string
	DBPath        string
	KeyFile       string
	LogPath       string
	BannerTimeout time.Duration
	OTLPEndpoint  string
	OTLPInsecure  bool
}

// Load reads envFile if it exists, then the environment. Variables already
// set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	cfg := Config{
		APIURL:        getEnv("FUTOFIND_API_URL", client.DefaultBaseURL),
		Addr:          getEnv("FUTOFIND_ADDR", "127.0.0.1:8080"),
		DBPath:        getEnv("FUTOFIND_DB", "futofind.sqlite3"),
		KeyFile:       os.Getenv("FUTOFIND_KEY_FILE"),
		LogPath:       os.Getenv("FUTOFIND_LOG"),
		BannerTimeout: readDuration("FUTOFIND_BANNER_TIMEOUT", view.DefaultBannerTimeout),
		OTLPEndpoint:  os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTLPInsecure:  readBool("OTEL_EXPORTER_OTLP_INSECURE", false),
	}
	return cfg, nil
}

// ResolvedKeyFile returns KeyFile, defaulting to a file next to the database.
func (c Config) ResolvedKeyFile() string {
	if c.KeyFile != "" {
		return c.KeyFile
	}
	return c.DBPath + ".key"
}

// String describes the configuration for the startup log.
func (c Config) String() string {
	return fmt.Sprintf("api=%s addr=%s db=%s key=%s banner=%s otlp=%q",
		c.APIURL, c.Addr, c.DBPath, c.ResolvedKeyFile(), c.BannerTimeout, c.OTLPEndpoint)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func readDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		slog.Warn("ignoring invalid duration", "key", key, "value", raw)
		return fallback
	}
	return d
}

func readBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}
