package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/conduit/pkg/httpx"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "conduit", cfg.Issuer)
	require.Equal(t, 1440*time.Hour, cfg.TokenTTL)
	require.Equal(t, DriverSQLite, cfg.Database.Driver)
	require.Equal(t, "conduit.db", cfg.Database.File)
	require.Equal(t, 4, cfg.KDFConcurrency)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")
	t.Setenv("CONDUIT_ISSUER", "realworld")
	t.Setenv("CONDUIT_TOKEN_TTL", "2h")
	t.Setenv("CONDUIT_DATABASE_DRIVER", "postgres")
	t.Setenv("CONDUIT_DATABASE_URL", "postgres://conduit@localhost/conduit")
	t.Setenv("CONDUIT_KDF_CONCURRENCY", "2")
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "realworld", cfg.Issuer)
	require.Equal(t, 2*time.Hour, cfg.TokenTTL)
	require.Equal(t, DriverPostgres, cfg.Database.Driver)
	require.Equal(t, "postgres://conduit@localhost/conduit", cfg.Database.URL)
	require.Equal(t, 2, cfg.KDFConcurrency)
	require.Equal(t, 9090, cfg.Port)
}

func TestLoadConfig_RateLimits(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")
	t.Setenv("RATELIMIT_CREDENTIALS_REQUESTS", "1000")
	t.Setenv("RATELIMIT_CREDENTIALS_BURST", "1000")
	t.Setenv("RATELIMIT_PUBLIC_WINDOW", "10s")
	t.Setenv("RATELIMIT_TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.1")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	limits := cfg.RateLimits.Profiles()
	def := httpx.DefaultLimits()

	require.Equal(t, 1000, limits.Credentials.Requests)
	require.Equal(t, 1000, limits.Credentials.Burst)
	require.Equal(t, def.Credentials.Window, limits.Credentials.Window)
	require.Equal(t, 10*time.Second, limits.Public.Window)
	require.Equal(t, def.Public.Requests, limits.Public.Requests)
	require.Equal(t, def.Write, limits.Write)
	require.Equal(t, def.Read, limits.Read)

	require.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, cfg.RateLimits.TrustedProxies)
	proxies, err := httpx.ParseTrustedProxies(cfg.RateLimits.TrustedProxies)
	require.NoError(t, err)
	require.Len(t, proxies, 2)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conduit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
issuer: from-file
token_ttl: 30m
database:
  driver: sqlite
  file: /data/conduit.db
port: 7070
`), 0o600))

	t.Setenv(ConfigFileEnv, path)
	t.Setenv("PORT", "7171")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "from-file", cfg.Issuer)
	require.Equal(t, 30*time.Minute, cfg.TokenTTL)
	require.Equal(t, "/data/conduit.db", cfg.Database.File)
	require.Equal(t, 7171, cfg.Port, "environment wins over the file")
	require.Equal(t, 4, cfg.KDFConcurrency, "defaults still apply")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		TokenTTL:       time.Hour,
		KDFConcurrency: 1,
		Port:           8080,
		Database:       Database{Driver: DriverSQLite, File: "x.db"},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "mongo" }, `unknown CONDUIT_DATABASE_DRIVER "mongo"`},
		{"postgres without url", func(c *Config) { c.Database.Driver = DriverPostgres }, "CONDUIT_DATABASE_URL is required"},
		{"sqlite without file", func(c *Config) { c.Database.File = "" }, "CONDUIT_DATABASE_FILE is required"},
		{"zero ttl", func(c *Config) { c.TokenTTL = 0 }, "CONDUIT_TOKEN_TTL must be positive"},
		{"no kdf slots", func(c *Config) { c.KDFConcurrency = 0 }, "CONDUIT_KDF_CONCURRENCY must be at least 1"},
		{"bad port", func(c *Config) { c.Port = 70000 }, "PORT 70000 out of range"},
		{"bad proxy", func(c *Config) { c.RateLimits.TrustedProxies = []string{"proxy.local"} }, "RATELIMIT_TRUSTED_PROXIES"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestUsage_ListsVariables(t *testing.T) {
	usage := Usage()
	for _, key := range []string{"CONDUIT_SECRET", "CONDUIT_TOKEN_TTL", "CONDUIT_DATABASE_DRIVER", "SHUTDOWN_GRACE_PERIOD"} {
		require.Contains(t, usage, key)
	}
}
