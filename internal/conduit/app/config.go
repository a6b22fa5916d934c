package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/aussiebroadwan/conduit/pkg/httpx"
)

// ConfigFileEnv names an optional YAML file read before the environment.
const ConfigFileEnv = "CONDUIT_CONFIG"

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Issuer     string        `yaml:"issuer" env:"CONDUIT_ISSUER" env-default:"conduit" env-description:"issuer claim for tokens"`
	Secret     string        `yaml:"secret" env:"CONDUIT_SECRET" env-description:"HMAC token secret, at least 32 bytes (overrides the secret file)"`
	SecretFile string        `yaml:"secret_file" env:"CONDUIT_SECRET_FILE" env-default:"secret" env-description:"path to the token secret, generated when missing"`
	PepperFile string        `yaml:"pepper_file" env:"CONDUIT_PEPPER_FILE" env-default:"pepper" env-description:"path to the password pepper, generated when missing"`
	TokenTTL   time.Duration `yaml:"token_ttl" env:"CONDUIT_TOKEN_TTL" env-default:"1440h" env-description:"lifetime of issued tokens"`

	Database Database `yaml:"database"`

	KDFConcurrency int `yaml:"kdf_concurrency" env:"CONDUIT_KDF_CONCURRENCY" env-default:"4" env-description:"maximum concurrent password derivations"`

	RateLimits RateLimits `yaml:"rate_limits"`

	Env                 string        `yaml:"env" env:"ENV" env-default:"dev" env-description:"environment (dev, staging, prod)"`
	LogLevel            string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"info" env-description:"log level (debug, info, warn, error)"`
	LogFormat           string        `yaml:"log_format" env:"LOG_FORMAT" env-default:"json" env-description:"log format (json, text)"`
	Port                int           `yaml:"port" env:"PORT" env-default:"8080" env-description:"HTTP server port"`
	ShutdownGracePeriod time.Duration `yaml:"shutdown_grace_period" env:"SHUTDOWN_GRACE_PERIOD" env-default:"10s" env-description:"graceful shutdown timeout"`
}

type Database struct {
	Driver string `yaml:"driver" env:"CONDUIT_DATABASE_DRIVER" env-default:"sqlite" env-description:"storage driver (sqlite, postgres)"`
	File   string `yaml:"file" env:"CONDUIT_DATABASE_FILE" env-default:"conduit.db" env-description:"SQLite database file"`
	URL    string `yaml:"url" env:"CONDUIT_DATABASE_URL" env-description:"Postgres connection URL"`
}

// RateLimits overrides the per-route limits. Unset fields keep the
// httpx.DefaultLimits value.
type RateLimits struct {
	Credentials RateLimit `yaml:"credentials" env-prefix:"RATELIMIT_CREDENTIALS_"`
	Write       RateLimit `yaml:"write" env-prefix:"RATELIMIT_WRITE_"`
	Read        RateLimit `yaml:"read" env-prefix:"RATELIMIT_READ_"`
	Public      RateLimit `yaml:"public" env-prefix:"RATELIMIT_PUBLIC_"`

	TrustedProxies []string `yaml:"trusted_proxies" env:"RATELIMIT_TRUSTED_PROXIES" env-separator:"," env-description:"proxy addresses or CIDRs whose X-Forwarded-For is trusted"`
}

type RateLimit struct {
	Requests int           `yaml:"requests" env:"REQUESTS" env-description:"requests allowed per window"`
	Window   time.Duration `yaml:"window" env:"WINDOW" env-description:"rate limit window"`
	Burst    int           `yaml:"burst" env:"BURST" env-description:"requests allowed at once"`
}

// Profiles merges the overrides onto the default limits.
func (r RateLimits) Profiles() httpx.LimitProfiles {
	p := httpx.DefaultLimits()
	r.Credentials.apply(&p.Credentials)
	r.Write.apply(&p.Write)
	r.Read.apply(&p.Read)
	r.Public.apply(&p.Public)
	return p
}

func (r RateLimit) apply(l *httpx.Limit) {
	if r.Requests > 0 {
		l.Requests = r.Requests
	}
	if r.Window > 0 {
		l.Window = r.Window
	}
	if r.Burst > 0 {
		l.Burst = r.Burst
	}
}

// LoadConfig reads the configuration from CONDUIT_CONFIG when set, then from
// the environment. Environment variables win over file values.
func LoadConfig() (Config, error) {
	var cfg Config

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.File == "" {
			errs = append(errs, errors.New("CONDUIT_DATABASE_FILE is required for the sqlite driver"))
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("CONDUIT_DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown CONDUIT_DATABASE_DRIVER %q", c.Database.Driver))
	}

	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("CONDUIT_TOKEN_TTL must be positive"))
	}
	if c.KDFConcurrency < 1 {
		errs = append(errs, errors.New("CONDUIT_KDF_CONCURRENCY must be at least 1"))
	}
	if _, err := httpx.ParseTrustedProxies(c.RateLimits.TrustedProxies); err != nil {
		errs = append(errs, fmt.Errorf("RATELIMIT_TRUSTED_PROXIES: %w", err))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}

	return errors.Join(errs...)
}

// Usage describes every supported environment variable.
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}
