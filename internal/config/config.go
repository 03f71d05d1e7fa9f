package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

var ErrMisconfigured = errors.New("config invalid")

type Config struct {
	Mode     string
	Port     int
	LogLevel string
	Auth     AuthConfig
	Postgres PostgresConfig
	CORS     CORSConfig
	Metrics  MetricsConfig
}

type AuthConfig struct {
	JWTSecret    string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	CookieDomain string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type MetricsConfig struct {
	Enabled bool
}

// IsDevelopment reports whether the server runs with development cookie and docs settings.
func (c Config) IsDevelopment() bool {
	return c.Mode == ModeDevelopment
}

// envKeys maps koanf keys to the environment variables that override them.
// The first non-empty variable wins.
var envKeys = map[string][]string{
	"mode":                  {"APP_ENV", "NODE_ENV"},
	"port":                  {"PORT"},
	"log_level":             {"LOG_LEVEL"},
	"cookie_domain":         {"COOKIE_DOMAIN"},
	"jwt_secret":            {"JWT_SECRET"},
	"jwt_access_token_ttl":  {"JWT_ACCESS_TOKEN_TTL"},
	"jwt_refresh_token_ttl": {"JWT_REFRESH_TOKEN_TTL"},
	"cors_allowed_origins":  {"CORS_ALLOWED_ORIGINS"},
	"metrics_enabled":       {"METRICS_ENABLED"},
	"postgres.url":          {"DATABASE_URL"},
	"postgres.host":         {"PGHOST"},
	"postgres.port":         {"PGPORT"},
	"postgres.user":         {"PGUSER"},
	"postgres.password":     {"PGPASSWORD"},
	"postgres.database":     {"PGDATABASE"},
	"postgres.sslmode":      {"PGSSLMODE"},
}

var defaults = map[string]string{
	"mode":             ModeDevelopment,
	"port":             "3000",
	"log_level":        "info",
	"metrics_enabled":  "true",
	"postgres.host":    "localhost",
	"postgres.port":    "5432",
	"postgres.sslmode": "disable",
}

// Load builds the configuration from defaults, an optional YAML file, the
// environment (including a .env file in the working directory) and explicitly
// set command-line flags, in increasing order of precedence.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k, err := newKoanf(path, flags)
	if err != nil {
		return Config{}, err
	}
	return fromKoanf(k)
}

// LoadDatabase reads the same sources as Load but only requires the settings
// needed to reach Postgres. Used by the migrate and seed commands.
func LoadDatabase(path string, flags *pflag.FlagSet) (Config, error) {
	k, err := newKoanf(path, flags)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		Mode:     strings.ToLower(strings.TrimSpace(k.String("mode"))),
		LogLevel: k.String("log_level"),
		Postgres: postgresFromKoanf(k),
	}
	if _, err := cfg.Postgres.URL(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newKoanf(path string, flags *pflag.FlagSet) (*koanf.Koanf, error) {
	// .env is optional; real environment variables are never overwritten.
	_ = godotenv.Load()

	k := koanf.New(".")
	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return nil, err
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	for key, names := range envKeys {
		for _, name := range names {
			if val := os.Getenv(name); val != "" {
				if err := k.Set(key, val); err != nil {
					return nil, err
				}
				break
			}
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}
	return k, nil
}

func postgresFromKoanf(k *koanf.Koanf) PostgresConfig {
	return PostgresConfig{
		DatabaseURL: k.String("postgres.url"),
		Host:        k.String("postgres.host"),
		Port:        k.String("postgres.port"),
		User:        k.String("postgres.user"),
		Password:    k.String("postgres.password"),
		Database:    k.String("postgres.database"),
		SSLMode:     k.String("postgres.sslmode"),
	}
}

func fromKoanf(k *koanf.Koanf) (Config, error) {
	cfg := Config{
		Mode:     strings.ToLower(strings.TrimSpace(k.String("mode"))),
		LogLevel: k.String("log_level"),
		Auth: AuthConfig{
			JWTSecret:    k.String("jwt_secret"),
			CookieDomain: k.String("cookie_domain"),
		},
		Postgres: postgresFromKoanf(k),
		CORS: CORSConfig{
			AllowedOrigins: splitList(k.String("cors_allowed_origins")),
		},
	}

	port, err := strconv.Atoi(strings.TrimSpace(k.String("port")))
	if err != nil || port < 1 {
		return Config{}, fmt.Errorf("%w: PORT must be a positive number", ErrMisconfigured)
	}
	cfg.Port = port

	cfg.Metrics.Enabled, err = parseBool(k.String("metrics_enabled"), true)
	if err != nil {
		return Config{}, fmt.Errorf("%w: invalid METRICS_ENABLED", ErrMisconfigured)
	}

	cfg.Auth.AccessTTL, err = ParseTTL(k.String("jwt_access_token_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("%w: JWT_ACCESS_TOKEN_TTL: %w", ErrMisconfigured, err)
	}
	cfg.Auth.RefreshTTL, err = ParseTTL(k.String("jwt_refresh_token_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("%w: JWT_REFRESH_TOKEN_TTL: %w", ErrMisconfigured, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that have no sensible default.
func (c Config) Validate() error {
	if c.Mode != ModeDevelopment && c.Mode != ModeProduction {
		return fmt.Errorf("%w: mode must be %q or %q, got %q", ErrMisconfigured, ModeDevelopment, ModeProduction, c.Mode)
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}
	if strings.TrimSpace(c.Auth.CookieDomain) == "" {
		return fmt.Errorf("%w: COOKIE_DOMAIN is required", ErrMisconfigured)
	}
	if c.Auth.AccessTTL <= 0 || c.Auth.RefreshTTL <= 0 {
		return fmt.Errorf("%w: token TTLs must be positive", ErrMisconfigured)
	}
	if _, err := c.Postgres.URL(); err != nil {
		return err
	}
	return nil
}

// URL returns DATABASE_URL when set, otherwise a URL assembled from the PG* parts.
func (p PostgresConfig) URL() (string, error) {
	if p.DatabaseURL != "" {
		return p.DatabaseURL, nil
	}
	if p.User == "" || p.Database == "" {
		return "", fmt.Errorf("%w: DATABASE_URL or PGUSER/PGDATABASE is required", ErrMisconfigured)
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(p.Host, p.Port),
		Path:   p.Database,
	}
	if p.Password == "" {
		u.User = url.User(p.User)
	} else {
		u.User = url.UserPassword(p.User, p.Password)
	}
	q := u.Query()
	q.Set("sslmode", p.SSLMode)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseBool(value string, fallback bool) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseBool(value)
}
