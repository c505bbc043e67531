package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v6"

	"resume-builder/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	Env             string        `env:"ENV" envDefault:"dev"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	JWTSecret       string        `env:"JWT_SECRET"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CookieSecure    bool          `env:"COOKIE_SECURE" envDefault:"false"`
	CORSAllowOrigin []string      `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		telemetry.Warn("config.parse_failed", map[string]any{"error": err, "fallback": "defaults for invalid keys"})
	}
	return normalize(cfg)
}

func normalize(cfg Config) Config {
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.CORSAllowOrigin = trimAll(cfg.CORSAllowOrigin)
	if strings.TrimSpace(cfg.Port) == "" {
		cfg.Port = "8080"
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if !cfg.IsDevLike() {
		if cfg.DatabaseURL == "" {
			telemetry.Warn("config.missing", map[string]any{"key": "DATABASE_URL", "env": cfg.Env})
		}
		if cfg.JWTSecret == "" {
			telemetry.Warn("config.missing", map[string]any{"key": "JWT_SECRET", "env": cfg.Env})
		}
	}
	return cfg
}

// IsDevLike reports whether in-memory fallbacks are acceptable.
func (c Config) IsDevLike() bool {
	return c.Env == "dev" || c.Env == "local"
}

func trimAll(parts []string) []string {
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
