package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logging   LoggingConfig
	Auth      AuthConfig
	Formsets  FormsetConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr           string
	RequestTimeout time.Duration
}

// DatabaseConfig contains the database connection settings.
type DatabaseConfig struct {
	URL             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	UseMock         bool
}

// LoggingConfig controls the global logger.
type LoggingConfig struct {
	Level string
}

// AuthConfig groups authentication settings.
type AuthConfig struct {
	Session SessionConfig
}

// SessionConfig configures the session cookie.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// FormsetConfig sizes the ingredient and step rows of the recipe editor.
type FormsetConfig struct {
	IngredientExtra int
	IngredientMax   int
	StepExtra       int
	StepMax         int
}

// RateLimitConfig throttles mutating requests per client address.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// CORSConfig lists the origins allowed to call the service cross-site.
type CORSConfig struct {
	Origins []string
}

// fileConfig mirrors the optional TOML file named by CONFIG_FILE. Durations
// are written as Go duration strings.
type fileConfig struct {
	Server struct {
		Addr           string `toml:"addr"`
		RequestTimeout string `toml:"request_timeout"`
	} `toml:"server"`
	Database struct {
		URL             string `toml:"url"`
		MaxIdleConns    *int   `toml:"max_idle_conns"`
		MaxOpenConns    *int   `toml:"max_open_conns"`
		ConnMaxLifetime string `toml:"conn_max_lifetime"`
		ConnMaxIdleTime string `toml:"conn_max_idle_time"`
		UseMock         *bool  `toml:"use_mock"`
	} `toml:"database"`
	Logging struct {
		Level string `toml:"level"`
	} `toml:"logging"`
	Session struct {
		Lifetime     string `toml:"lifetime"`
		CookieName   string `toml:"cookie_name"`
		CookieDomain string `toml:"cookie_domain"`
		CookieSecure *bool  `toml:"cookie_secure"`
	} `toml:"session"`
	Formsets struct {
		IngredientExtra *int `toml:"ingredient_extra"`
		IngredientMax   *int `toml:"ingredient_max"`
		StepExtra       *int `toml:"step_extra"`
		StepMax         *int `toml:"step_max"`
	} `toml:"formsets"`
	RateLimit struct {
		RPS   *float64 `toml:"rps"`
		Burst *int     `toml:"burst"`
	} `toml:"rate_limit"`
	CORS struct {
		Origins []string `toml:"origins"`
	} `toml:"cors"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			RequestTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			MaxIdleConns:    5,
			MaxOpenConns:    20,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 15 * time.Minute,
		},
		Logging: LoggingConfig{Level: "info"},
		Auth: AuthConfig{Session: SessionConfig{
			Lifetime:     24 * time.Hour,
			CookieName:   "cuisine_session",
			CookieSecure: true,
		}},
		Formsets: FormsetConfig{
			IngredientExtra: 3,
			IngredientMax:   30,
			StepExtra:       3,
			StepMax:         30,
		},
		RateLimit: RateLimitConfig{RPS: 5, Burst: 10},
	}
}

// Load builds a Config from defaults, an optional .env file, the optional
// TOML file named by CONFIG_FILE, and the environment. Environment variables
// win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		file, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		file.apply(&cfg)
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var file fileConfig
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &file, nil
}

func (f *fileConfig) apply(cfg *Config) {
	cfg.Server.Addr = firstNonEmpty(f.Server.Addr, cfg.Server.Addr)
	cfg.Server.RequestTimeout = parseDurationWithDefault(f.Server.RequestTimeout, cfg.Server.RequestTimeout)

	cfg.Database.URL = firstNonEmpty(f.Database.URL, cfg.Database.URL)
	setInt(&cfg.Database.MaxIdleConns, f.Database.MaxIdleConns)
	setInt(&cfg.Database.MaxOpenConns, f.Database.MaxOpenConns)
	cfg.Database.ConnMaxLifetime = parseDurationWithDefault(f.Database.ConnMaxLifetime, cfg.Database.ConnMaxLifetime)
	cfg.Database.ConnMaxIdleTime = parseDurationWithDefault(f.Database.ConnMaxIdleTime, cfg.Database.ConnMaxIdleTime)
	if f.Database.UseMock != nil {
		cfg.Database.UseMock = *f.Database.UseMock
	}

	cfg.Logging.Level = firstNonEmpty(f.Logging.Level, cfg.Logging.Level)

	session := &cfg.Auth.Session
	session.Lifetime = parseDurationWithDefault(f.Session.Lifetime, session.Lifetime)
	session.CookieName = firstNonEmpty(f.Session.CookieName, session.CookieName)
	session.CookieDomain = firstNonEmpty(f.Session.CookieDomain, session.CookieDomain)
	if f.Session.CookieSecure != nil {
		session.CookieSecure = *f.Session.CookieSecure
	}

	setInt(&cfg.Formsets.IngredientExtra, f.Formsets.IngredientExtra)
	setInt(&cfg.Formsets.IngredientMax, f.Formsets.IngredientMax)
	setInt(&cfg.Formsets.StepExtra, f.Formsets.StepExtra)
	setInt(&cfg.Formsets.StepMax, f.Formsets.StepMax)

	if f.RateLimit.RPS != nil {
		cfg.RateLimit.RPS = *f.RateLimit.RPS
	}
	setInt(&cfg.RateLimit.Burst, f.RateLimit.Burst)

	if f.CORS.Origins != nil {
		cfg.CORS.Origins = f.CORS.Origins
	}
}

func applyEnv(cfg *Config) {
	cfg.Server.Addr = firstNonEmpty(os.Getenv("SERVER_ADDR"), os.Getenv("ADDR"), cfg.Server.Addr)
	cfg.Server.RequestTimeout = parseDurationWithDefault(os.Getenv("REQUEST_TIMEOUT"), cfg.Server.RequestTimeout)

	cfg.Database.URL = firstNonEmpty(os.Getenv("DATABASE_URL"), os.Getenv("DB_URL"), cfg.Database.URL)
	cfg.Database.MaxIdleConns = parseIntWithDefault(os.Getenv("DATABASE_MAX_IDLE_CONNS"), cfg.Database.MaxIdleConns)
	cfg.Database.MaxOpenConns = parseIntWithDefault(os.Getenv("DATABASE_MAX_OPEN_CONNS"), cfg.Database.MaxOpenConns)
	cfg.Database.ConnMaxLifetime = parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_LIFETIME"), cfg.Database.ConnMaxLifetime)
	cfg.Database.ConnMaxIdleTime = parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_IDLE_TIME"), cfg.Database.ConnMaxIdleTime)
	cfg.Database.UseMock = parseBoolWithDefault(os.Getenv("DATABASE_USE_MOCK"), cfg.Database.UseMock)

	cfg.Logging.Level = firstNonEmpty(os.Getenv("LOG_LEVEL"), cfg.Logging.Level)

	session := &cfg.Auth.Session
	session.Lifetime = parseDurationWithDefault(os.Getenv("SESSION_LIFETIME"), session.Lifetime)
	session.CookieName = firstNonEmpty(os.Getenv("SESSION_COOKIE_NAME"), session.CookieName)
	session.CookieDomain = firstNonEmpty(os.Getenv("SESSION_COOKIE_DOMAIN"), session.CookieDomain)
	session.CookieSecure = parseBoolWithDefault(os.Getenv("SESSION_COOKIE_SECURE"), session.CookieSecure)

	cfg.Formsets.IngredientExtra = parseIntWithDefault(os.Getenv("FORMSET_INGREDIENT_EXTRA"), cfg.Formsets.IngredientExtra)
	cfg.Formsets.IngredientMax = parseIntWithDefault(os.Getenv("FORMSET_INGREDIENT_MAX"), cfg.Formsets.IngredientMax)
	cfg.Formsets.StepExtra = parseIntWithDefault(os.Getenv("FORMSET_STEP_EXTRA"), cfg.Formsets.StepExtra)
	cfg.Formsets.StepMax = parseIntWithDefault(os.Getenv("FORMSET_STEP_MAX"), cfg.Formsets.StepMax)

	cfg.RateLimit.RPS = parseFloatWithDefault(os.Getenv("RATE_LIMIT_RPS"), cfg.RateLimit.RPS)
	cfg.RateLimit.Burst = parseIntWithDefault(os.Getenv("RATE_LIMIT_BURST"), cfg.RateLimit.Burst)

	if origins := splitList(os.Getenv("CORS_ORIGINS")); origins != nil {
		cfg.CORS.Origins = origins
	}
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("server address must not be empty")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	if c.Formsets.IngredientExtra < 0 || c.Formsets.StepExtra < 0 {
		return fmt.Errorf("formset extra rows must not be negative")
	}
	if c.Formsets.IngredientMax <= 0 || c.Formsets.StepMax <= 0 {
		return fmt.Errorf("formset maximum rows must be positive")
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func setInt(target *int, value *int) {
	if value != nil {
		*target = *value
	}
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseIntWithDefault(value string, def int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return parsed
}

func parseFloatWithDefault(value string, def float64) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return def
	}
	return parsed
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return parsed
}

func parseBoolWithDefault(value string, def bool) bool {
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return parsed
}
