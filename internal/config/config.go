package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultAppEnv        = "dev"
	defaultHTTPAddr      = ":8080"
	defaultDatabaseURL   = "file:equiptrack.db?_pragma=busy_timeout(5000)"
	defaultTimezone      = "UTC"
	defaultTokenSecret   = "change-me-operator-secret"
	defaultTokenTTL      = "720h"
	defaultRequireAuth   = "false"
	defaultAllowedOrigin = "http://localhost:3000"
	defaultTrackerAPIURL = "http://localhost:8080"
)

type Config struct {
	AppEnv              string
	HTTPAddr            string
	DatabaseURL         string
	BusinessTimezone    string
	Location            *time.Location
	OperatorTokenSecret string
	OperatorTokenTTL    time.Duration
	RequireAuth         bool
	CORSAllowedOrigins  []string
	TrackerAPIURL       string
	TrackerAPIToken     string
}

// fileConfig is the optional YAML file named by CONFIG_FILE. Environment
// variables win over it.
type fileConfig struct {
	AppEnv              string   `yaml:"app_env"`
	HTTPAddr            string   `yaml:"http_addr"`
	DatabaseURL         string   `yaml:"database_url"`
	BusinessTimezone    string   `yaml:"business_timezone"`
	OperatorTokenSecret string   `yaml:"operator_token_secret"`
	OperatorTokenTTL    string   `yaml:"operator_token_ttl"`
	RequireAuth         *bool    `yaml:"require_auth"`
	CORSAllowedOrigins  []string `yaml:"cors_allowed_origins"`
	TrackerAPIURL       string   `yaml:"tracker_api_url"`
	TrackerAPIToken     string   `yaml:"tracker_api_token"`
}

// Load reads .env (if present), then CONFIG_FILE (if set), then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}

	var file fileConfig
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		loaded, err := readFile(path)
		if err != nil {
			return nil, err
		}
		file = *loaded
	}

	cfg := &Config{}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(getEnv("APP_ENV", or(file.AppEnv, defaultAppEnv))))
	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", or(file.HTTPAddr, defaultHTTPAddr)))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", or(file.DatabaseURL, defaultDatabaseURL)))
	cfg.BusinessTimezone = strings.TrimSpace(getEnv("BUSINESS_TIMEZONE", or(file.BusinessTimezone, defaultTimezone)))
	cfg.OperatorTokenSecret = strings.TrimSpace(getEnv("OPERATOR_TOKEN_SECRET", or(file.OperatorTokenSecret, defaultTokenSecret)))
	cfg.TrackerAPIURL = strings.TrimRight(strings.TrimSpace(getEnv("TRACKER_API_URL", or(file.TrackerAPIURL, defaultTrackerAPIURL))), "/")
	cfg.TrackerAPIToken = strings.TrimSpace(getEnv("TRACKER_API_TOKEN", file.TrackerAPIToken))

	requireAuth := defaultRequireAuth
	if file.RequireAuth != nil {
		requireAuth = fmt.Sprintf("%t", *file.RequireAuth)
	}
	cfg.RequireAuth = parseBoolEnv("REQUIRE_AUTH", requireAuth)

	origins := defaultAllowedOrigin
	if len(file.CORSAllowedOrigins) > 0 {
		origins = strings.Join(file.CORSAllowedOrigins, ",")
	}
	cfg.CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", origins))

	var err error
	cfg.OperatorTokenTTL, err = parseDurationEnv("OPERATOR_TOKEN_TTL", or(file.OperatorTokenTTL, defaultTokenTTL))
	if err != nil {
		return nil, err
	}

	cfg.Location, err = time.LoadLocation(cfg.BusinessTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid BUSINESS_TIMEZONE value %q: %w", cfg.BusinessTimezone, err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("config: env=%s addr=%s tz=%s require_auth=%t", cfg.AppEnv, cfg.HTTPAddr, cfg.BusinessTimezone, cfg.RequireAuth)
	return cfg, nil
}

func readFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &fc, nil
}

func validateConfig(cfg *Config) error {
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.OperatorTokenTTL <= 0 {
		return fmt.Errorf("OPERATOR_TOKEN_TTL must be > 0")
	}
	if cfg.OperatorTokenSecret == "" {
		return fmt.Errorf("OPERATOR_TOKEN_SECRET must not be empty")
	}

	if IsProdLike(cfg.AppEnv) {
		if cfg.RequireAuth && isEmptyOrDefault(cfg.OperatorTokenSecret, defaultTokenSecret) {
			return fmt.Errorf("in prod/release OPERATOR_TOKEN_SECRET must be set and not default")
		}
		if cfg.DatabaseURL == defaultDatabaseURL {
			return fmt.Errorf("in prod/release DATABASE_URL must be set")
		}
	}

	return nil
}

func IsProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func or(v, fallback string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}
