package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port string

	DatabaseURL     string
	SSLInsecure     bool
	RoutesTable     string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool

	LogFile  string
	LogLevel string
	GinMode  string

	// JWTSecret enables editor authentication on updates when non-empty.
	JWTSecret string

	// DotEnvErr is why Load could not read a .env file, nil when it did.
	// Logging is not configured yet while Load runs, so callers report it.
	DotEnvErr error
}

// ErrMissingDatabaseURL is returned by Load when DATABASE_URL is unset.
var ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")

// Load reads the configuration, loading a .env file first if one exists.
func Load() (*Config, error) {
	dotEnvErr := godotenv.Load()

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}
	cfg.DotEnvErr = dotEnvErr
	return cfg, nil
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RoutesTable: getEnv("ROUTES_TABLE", "routes"),
		LogFile:     getEnv("LOG_FILE", "./logs/app.log"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		GinMode:     getEnv("GIN_MODE", "release"),
		JWTSecret:   getEnv("AUTH_JWT_SECRET", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.RoutesTable == "" {
		return nil, errors.New("ROUTES_TABLE must not be empty")
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", cfg.Port, err)
	}

	var err error
	if cfg.SSLInsecure, err = getBool("DB_SSL_INSECURE", true); err != nil {
		return nil, err
	}
	if cfg.AutoMigrate, err = getBool("DB_AUTO_MIGRATE", false); err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns, err = getInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.MaxIdleConns, err = getInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return nil, err
	}
	if cfg.ConnMaxLifetime, err = getDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Port
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) (bool, error) {
	v, exists := os.LookupEnv(key)
	if !exists || v == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func getInt(key string, defaultValue int) (int, error) {
	v, exists := os.LookupEnv(key)
	if !exists || v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v, exists := os.LookupEnv(key)
	if !exists || v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
