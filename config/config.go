// Package config loads process configuration from the environment, builds
// the logger and serves the admin-editable settings file.
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
)

// Config holds process-level settings read once at startup.
type Config struct {
	Port          int
	DBPath        string
	SettingsPath  string
	RedisAddress  string
	LogLevel      string
	AuditInterval time.Duration
	CORSOrigins   []string
}

// Defaults for unset environment variables.
const (
	DefaultPort          = 8080
	DefaultDBPath        = "timewise.db"
	DefaultSettingsPath  = "timewise-settings.json"
	DefaultLogLevel      = "info"
	DefaultAuditInterval = time.Hour
)

var DefaultCORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

// Load reads .env (if present) and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, filling defaults for empty
// values.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:          DefaultPort,
		DBPath:        DefaultDBPath,
		SettingsPath:  DefaultSettingsPath,
		RedisAddress:  strings.TrimSpace(getenv("REDIS_ADDRESS")),
		LogLevel:      DefaultLogLevel,
		AuditInterval: DefaultAuditInterval,
		CORSOrigins:   append([]string(nil), DefaultCORSOrigins...),
	}

	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return cfg, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}
	if v := getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := getenv("SETTINGS_PATH"); v != "" {
		cfg.SettingsPath = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("AUDIT_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid AUDIT_INTERVAL %q: %w", v, err)
		}
		cfg.AuditInterval = d
	}
	if v := getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORSOrigins = origins
	}

	return cfg, nil
}
