// Package config reads server settings from the environment.
package config

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environments accepted in BADMINTON_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// CSRFKeyBytes is the decoded length of BADMINTON_CSRF_KEY.
const CSRFKeyBytes = 32

// Config holds everything cmd/server needs to start.
type Config struct {
	// HTTP server
	Addr           string
	Env            string
	CSRFKeyHex     string
	TrustedOrigins []string
	RateLimit      int // requests per second per client, 0 disables

	// Ledger
	Seed         bool
	SnapshotPath string

	// Observability
	LogLevel    string
	SlowQuery   time.Duration
	SlowRequest time.Duration
}

// Load reads .env (when present) and then the process environment.
// POST: Unset or malformed values fall back to defaults; call Validate before use
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Addr:           getEnv("BADMINTON_ADDR", ":8080"),
		Env:            getEnv("BADMINTON_ENV", EnvDevelopment),
		CSRFKeyHex:     getEnv("BADMINTON_CSRF_KEY", ""),
		TrustedOrigins: getEnvList("BADMINTON_TRUSTED_ORIGINS", []string{"localhost:8080", "127.0.0.1:8080"}),
		RateLimit:      getEnvInt("BADMINTON_RATE_LIMIT", 20),

		Seed:         getEnvBool("BADMINTON_SEED", false),
		SnapshotPath: getEnv("BADMINTON_SNAPSHOT_PATH", ""),

		LogLevel:    getEnv("LOG_LEVEL", "info"),
		SlowQuery:   getEnvMillis("BADMINTON_SLOW_QUERY_MS", 50*time.Millisecond),
		SlowRequest: getEnvMillis("BADMINTON_SLOW_REQUEST_MS", 200*time.Millisecond),
	}
}

// Validate validates the configuration and returns an error listing every problem.
func (c *Config) Validate() error {
	var errors []string

	if _, port, err := net.SplitHostPort(c.Addr); err != nil {
		errors = append(errors, fmt.Sprintf("invalid address '%s': %v", c.Addr, err))
	} else if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be between 0 and 65535", port))
	}

	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		errors = append(errors, fmt.Sprintf("invalid environment '%s': must be %s or %s", c.Env, EnvDevelopment, EnvProduction))
	}

	if c.CSRFKeyHex != "" {
		if key, err := hex.DecodeString(c.CSRFKeyHex); err != nil || len(key) != CSRFKeyBytes {
			errors = append(errors, fmt.Sprintf("BADMINTON_CSRF_KEY must be %d hex characters", 2*CSRFKeyBytes))
		}
	} else if c.IsProduction() {
		errors = append(errors, "BADMINTON_CSRF_KEY is required in production")
	}

	if c.RateLimit < 0 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be >= 0", c.RateLimit))
	}

	if _, err := c.Level(); err != nil {
		errors = append(errors, err.Error())
	}

	if c.SlowQuery <= 0 {
		errors = append(errors, fmt.Sprintf("invalid slow query threshold %v: must be positive", c.SlowQuery))
	}
	if c.SlowRequest <= 0 {
		errors = append(errors, fmt.Sprintf("invalid slow request threshold %v: must be positive", c.SlowRequest))
	}

	if c.SnapshotPath != "" {
		if info, err := os.Stat(c.SnapshotPath); err != nil {
			errors = append(errors, fmt.Sprintf("snapshot file '%s' is not readable: %v", c.SnapshotPath, err))
		} else if info.IsDir() {
			errors = append(errors, fmt.Sprintf("snapshot path '%s' is a directory", c.SnapshotPath))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// IsProduction reports whether the server runs with production hardening.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// CSRFKey decodes the configured key, or returns nil when none is set.
// PRE: Validate succeeded
func (c *Config) CSRFKey() []byte {
	if c.CSRFKeyHex == "" {
		return nil
	}
	key, _ := hex.DecodeString(c.CSRFKeyHex)
	return key
}

// Level maps LOG_LEVEL onto a slog level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel)
	}
	return level, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvMillis(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if ms, err := strconv.Atoi(value); err == nil {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
