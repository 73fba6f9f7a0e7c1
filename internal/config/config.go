// Package config loads runtime settings from the environment, optionally
// seeded from a .env file in the working directory.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	PeriodicityLines     = "lines"
	PeriodicityFrequency = "frequency"

	BackendNative = "native"
	BackendGoCV   = "gocv"

	BatchModeStrict  = "strict"
	BatchModeLenient = "lenient"
)

type Config struct {
	LogLevel     string
	Periodicity  string
	Backend      string
	MaxDimension int
	Workers      int
	BatchMode    string
}

// Load reads .env (a missing file is not an error) and then the process
// environment, applies defaults and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFromEnv()
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		LogLevel:     strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
		Periodicity:  strings.ToLower(getEnvOrDefault("CEMETERY_PERIODICITY", PeriodicityLines)),
		Backend:      strings.ToLower(getEnvOrDefault("CEMETERY_BACKEND", BackendNative)),
		MaxDimension: parseIntOrDefault("CEMETERY_MAX_DIMENSION", 0),
		Workers:      parseIntOrDefault("CEMETERY_WORKERS", 0),
		BatchMode:    strings.ToLower(getEnvOrDefault("CEMETERY_BATCH_MODE", BatchModeStrict)),
	}

	switch cfg.Periodicity {
	case PeriodicityLines, PeriodicityFrequency:
	default:
		return nil, fmt.Errorf("invalid CEMETERY_PERIODICITY: %q (want %s or %s)", cfg.Periodicity, PeriodicityLines, PeriodicityFrequency)
	}
	switch cfg.Backend {
	case BackendNative, BackendGoCV:
	default:
		return nil, fmt.Errorf("invalid CEMETERY_BACKEND: %q (want %s or %s)", cfg.Backend, BackendNative, BackendGoCV)
	}
	switch cfg.BatchMode {
	case BatchModeStrict, BatchModeLenient:
	default:
		return nil, fmt.Errorf("invalid CEMETERY_BATCH_MODE: %q (want %s or %s)", cfg.BatchMode, BatchModeStrict, BatchModeLenient)
	}
	if cfg.MaxDimension < 0 {
		return nil, fmt.Errorf("CEMETERY_MAX_DIMENSION must be >= 0 (got %d)", cfg.MaxDimension)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("CEMETERY_WORKERS must be >= 0 (got %d)", cfg.Workers)
	}
	return cfg, nil
}

// WorkerCount resolves Workers, where 0 means one worker per CPU.
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// Lenient reports whether batch ranking substitutes zero scores for failures.
func (c *Config) Lenient() bool {
	return c.BatchMode == BatchModeLenient
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intValue
		}
	}
	return defaultValue
}
