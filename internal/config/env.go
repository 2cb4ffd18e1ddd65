package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv and ConfigPathFromEnv.
const (
	EnvConfig  = "ARASTAT_CONFIG"
	EnvWorkers = "ARASTAT_WORKERS"
)

// LoadDotEnv loads variables from a .env file at path into the process
// environment. Variables already set are not overridden. A missing file
// is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ConfigPathFromEnv returns the config path named by ARASTAT_CONFIG.
func ConfigPathFromEnv() string {
	return strings.TrimSpace(os.Getenv(EnvConfig))
}

// ApplyEnv overrides cfg with values from the environment.
func ApplyEnv(cfg *Config) error {
	raw := strings.TrimSpace(os.Getenv(EnvWorkers))
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fmt.Errorf("%s must be a non-negative integer, got %q", EnvWorkers, raw)
	}
	cfg.Workers = &n
	return nil
}
