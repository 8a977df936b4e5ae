package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Settings holds application-level configuration read from the environment
type Settings struct {
	// Store
	DBPath string

	// Logging
	LogLevel string

	// Output
	Format string
}

var (
	validLogLevels = []string{"debug", "info", "warn", "error"}
	validFormats   = []string{"console", "console-verbose", "json", "csv", "html"}
)

// LoadSettings reads settings from the environment after loading the given
// .env files (".env" when none are named). Missing env files are ignored.
func LoadSettings(envFiles ...string) (*Settings, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", f, err)
		}
	}

	return &Settings{
		DBPath:   getEnv("EXPENSO_DB_PATH", defaultDBPath()),
		LogLevel: strings.ToLower(getEnv("EXPENSO_LOG_LEVEL", "warn")),
		Format:   strings.ToLower(getEnv("EXPENSO_FORMAT", "console")),
	}, nil
}

// Validate validates the settings and returns every problem found
func (s *Settings) Validate() error {
	var problems []string

	if s.DBPath == "" {
		problems = append(problems, "database path cannot be empty")
	}
	if !contains(validLogLevels, s.LogLevel) {
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be one of %v", s.LogLevel, validLogLevels))
	}
	if !contains(validFormats, s.Format) {
		problems = append(problems, fmt.Sprintf("invalid output format '%s': must be one of %v", s.Format, validFormats))
	}

	if len(problems) > 0 {
		return fmt.Errorf("settings validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func defaultDBPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "expenso", "estimates.db")
	}
	return filepath.Join(".", "data", "estimates.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
