package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears key for the duration of the test
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadSettings_Defaults(t *testing.T) {
	for _, k := range []string{"EXPENSO_DB_PATH", "EXPENSO_LOG_LEVEL", "EXPENSO_FORMAT"} {
		unsetEnv(t, k)
	}

	s, err := LoadSettings(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.NotEmpty(t, s.DBPath)
	assert.Equal(t, "warn", s.LogLevel)
	assert.Equal(t, "console", s.Format)
	assert.NoError(t, s.Validate())
}

func TestLoadSettings_EnvFile(t *testing.T) {
	for _, k := range []string{"EXPENSO_DB_PATH", "EXPENSO_LOG_LEVEL", "EXPENSO_FORMAT"} {
		unsetEnv(t, k)
	}
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	content := "EXPENSO_DB_PATH=" + filepath.Join(dir, "x.db") + "\nEXPENSO_LOG_LEVEL=DEBUG\nEXPENSO_FORMAT=json\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0644))

	s, err := LoadSettings(envFile)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "x.db"), s.DBPath)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "json", s.Format)
}

func TestLoadSettings_EnvironmentWinsOverFile(t *testing.T) {
	t.Setenv("EXPENSO_FORMAT", "csv")
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("EXPENSO_FORMAT=html\n"), 0644))

	s, err := LoadSettings(envFile)
	require.NoError(t, err)
	assert.Equal(t, "csv", s.Format)
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  string
	}{
		{"valid", Settings{DBPath: "a.db", LogLevel: "info", Format: "html"}, ""},
		{"empty db path", Settings{LogLevel: "info", Format: "json"}, "database path cannot be empty"},
		{"bad level", Settings{DBPath: "a.db", LogLevel: "loud", Format: "json"}, "invalid log level 'loud'"},
		{"bad format", Settings{DBPath: "a.db", LogLevel: "info", Format: "pdf"}, "invalid output format 'pdf'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSettingsValidate_ReportsAllProblems(t *testing.T) {
	err := (&Settings{LogLevel: "x", Format: "y"}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database path")
	assert.Contains(t, err.Error(), "log level")
	assert.Contains(t, err.Error(), "output format")
}
