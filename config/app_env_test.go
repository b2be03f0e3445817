package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/akeren/bizguard-leads/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAutoMigrateAllowed(t *testing.T) {
	for _, env := range []string{"", "dev", "development", "local", "test", "testing", "DEV", "  Local  "} {
		assert.NoError(t, ValidateAutoMigrateAllowed(env), "env %q", env)
	}

	for _, env := range []string{"prod", "production", "staging", " Production ", "qa"} {
		err := ValidateAutoMigrateAllowed(env)
		require.Error(t, err, "env %q", env)
		assert.Contains(t, err.Error(), AppEnvKey)
	}
}

func TestInitializeEnvFile_LoadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.env")
	require.NoError(t, os.WriteFile(path, []byte("SUBMISSION_STORE=database\nDATA_DIR=/srv/leads\n"), 0o600))

	t.Setenv("SKIP_DOTENV", "")
	t.Setenv(envFileKey, path)
	t.Setenv("SUBMISSION_STORE", "")
	os.Unsetenv("SUBMISSION_STORE")
	t.Setenv("DATA_DIR", "/already/set")

	InitializeEnvFile(log.NewLogger(io.Discard, slog.LevelInfo))

	assert.Equal(t, "database", os.Getenv("SUBMISSION_STORE"))
	assert.Equal(t, "/already/set", os.Getenv("DATA_DIR"))
}

func TestInitializeEnvFile_Skipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.env")
	require.NoError(t, os.WriteFile(path, []byte("LEAD_SINK_URL=http://sink.internal\n"), 0o600))

	t.Setenv("SKIP_DOTENV", "true")
	t.Setenv(envFileKey, path)
	t.Setenv("LEAD_SINK_URL", "")

	InitializeEnvFile(log.NewLogger(io.Discard, slog.LevelInfo))

	assert.Empty(t, os.Getenv("LEAD_SINK_URL"))
}
