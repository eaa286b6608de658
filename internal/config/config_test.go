package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "data/model_rf.bin", cfg.ModelPath)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"port": 8080, "debug": true}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "data/applicants.json", cfg.ApplicantsPath)
}

func TestLoad_DatabaseURLEnvWins(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/db")

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"database_url": "postgres://file/db"}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestValidate_RejectsBadPort(t *testing.T) {
	cfg := Default()
	cfg.Port = 70000
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsEmptyModelPath(t *testing.T) {
	cfg := Default()
	cfg.ModelPath = ""
	assert.Error(t, cfg.Validate())
}
