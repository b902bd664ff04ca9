package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `self_address: me@example.org
store:
  driver: sqlite
  path: /tmp/mail.db
  seed: false
composer:
  max_files: 3
  suggestion_delay: 500ms
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "me@example.org", cfg.SelfAddress)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "/tmp/mail.db", cfg.Store.Path)
	assert.False(t, cfg.Store.Seed)
	assert.Equal(t, 3, cfg.Composer.MaxFiles)
	assert.Equal(t, 500*time.Millisecond, cfg.Composer.SuggestionDelay)

	// Unset keys keep their defaults
	assert.Equal(t, int64(25*1024*1024), cfg.Composer.MaxSizeBytes)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("MAILSHELL_SELF_ADDRESS", "env@example.org")
	t.Setenv("MAILSHELL_COMPOSER_MAX_FILES", "4")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env@example.org", cfg.SelfAddress)
	assert.Equal(t, 4, cfg.Composer.MaxFiles)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  driver: postgres\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("self_address: [unterminated\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	cfg.SelfAddress = "not an address"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Store.Driver = "sqlite"
	cfg.Store.Path = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Composer.MaxFiles = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Composer.MaxSizeBytes = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Composer.SuggestionDelay = -time.Second
	assert.Error(t, cfg.Validate())
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.SelfAddress = "round@trip.io"
	cfg.Store.Driver = "sqlite"
	cfg.Composer.SuggestionDelay = 3 * time.Second

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
