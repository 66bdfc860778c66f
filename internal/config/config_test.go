package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/api", cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, 5, cfg.RateLimitPerSecond)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "session.json", filepath.Base(cfg.SessionFile))
}

func TestLoadYAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "jobboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: http://yaml.example/api\nport: 7000\ndefault_sort: salary-high\nallow_origins:\n  - http://a.example\n"), 0o600))

	t.Setenv("PORT", "8081")
	t.Setenv("ALLOW_ORIGINS", "http://b.example, http://c.example")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://yaml.example/api", cfg.APIURL)
	assert.Equal(t, "salary-high", cfg.DefaultSort)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, []string{"http://b.example", "http://c.example"}, cfg.AllowOrigins)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("JOBBOARD_TIMEOUT=5\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("JOBBOARD_TIMEOUT") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
}

func TestLoadErrors(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load("missing.yaml")
	assert.Error(t, err)

	t.Setenv("JOBBOARD_TIMEOUT", "0")
	_, err = Load("")
	assert.ErrorContains(t, err, "timeout must be positive")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.APIURL = " "
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Port = 70000
	assert.Error(t, cfg.Validate())
}
