package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes into dir for the duration of the test; t.Chdir is not
// available before Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 20*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 20*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, int64(4), cfg.Scoring.MaxConcurrent)
	assert.Equal(t, 60*time.Second, cfg.Scoring.CallTimeout)
	assert.NotEmpty(t, cfg.JWT.SecretKey)
}

func TestLoadConfig_FileTimeoutsAreSeconds(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	yaml := "server:\n  read_timeout: 5\n  write_timeout: 45\nscoring:\n  call_timeout: 120\njwt:\n  access_token_ttl_minutes: 30\n"
	require.NoError(t, os.WriteFile("config.yaml", []byte(yaml), 0o644))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 45*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 120*time.Second, cfg.Scoring.CallTimeout)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenTTL)
}
