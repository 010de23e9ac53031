package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/whalefetch/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
fetcher:
  wallets:
    - "0xaaa"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Fetcher.PageSize)
	assert.Equal(t, 50_000, cfg.Fetcher.MaxTradesPerWallet)
	assert.Equal(t, "up or down", cfg.Fetcher.MatchPhrase)
	assert.Equal(t, 150*time.Millisecond, cfg.PageDelay())
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, "exponential", cfg.Retry.Backoff)
	assert.Equal(t, time.Second, cfg.RetryBase())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MissingWalletsIsFatal(t *testing.T) {
	path := writeConfig(t, `
fetcher:
  page_size: 100
`)

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wallets")
}

func TestLoad_InvalidBackoff(t *testing.T) {
	path := writeConfig(t, `
fetcher:
  wallets: ["0xaaa"]
retry:
  backoff: quadratic
`)

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backoff")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("WHALE_ADDRESSES", "0x111, 0x222")
	t.Setenv("LOG_LEVEL", "debug")

	path := writeConfig(t, `
fetcher:
  wallets: ["0xaaa"]
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"0x111", "0x222"}, cfg.Fetcher.Wallets)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
