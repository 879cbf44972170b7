package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithEnv(t *testing.T) {
	t.Setenv("ZAMMAD_URL", "https://helpdesk.example.com/")
	t.Setenv("ZAMMAD_TOKEN", "secret")

	cfg, err := Load("")
	require.NoError(t, err)

	// Trailing slash is normalized away.
	assert.Equal(t, "https://helpdesk.example.com", cfg.Zammad.URL)
	assert.Equal(t, "secret", cfg.Zammad.Token)
	assert.Equal(t, 60*time.Second, cfg.Zammad.Timeout)
	assert.Equal(t, 3.0, cfg.Zammad.RequestsPerSecond)
	assert.Equal(t, time.Second, cfg.Zammad.RetryWait)
	assert.Equal(t, 2, cfg.Zammad.MaxAttempts)
	assert.Equal(t, "Undelivered Mail Returned to Sender", cfg.Zammad.ExcludeTitle)
	assert.True(t, cfg.Zammad.DayFallback)
	assert.Equal(t, "./tickets_data.csv", cfg.Export.Path)
	assert.Equal(t, "csv", cfg.Export.Format)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.False(t, cfg.Schedule.Enabled)
}

func TestLoad_EnvOverridesPath(t *testing.T) {
	t.Setenv("ZAMMAD_URL", "https://helpdesk.example.com")
	t.Setenv("ZAMMAD_TOKEN", "secret")
	t.Setenv("CSV_PATH", "/data/export.csv")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/data/export.csv", cfg.Export.Path)
}

func TestLoad_MissingURLFails(t *testing.T) {
	t.Setenv("ZAMMAD_URL", "")
	t.Setenv("ZAMMAD_TOKEN", "secret")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zammad.url")
}

func TestLoad_MissingTokenFails(t *testing.T) {
	t.Setenv("ZAMMAD_URL", "https://helpdesk.example.com")
	t.Setenv("ZAMMAD_TOKEN", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zammad.token")
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Setenv("ZAMMAD_URL", "")
	t.Setenv("ZAMMAD_TOKEN", "")

	path := filepath.Join(t.TempDir(), "zamexport.yaml")
	content := []byte(`
zammad:
  url: https://file.example.com
  token: from-file
  requests_per_second: 1
export:
  format: xlsx
  path: /data/tickets.xlsx
schedule:
  enabled: true
  spec: "30 1 * * *"
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://file.example.com", cfg.Zammad.URL)
	assert.Equal(t, "from-file", cfg.Zammad.Token)
	assert.Equal(t, time.Second, cfg.Zammad.RateDelay())
	assert.Equal(t, "xlsx", cfg.Export.Format)
	assert.True(t, cfg.Schedule.Enabled)
	assert.Equal(t, "30 1 * * *", cfg.Schedule.Spec)
}

func TestLoad_BadFormatFails(t *testing.T) {
	t.Setenv("ZAMMAD_URL", "https://helpdesk.example.com")
	t.Setenv("ZAMMAD_TOKEN", "secret")

	path := filepath.Join(t.TempDir(), "zamexport.yaml")
	require.NoError(t, os.WriteFile(path, []byte("export:\n  format: parquet\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export.format")
}

func TestRateDelay(t *testing.T) {
	assert.Equal(t, time.Second/3, ZammadConfig{RequestsPerSecond: 3}.RateDelay())
	assert.Equal(t, time.Duration(0), ZammadConfig{}.RateDelay())
}
