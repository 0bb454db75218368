package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "https://api.covid19tracker.ca", cfg.Covid.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Covid.Timeout)
	assert.True(t, cfg.Covid.LiveEnabled)
	assert.Empty(t, cfg.Groq.Key)
	assert.Equal(t, "llama3-70b-8192", cfg.Groq.Model)
	assert.Equal(t, "gas_emissions_canada.csv", cfg.GHG.CSVPath)
	assert.NotEmpty(t, cfg.Store.DatabaseURL)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "envirobot.yaml")
	content := `
server:
  addr: ":9000"
store:
  database_url: "postgres://db:5432/envirobot"
covid:
  live_enabled: false
groq:
  key: "gsk_test"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "postgres://db:5432/envirobot", cfg.Store.DatabaseURL)
	assert.False(t, cfg.Covid.LiveEnabled)
	assert.Equal(t, "gsk_test", cfg.Groq.Key)

	// untouched keys keep their defaults
	assert.Equal(t, "llama3-70b-8192", cfg.Groq.Model)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("ENVIROBOT_SERVER_ADDR", ":7070")
	t.Setenv("ENVIROBOT_GROQ_KEY", "gsk_env")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "gsk_env", cfg.Groq.Key)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
