package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "static", cfg.Scenarios.Source)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "data/fomcpulse.db", cfg.Database.DSN)
	assert.Equal(t, "fomcpulse", cfg.Redis.Prefix)
	assert.Equal(t, "0 0 8 * * *", cfg.Schedule.RotateCron)
	assert.Equal(t, "0 0 9 * * 1", cfg.Schedule.DigestCron)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.TelegramEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
  allowed_origins: ["https://pulse.example.com"]
telegram:
  bot_token: "tok"
  chat_id: "42"
scenarios:
  source: file
  file: /etc/fomcpulse/scenarios.yaml
database:
  driver: postgres
  dsn: postgres://localhost/fomc
redis:
  addr: localhost:6379
  db: 2
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"https://pulse.example.com"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.TelegramEnabled())
	assert.Equal(t, "/etc/fomcpulse/scenarios.yaml", cfg.Scenarios.File)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/fomc", cfg.Database.DSN)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \":9090\"\n")
	t.Setenv("HTTP_ADDR", ":7070")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("SCENARIO_SOURCE", "http")
	t.Setenv("SCENARIO_BASE_URL", "https://scenarios.example.com")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("DB_DRIVER", "none")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "http", cfg.Scenarios.Source)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Empty(t, cfg.Database.DSN)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [unterminated"))
	assert.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"unknown source", func(c *Config) { c.Scenarios.Source = "ftp" }, "scenarios.source"},
		{"http without url", func(c *Config) { c.Scenarios.Source = "http" }, "base_url"},
		{"file without path", func(c *Config) { c.Scenarios.Source = "file"; c.Scenarios.File = "" }, "scenarios.file"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "database.driver"},
		{"token without chat", func(c *Config) { c.Telegram.BotToken = "tok" }, "chat_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.applyDefaults()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}
