package config

import (
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Logger *ConfigLogger `mapstructure:"logger"`
	Server *ConfigServer `mapstructure:"server"`
	Export *ConfigExport `mapstructure:"export"`
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestInitConfig_Defaults(t *testing.T) {
	path := writeConfigFile(t, `
logger:
  level: "${TEST_LOG_LEVEL:-debug}"
server:
  port: ${TEST_HTTP_PORT:-9090}
export:
  line_height: 18
`)

	cfg, err := InitConfig[testConfig](path)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	if cfg.Logger.Level != "debug" {
		t.Errorf("Expected default log level, got %q", cfg.Logger.Level)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Expected default port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Export.LineHeight != 18 {
		t.Errorf("Expected line height 18, got %v", cfg.Export.LineHeight)
	}
}

func TestInitConfig_EnvOverride(t *testing.T) {
	t.Setenv("TEST_LOG_LEVEL", "warn")
	t.Setenv("TEST_HTTP_PORT", "8181")

	path := writeConfigFile(t, `
logger:
  level: "${TEST_LOG_LEVEL:-debug}"
server:
  port: ${TEST_HTTP_PORT:-9090}
`)

	cfg, err := InitConfig[testConfig](path)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	if cfg.Logger.Level != "warn" {
		t.Errorf("Expected env override, got %q", cfg.Logger.Level)
	}
	if cfg.Server.Port != 8181 {
		t.Errorf("Expected env override port 8181, got %d", cfg.Server.Port)
	}
}

func TestInitConfig_MissingFile(t *testing.T) {
	if _, err := InitConfig[testConfig]("/nonexistent/config.yml"); err == nil {
		t.Error("Expected error for missing config file")
	}
}
