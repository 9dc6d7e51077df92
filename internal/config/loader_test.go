//nolint:testpackage // Testing internal loader requires same package access
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// setRequiredEnv provides the settings Validate insists on.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")
	t.Setenv("GOOGLE_REDIRECT_URL", "http://localhost:8080/auth/callback")
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Service.Port != defaultServicePort {
		t.Errorf("port: got %d, want %d", cfg.Service.Port, defaultServicePort)
	}
	if cfg.Service.Concurrency != defaultConcurrency {
		t.Errorf("concurrency: got %d, want %d", cfg.Service.Concurrency, defaultConcurrency)
	}
	if cfg.Service.MaxComments != defaultMaxComments {
		t.Errorf("max_comments: got %d, want %d", cfg.Service.MaxComments, defaultMaxComments)
	}
	if cfg.Anthropic.Model != defaultAnthropicModel {
		t.Errorf("model: got %s, want %s", cfg.Anthropic.Model, defaultAnthropicModel)
	}
	if cfg.Redis.SessionTTL != defaultSessionTTL {
		t.Errorf("session_ttl: got %s, want %s", cfg.Redis.SessionTTL, defaultSessionTTL)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	setRequiredEnv(t)

	content := `
service:
  port: 9090
  concurrency: 4
  max_comments: 50
logging:
  level: debug
redis:
  addr: redis:6379
  session_ttl: 12h
`
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Service.Port != 9090 {
		t.Errorf("port: got %d, want 9090", cfg.Service.Port)
	}
	if cfg.Service.Concurrency != 4 {
		t.Errorf("concurrency: got %d, want 4", cfg.Service.Concurrency)
	}
	if cfg.Service.MaxComments != 50 {
		t.Errorf("max_comments: got %d, want 50", cfg.Service.MaxComments)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level: got %s, want debug", cfg.Logging.Level)
	}
	if cfg.Redis.Addr != "redis:6379" {
		t.Errorf("redis addr: got %s", cfg.Redis.Addr)
	}
	if cfg.Redis.SessionTTL != 12*time.Hour {
		t.Errorf("session_ttl: got %s, want 12h", cfg.Redis.SessionTTL)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TUBEWARDEN_PORT", "7070")
	t.Setenv("APP_DEBUG", "true")
	t.Setenv("ANTHROPIC_MODEL", "claude-3-5-sonnet-latest")

	content := `
service:
  port: 9090
`
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Service.Port != 7070 {
		t.Errorf("env must override file: got %d, want 7070", cfg.Service.Port)
	}
	if !cfg.Service.Debug {
		t.Error("APP_DEBUG=true must enable debug")
	}
	if cfg.Anthropic.Model != "claude-3-5-sonnet-latest" {
		t.Errorf("model: got %s", cfg.Anthropic.Model)
	}
}

func TestLoad_MissingRequiredSettings(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("GOOGLE_CLIENT_SECRET", "")
	t.Setenv("GOOGLE_REDIRECT_URL", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Error("expected validation error without credentials")
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	if got := GetConfigPath("config.yml"); got != "config.yml" {
		t.Errorf("default path: got %s", got)
	}

	t.Setenv("CONFIG_PATH", "/etc/tubewarden/config.yml")
	if got := GetConfigPath("config.yml"); got != "/etc/tubewarden/config.yml" {
		t.Errorf("env path: got %s", got)
	}
}
