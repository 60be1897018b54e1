package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFile_ReturnsDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, path, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if path == "" {
		t.Fatalf("expected config path")
	}
	if got := cfg.Host(); got != DefaultHost {
		t.Fatalf("cfg.Host() = %q, want %q", got, DefaultHost)
	}
	if got := cfg.Port(); got != DefaultPort {
		t.Fatalf("cfg.Port() = %d, want %d", got, DefaultPort)
	}
	if got := cfg.GeminiModel(); got != DefaultGeminiModel {
		t.Fatalf("cfg.GeminiModel() = %q, want %q", got, DefaultGeminiModel)
	}
}

func TestEnsureDefaultConfig_CreatesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := EnsureDefaultConfig()
	if err != nil {
		t.Fatalf("EnsureDefaultConfig() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to exist at %s: %v", path, err)
	}

	cfg, gotPath, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if filepath.Clean(gotPath) != filepath.Clean(path) {
		t.Fatalf("Load() path = %s, want %s", gotPath, path)
	}
	if got := cfg.Host(); got != DefaultHost {
		t.Fatalf("cfg.Host() = %q, want %q", got, DefaultHost)
	}
}

func TestLoad_ParsesConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	configDir := filepath.Join(home, ".clarity")
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	content := "server:\n  host: 0.0.0.0\n  port: 9000\ngemini:\n  model: gemini-1.5-flash\n  timeout_seconds: 30\nredis:\n  addr: localhost:6379\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := cfg.Host(); got != "0.0.0.0" {
		t.Fatalf("cfg.Host() = %q, want %q", got, "0.0.0.0")
	}
	if got := cfg.Port(); got != 9000 {
		t.Fatalf("cfg.Port() = %d, want %d", got, 9000)
	}
	if got := cfg.GeminiModel(); got != "gemini-1.5-flash" {
		t.Fatalf("cfg.GeminiModel() = %q, want %q", got, "gemini-1.5-flash")
	}
	if got := cfg.GeminiTimeoutSeconds(); got != 30 {
		t.Fatalf("cfg.GeminiTimeoutSeconds() = %d, want %d", got, 30)
	}
	if got := cfg.RedisAddr(); got != "localhost:6379" {
		t.Fatalf("cfg.RedisAddr() = %q, want %q", got, "localhost:6379")
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	configDir := filepath.Join(home, ".clarity")
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("server:\n  port: 70000\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, err := Load(); err == nil {
		t.Fatalf("Load() expected error for invalid port")
	}
}

func TestGeminiAPIKey_FromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "  test-key  ")
	cfg := &AppConfig{}
	if got := cfg.GeminiAPIKey(); got != "test-key" {
		t.Fatalf("cfg.GeminiAPIKey() = %q, want %q", got, "test-key")
	}

	t.Setenv("GEMINI_API_KEY", "")
	if got := cfg.GeminiAPIKey(); got != "" {
		t.Fatalf("cfg.GeminiAPIKey() = %q, want empty", got)
	}
}
