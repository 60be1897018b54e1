package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is read from a YAML file under the user's home directory.
// All fields are optional; defaults are applied by the accessor methods.
//
// Example (~/.clarity/config.yaml):
//
// server:
//   host: 127.0.0.1
//   port: 8091
// database:
//   path: ~/.clarity/clarity.db
//   dsn: ""            # set a postgres DSN to use postgres instead of sqlite
// uploads:
//   dir: ~/.clarity/uploads
// gemini:
//   model: gemini-1.5-pro
//   timeout_seconds: 120
// redis:
//   addr: ""           # set host:port to enable the file read cache
//
// Notes:
// - If the config file does not exist, Load returns defaults without error.
// - If the config file exists but cannot be parsed, Load returns an error.
// - The Gemini API key is never read from the file; it comes from GEMINI_API_KEY.

type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Uploads  UploadsConfig  `yaml:"uploads"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Redis    RedisConfig    `yaml:"redis"`
}

type ServerConfig struct {
	Host *string `yaml:"host"`
	Port *int    `yaml:"port"`
}

type DatabaseConfig struct {
	Path *string `yaml:"path"`
	DSN  *string `yaml:"dsn"`
}

type UploadsConfig struct {
	Dir *string `yaml:"dir"`
}

type GeminiConfig struct {
	Model          *string `yaml:"model"`
	TimeoutSeconds *int    `yaml:"timeout_seconds"`
}

type RedisConfig struct {
	Addr *string `yaml:"addr"`
}

const (
	DefaultHost           = "127.0.0.1"
	DefaultPort           = 8091
	DefaultGeminiModel    = "gemini-1.5-pro"
	DefaultTimeoutSeconds = 120
)

// DefaultPaths returns the config dir and config file path.
func DefaultPaths() (configDir string, configFile string, err error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", "", fmt.Errorf("get user home dir: %w", err)
	}
	configDir = filepath.Join(home, ".clarity")
	configFile = filepath.Join(configDir, "config.yaml")
	return configDir, configFile, nil
}

// Load reads ~/.clarity/config.yaml.
// If the file doesn't exist, it returns a default config and nil error.
func Load() (*AppConfig, string, error) {
	_, configFile, err := DefaultPaths()
	if err != nil {
		return nil, "", err
	}

	cfg := &AppConfig{}

	b, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, configFile, nil
		}
		return nil, "", fmt.Errorf("read config file %s: %w", configFile, err)
	}

	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, "", fmt.Errorf("parse yaml config %s: %w", configFile, err)
	}

	if strings.TrimSpace(cfg.Host()) == "" {
		return nil, "", fmt.Errorf("invalid server.host (empty) in %s", configFile)
	}

	port := cfg.Port()
	if port < 1 || port > 65535 {
		return nil, "", fmt.Errorf("invalid server.port %d in %s", port, configFile)
	}

	return cfg, configFile, nil
}

// EnsureDefaultConfig writes a default config file if it doesn't already exist.
// It is safe to call on startup.
func EnsureDefaultConfig() (string, error) {
	configDir, configFile, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(configFile); err == nil {
		return configFile, nil
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("create config dir %s: %w", configDir, err)
	}

	defaultCfg := AppConfig{Server: ServerConfig{Host: ptr(DefaultHost), Port: ptr(DefaultPort)}}
	b, err := yaml.Marshal(&defaultCfg)
	if err != nil {
		return "", fmt.Errorf("marshal default config: %w", err)
	}

	if err := os.WriteFile(configFile, b, 0o600); err != nil {
		return "", fmt.Errorf("write default config file %s: %w", configFile, err)
	}

	return configFile, nil
}

func (c *AppConfig) Host() string {
	if c == nil || c.Server.Host == nil {
		return DefaultHost
	}
	v := strings.TrimSpace(*c.Server.Host)
	if v == "" {
		return DefaultHost
	}
	return v
}

func (c *AppConfig) Port() int {
	if c == nil || c.Server.Port == nil {
		return DefaultPort
	}
	return *c.Server.Port
}

// DatabasePath returns the sqlite file path, defaulting to a file under the
// config dir. Ignored when DatabaseDSN is set.
func (c *AppConfig) DatabasePath() string {
	if c != nil && c.Database.Path != nil && strings.TrimSpace(*c.Database.Path) != "" {
		return *c.Database.Path
	}
	configDir, _, err := DefaultPaths()
	if err != nil {
		return "clarity.db"
	}
	return filepath.Join(configDir, "clarity.db")
}

// DatabaseDSN returns the postgres DSN, or "" when sqlite should be used.
func (c *AppConfig) DatabaseDSN() string {
	if c == nil || c.Database.DSN == nil {
		return ""
	}
	return strings.TrimSpace(*c.Database.DSN)
}

// UploadsDir returns the directory backing stored media files.
func (c *AppConfig) UploadsDir() string {
	if c != nil && c.Uploads.Dir != nil && strings.TrimSpace(*c.Uploads.Dir) != "" {
		return *c.Uploads.Dir
	}
	configDir, _, err := DefaultPaths()
	if err != nil {
		return "uploads"
	}
	return filepath.Join(configDir, "uploads")
}

func (c *AppConfig) GeminiModel() string {
	if c == nil || c.Gemini.Model == nil || strings.TrimSpace(*c.Gemini.Model) == "" {
		return DefaultGeminiModel
	}
	return *c.Gemini.Model
}

func (c *AppConfig) GeminiTimeoutSeconds() int {
	if c == nil || c.Gemini.TimeoutSeconds == nil || *c.Gemini.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds
	}
	return *c.Gemini.TimeoutSeconds
}

// GeminiAPIKey reads the credential from the environment. An empty value means
// the generation client is not configured.
func (c *AppConfig) GeminiAPIKey() string {
	return strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
}

func (c *AppConfig) RedisAddr() string {
	if c == nil || c.Redis.Addr == nil {
		return ""
	}
	return strings.TrimSpace(*c.Redis.Addr)
}

func ptr[T any](v T) *T { return &v }
