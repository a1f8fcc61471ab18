// Package config handles configuration for readingchat.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/diogo/readingchat/internal/models"
)

// Environment variables that override the config file
const (
	EnvEndpoint = "READINGCHAT_ENDPOINT"
	EnvCourseID = "READINGCHAT_COURSE_ID"
	EnvTenantID = "READINGCHAT_TENANT_ID"
)

const (
	configDirName  = ".readingchat"
	configFileName = "config.yaml"
	logFileName    = "readingchat.log"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `yaml:"style"`              // "dark", "light", "dracula", "notty" or path to JSON theme
	EnableEmoji      bool   `yaml:"enable_emoji"`       // Convert :emoji: to unicode
	PreserveNewLines bool   `yaml:"preserve_newlines"`  // Preserve original line breaks
	TableWrap        bool   `yaml:"table_wrap"`         // Enable word wrap in table cells
	InlineTableLinks bool   `yaml:"inline_table_links"` // Render links inline in tables
}

// Config represents the user configuration
type Config struct {
	// Endpoint is the backend base URL. The chat and health routes are
	// resolved against it.
	Endpoint string `yaml:"endpoint"`
	CourseID string `yaml:"course_id"`
	TenantID string `yaml:"tenant_id"`
	// TimeoutSeconds bounds a single request at the transport. Zero leaves
	// the transport default in place.
	TimeoutSeconds  int            `yaml:"timeout_seconds"`
	CopyToClipboard bool           `yaml:"copy_to_clipboard"`
	TUITheme        string         `yaml:"tui_theme,omitempty"`
	LogLevel        string         `yaml:"log_level,omitempty"`
	LogFile         string         `yaml:"log_file,omitempty"`
	Markdown        MarkdownConfig `yaml:"markdown"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		Endpoint:        models.DefaultEndpoint,
		CourseID:        models.DefaultCourseID,
		TenantID:        models.DefaultTenantID,
		TimeoutSeconds:  0,
		CopyToClipboard: false,
		TUITheme:        "tokyonight",
		LogLevel:        "info",
		LogFile:         filepath.Join(homeDir, configDirName, logFileName),
		Markdown:        DefaultMarkdownConfig(),
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, configDirName), nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFileName), nil
}

// LoadConfigFrom reads a config file. A missing file yields the defaults.
func LoadConfigFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides config values with any set environment variables
func ApplyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvEndpoint)); v != "" {
		cfg.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCourseID)); v != "" {
		cfg.CourseID = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTenantID)); v != "" {
		cfg.TenantID = v
	}
}

// SaveConfigTo writes the configuration to path, creating its directory
func SaveConfigTo(path string, cfg Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Marshal encodes the configuration as YAML
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Validate checks that the configuration can be used to reach a backend
func (c Config) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return fmt.Errorf("endpoint cannot be empty")
	}

	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", c.Endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid endpoint %q: scheme must be http or https", c.Endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid endpoint %q: missing host", c.Endpoint)
	}

	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds cannot be negative")
	}

	return nil
}
