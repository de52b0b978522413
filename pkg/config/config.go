/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/stylegraph/pkg/codec"
	"github.com/ssargent/stylegraph/pkg/logging"
)

// Config represents the stylegraph configuration
type Config struct {
	Decode  Decode  `yaml:"decode" toml:"decode"`
	Library Library `yaml:"library" toml:"library"`
	Server  Server  `yaml:"server" toml:"server"`
	Logging Logging `yaml:"logging" toml:"logging"`
}

// Decode contains decode session defaults
type Decode struct {
	MaxDepth       int  `yaml:"max_depth" toml:"max_depth"`
	DefaultVersion int  `yaml:"default_version" toml:"default_version"`
	Trace          bool `yaml:"trace" toml:"trace"`
	Strict         bool `yaml:"strict" toml:"strict"`
}

// Library contains record library storage settings
type Library struct {
	DataDir string `yaml:"data_dir" toml:"data_dir"`
}

// Server contains HTTP API settings
type Server struct {
	Port   int    `yaml:"port" toml:"port"`
	Bind   string `yaml:"bind" toml:"bind"`
	APIKey string `yaml:"api_key" toml:"api_key"`
}

// Logging contains logging configuration
type Logging struct {
	Level   string `yaml:"level" toml:"level"`
	NoColor bool   `yaml:"no_color" toml:"no_color"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Decode: Decode{
			MaxDepth:       codec.DefaultMaxDepth,
			DefaultVersion: codec.DefaultVersion,
		},
		Library: Library{
			DataDir: "./data",
		},
		Server: Server{
			Port:   8080,
			Bind:   "127.0.0.1",
			APIKey: "auto",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the specified path. Files ending in
// .toml are read as TOML, everything else as YAML. Keys missing from the file
// keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if isTOML(configPath) {
		err = toml.Unmarshal(data, config)
	} else {
		err = yaml.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var data []byte
	var err error
	if isTOML(configPath) {
		var sb strings.Builder
		err = toml.NewEncoder(&sb).Encode(config)
		data = []byte(sb.String())
	} else {
		data, err = yaml.Marshal(config)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate reports every setting that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if c.Decode.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("decode.max_depth must be positive, got %d", c.Decode.MaxDepth))
	}
	if c.Decode.DefaultVersion < 0 || c.Decode.DefaultVersion > 0xffff {
		errs = append(errs, fmt.Errorf("decode.default_version out of range: %d", c.Decode.DefaultVersion))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if strings.TrimSpace(c.Library.DataDir) == "" {
		errs = append(errs, errors.New("library.data_dir is required"))
	}
	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		errs = append(errs, fmt.Errorf("logging.level %q is not a known level", c.Logging.Level))
	}
	return errors.Join(errs...)
}

// GenerateSecureKey generates a cryptographically secure random key
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// BootstrapConfig creates a new configuration with a generated API key
func BootstrapConfig(configPath string, dataDir string) (*Config, error) {
	config := DefaultConfig()
	if dataDir != "" {
		config.Library.DataDir = dataDir
	}

	apiKey, err := GenerateSecureKey(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate API key: %w", err)
	}
	config.Server.APIKey = apiKey

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./stylegraph.yaml"
	}
	return filepath.Join(homeDir, ".config", "stylegraph", "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
