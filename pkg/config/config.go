/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/binsave/pkg/codec"
	"github.com/ssargent/binsave/pkg/store"
)

// Storage backends
const (
	BackendFile   = store.BackendFile
	BackendPebble = store.BackendPebble
)

// Config represents the binsave configuration
type Config struct {
	Storage Storage     `yaml:"storage"`
	Schema  []FieldSpec `yaml:"schema"`
	Server  Server      `yaml:"server"`
	Logging Logging     `yaml:"logging"`
}

// Storage selects where the record is persisted
type Storage struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
	Key     string `yaml:"key,omitempty"` // record key, pebble only
}

// FieldSpec declares one schema field by type name
type FieldSpec struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Count int    `yaml:"count"`
}

// Server contains HTTP server configuration
type Server struct {
	Port   int    `yaml:"port"`
	Bind   string `yaml:"bind"`
	APIKey string `yaml:"api_key"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Storage: Storage{
			Backend: BackendFile,
			Path:    "./data/record.bin",
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

// SampleSchema is written by BootstrapConfig as a starting point
func SampleSchema() []FieldSpec {
	return []FieldSpec{
		{Name: "version", Type: "uint8", Count: 1},
		{Name: "flags", Type: "bools8", Count: 1},
		{Name: "counter", Type: "int32", Count: 1},
		{Name: "name", Type: "char_ascii", Count: 16},
	}
}

// LoadConfig loads configuration from the specified path
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	// Validate path to prevent directory traversal
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

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write with secure permissions (0600)
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Target returns the storage settings in the form the store package takes
func (c *Config) Target() store.TargetConfig {
	return store.TargetConfig{
		Backend: c.Storage.Backend,
		Path:    c.Storage.Path,
		Key:     c.Storage.Key,
	}
}

// Fields resolves the schema declaration into codec fields
func (c *Config) Fields() ([]codec.Field, error) {
	fields := make([]codec.Field, 0, len(c.Schema))
	for i, spec := range c.Schema {
		typ, err := codec.ParseStorageType(spec.Type)
		if err != nil {
			return nil, fmt.Errorf("schema field %d (%s): %w", i, spec.Name, err)
		}
		fields = append(fields, codec.F(spec.Name, typ, spec.Count))
	}
	return fields, nil
}

// CompileSchema compiles the configured schema
func (c *Config) CompileSchema() (*codec.Schema, error) {
	fields, err := c.Fields()
	if err != nil {
		return nil, err
	}
	schema, err := codec.Compile(fields)
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return schema, nil
}

// Validate reports the first setting that cannot be used
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile:
	case BackendPebble:
		if c.Storage.Key == "" {
			return fmt.Errorf("storage.key is required for the %s backend", BackendPebble)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		return fmt.Errorf("storage.path is required")
	}

	if len(c.Schema) == 0 {
		return fmt.Errorf("schema declares no fields")
	}
	if _, err := c.CompileSchema(); err != nil {
		return err
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// GenerateSecureKey generates a cryptographically secure random key
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// BootstrapConfig creates a new configuration with a sample schema and a
// generated API key
func BootstrapConfig(configPath string, recordPath string) (*Config, error) {
	config := DefaultConfig()
	if recordPath != "" {
		config.Storage.Path = recordPath
	}
	config.Schema = SampleSchema()

	apiKey, err := GenerateSecureKey(32) // 256 bits
	if err != nil {
		return nil, fmt.Errorf("failed to generate API key: %w", err)
	}
	config.Server.APIKey = apiKey

	// Save the configuration
	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./binsave.yaml"
	}

	// For Linux/macOS, use ~/.config/binsave/config.yaml
	configDir := filepath.Join(homeDir, ".config", "binsave")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
