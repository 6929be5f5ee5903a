// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Storage backends for generated documents.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config represents the configuration that can be loaded from a JSON file
// and overlaid with environment variables. All fields are optional in the file.
type Config struct {
	// Credentials
	APIKey string `json:"api_key,omitempty"` // Google Gemini API key

	// Model
	Model string `json:"model,omitempty"` // Gemini model name; empty uses the standard tier

	// Output
	Storage   string `json:"storage,omitempty"`    // "local" or "s3"
	OutputDir string `json:"output_dir,omitempty"` // Root directory for the local store
	S3Bucket  string `json:"s3_bucket,omitempty"`
	S3Region  string `json:"s3_region,omitempty"`
	S3Prefix  string `json:"s3_prefix,omitempty"`

	// Server
	Port int `json:"port,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the configuration used when nothing else is specified.
func Defaults() Config {
	return Config{
		Storage:   StorageLocal,
		OutputDir: "generated",
		Port:      8080,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// The API key is not checked here; see RequireAPIKey.
func (c *Config) Validate() error {
	switch c.Storage {
	case "", StorageLocal:
	case StorageS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("config error: 's3_bucket' is required when storage is %q", StorageS3)
		}
	default:
		return fmt.Errorf("config error: unknown storage %q (want %q or %q)", c.Storage, StorageLocal, StorageS3)
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	return nil
}

// RequireAPIKey reports a ConfigurationError when no API key is configured.
// Nothing may call the completion service until this returns nil.
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return &ConfigurationError{
			Field:   "api_key",
			Message: "Google API key not found. Please check your .env file.",
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Storage == "" {
		result.Storage = defaults.Storage
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.S3Bucket == "" {
		result.S3Bucket = defaults.S3Bucket
	}
	if result.S3Region == "" {
		result.S3Region = defaults.S3Region
	}
	if result.S3Prefix == "" {
		result.S3Prefix = defaults.S3Prefix
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge

	return result
}
