package config

import "strconv"

// Environment variable names read by ApplyEnv.
const (
	EnvGoogleAPIKey = "GOOGLE_API_KEY"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvModel        = "GEMINI_MODEL"
	EnvStorage      = "RESUME_STORAGE"
	EnvOutputDir    = "RESUME_OUTPUT_DIR"
	EnvS3Bucket     = "RESUME_S3_BUCKET"
	EnvS3Region     = "AWS_REGION"
	EnvS3Prefix     = "RESUME_S3_PREFIX"
	EnvPort         = "PORT"
)

// ApplyEnv overwrites fields with any non-empty environment values.
// GOOGLE_API_KEY wins over GEMINI_API_KEY when both are set.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvGoogleAPIKey); v != "" {
		c.APIKey = v
	} else if v := getenv(EnvGeminiAPIKey); v != "" {
		c.APIKey = v
	}
	if v := getenv(EnvModel); v != "" {
		c.Model = v
	}
	if v := getenv(EnvStorage); v != "" {
		c.Storage = v
	}
	if v := getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := getenv(EnvS3Bucket); v != "" {
		c.S3Bucket = v
	}
	if v := getenv(EnvS3Region); v != "" {
		c.S3Region = v
	}
	if v := getenv(EnvS3Prefix); v != "" {
		c.S3Prefix = v
	}
	if v := getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
}

// Load resolves the effective configuration: the JSON file at path (if any),
// overlaid with environment values, with remaining gaps filled from Defaults.
func Load(path string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.ApplyEnv(getenv)
	merged := cfg.MergeWithDefaults(Defaults())

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}
