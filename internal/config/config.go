// Package config provides layered configuration for condense: an optional
// base TOML file, an environment-specific overlay, and environment variable
// overrides, finalized with defaults and validation.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/condense/pkg/codec"
)

const (
	BaseConfigFile       = "condense.toml"
	OverlayConfigPattern = "condense.%s.toml"

	EnvCondenseEnv       = "CONDENSE_ENV"
	EnvCondenseInputDir  = "CONDENSE_INPUT_DIR"
	EnvCondenseOutputDir = "CONDENSE_OUTPUT_DIR"
	EnvCondenseVersion   = "CONDENSE_VERSION"
)

var codecEnv = &codec.Env{
	DPI:           "CONDENSE_CODEC_DPI",
	RenderTimeout: "CONDENSE_CODEC_RENDER_TIMEOUT",
}

// Config is the root configuration for condense. Search thresholds are
// compiled-in constants and deliberately absent here.
type Config struct {
	InputDir  string       `toml:"input_dir"`
	OutputDir string       `toml:"output_dir"`
	Codec     codec.Config `toml:"codec"`
	Version   string       `toml:"version"`
}

// Env returns the CONDENSE_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvCondenseEnv); env != "" {
		return env
	}
	return "local"
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no condense.toml exists, defaults and
// environment variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.InputDir != "" {
		c.InputDir = overlay.InputDir
	}
	if overlay.OutputDir != "" {
		c.OutputDir = overlay.OutputDir
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Codec.Merge(&overlay.Codec)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Codec.Finalize(codecEnv); err != nil {
		return fmt.Errorf("codec: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.InputDir == "" {
		c.InputDir = "files_input"
	}
	if c.OutputDir == "" {
		c.OutputDir = "files_output"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvCondenseInputDir); v != "" {
		c.InputDir = v
	}
	if v := os.Getenv(EnvCondenseOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvCondenseVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if c.InputDir == c.OutputDir {
		return fmt.Errorf("input_dir and output_dir must differ")
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvCondenseEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
