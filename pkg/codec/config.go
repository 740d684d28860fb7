package codec

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds render engine parameters.
type Config struct {
	DPI           int    `toml:"dpi"`
	RenderTimeout string `toml:"render_timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	DPI           string
	RenderTimeout string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.DPI != 0 {
		c.DPI = overlay.DPI
	}
	if overlay.RenderTimeout != "" {
		c.RenderTimeout = overlay.RenderTimeout
	}
}

// RenderTimeoutDuration returns RenderTimeout as a time.Duration.
func (c *Config) RenderTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RenderTimeout)
	return d
}

func (c *Config) loadDefaults() {
	if c.DPI == 0 {
		c.DPI = 150
	}
	if c.RenderTimeout == "" {
		c.RenderTimeout = "30s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.DPI != "" {
		if v := os.Getenv(env.DPI); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.DPI = n
			}
		}
	}
	if env.RenderTimeout != "" {
		if v := os.Getenv(env.RenderTimeout); v != "" {
			c.RenderTimeout = v
		}
	}
}

func (c *Config) validate() error {
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be positive")
	}
	if _, err := time.ParseDuration(c.RenderTimeout); err != nil {
		return fmt.Errorf("invalid render_timeout: %w", err)
	}
	return nil
}
