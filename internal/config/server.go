package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds the settings of the HTTP API. Keys missing from a loaded
// file keep the defaults of DefaultServerConfig.
type ServerConfig struct {
	Listen       string        `yaml:"listen"`
	RateLimit    float64       `yaml:"rateLimit"` // requests per second per client, 0 disables
	RateBurst    int           `yaml:"rateBurst"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	IdleTimeout  time.Duration `yaml:"idleTimeout"`
}

// DefaultServerConfig returns the configuration used when no file is given.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Listen:       DefaultListenAddr,
		RateLimit:    DefaultRateLimit,
		RateBurst:    DefaultRateBurst,
		ReadTimeout:  ServerReadTimeout,
		WriteTimeout: ServerWriteTimeout,
		IdleTimeout:  ServerIdleTimeout,
	}
}

// LoadServerConfig reads a YAML configuration file on top of the defaults.
// An empty path returns the defaults unchanged.
func LoadServerConfig(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", ErrConfigRead, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", ErrConfigParse, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports settings the server cannot start with.
func (c ServerConfig) Validate() error {
	if c.Listen == "" {
		return errors.New(ErrListenRequired)
	}
	if c.RateLimit < 0 || c.RateBurst < 0 {
		return fmt.Errorf("%s: negative rate limit", ErrConfigParse)
	}
	return nil
}
