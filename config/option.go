package config

import (
	"github.com/spf13/viper"

	"github.com/kochabx/crawlerweb/core/validator"
)

// Option configures a Config.
type Option func(*Config)

func WithViper(v *viper.Viper) Option {
	return func(c *Config) {
		c.viper = v
	}
}

func WithValidator(v validator.Validator) Option {
	return func(c *Config) {
		c.validate = v
	}
}

func WithLoader(loader Loader) Option {
	return func(c *Config) {
		c.loader = loader
	}
}

// WithFile loads an explicit file instead of searching for config.yaml.
func WithFile(file string) Option {
	return func(c *Config) {
		c.file = file
	}
}

// WithPaths sets the directories searched for config.yaml.
func WithPaths(paths ...string) Option {
	return func(c *Config) {
		c.paths = paths
	}
}

// WithEnvPrefix scopes environment overrides, e.g. CRAWLERWEB_SERVER_ADDR.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithOnChange registers a hook run after every successful reload.
func WithOnChange(fn func()) Option {
	return func(c *Config) {
		c.onChange = append(c.onChange, fn)
	}
}
