// Package config loads a typed configuration struct with viper.
package config

import (
	"sync"

	"github.com/spf13/viper"

	"github.com/kochabx/crawlerweb/core/validator"
	"github.com/kochabx/crawlerweb/log"
)

// Config binds a loader to a target struct.
type Config struct {
	mu        sync.RWMutex
	viper     *viper.Viper
	validate  validator.Validator
	target    any
	loader    Loader
	file      string
	paths     []string
	envPrefix string
	onChange  []func()
}

// New creates a Config for target. Without WithLoader it reads config.yaml
// from the working directory (or WithPaths), or the file given with WithFile.
func New(target any, opts ...Option) *Config {
	c := &Config{
		viper:    viper.New(),
		validate: validator.Validate,
		target:   target,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.envPrefix != "" {
		c.viper.SetEnvPrefix(c.envPrefix)
	}

	if c.loader == nil {
		if c.file != "" {
			c.loader = NewFileLoader(c.file, nil, c.viper, c.validate)
		} else {
			paths := c.paths
			if len(paths) == 0 {
				paths = []string{"."}
			}
			c.loader = NewFileLoader("config.yaml", paths, c.viper, c.validate)
		}
	}

	return c
}

func (c *Config) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loader.Load(c.target)
}

// Reload loads again and runs the change hooks on success.
func (c *Config) Reload() error {
	if err := c.Load(); err != nil {
		return err
	}
	for _, fn := range c.onChange {
		fn()
	}
	return nil
}

// Read runs fn while holding the read lock so it never sees a half applied reload.
func (c *Config) Read(fn func()) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn()
}

func (c *Config) Watch() error {
	return c.loader.Watch(func() {
		log.Info().Msg("config change detected")
		if err := c.Reload(); err != nil {
			log.Error().Err(err).Msg("failed to reload config after change")
			return
		}
		log.Info().Msg("config reloaded successfully")
	})
}

func (c *Config) GetViper() *viper.Viper {
	return c.viper
}
