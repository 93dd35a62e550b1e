package config

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/kochabx/crawlerweb/core/tag"
	"github.com/kochabx/crawlerweb/core/validator"
	"github.com/kochabx/crawlerweb/errors"
)

// FileLoader reads a YAML/JSON/TOML file through viper. Environment variables
// override file values, with "." in keys mapped to "_".
type FileLoader struct {
	viper    *viper.Viper
	validate validator.Validator
}

// NewFileLoader searches paths for name. A name containing a directory, or an
// empty paths list, is treated as an explicit file.
func NewFileLoader(name string, paths []string, v *viper.Viper, validate validator.Validator) *FileLoader {
	if len(paths) == 0 || filepath.Base(name) != name {
		v.SetConfigFile(name)
	} else {
		for _, p := range paths {
			v.AddConfigPath(p)
		}
		v.SetConfigName(strings.TrimSuffix(name, filepath.Ext(name)))
		if ext := strings.TrimPrefix(filepath.Ext(name), "."); ext != "" {
			v.SetConfigType(ext)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &FileLoader{
		viper:    v,
		validate: validate,
	}
}

// Load applies tag defaults, overlays the file and environment, then validates.
func (l *FileLoader) Load(target any) error {
	if err := tag.ApplyDefaults(target); err != nil {
		return errors.Wrap(err, 500, "failed to apply defaults")
	}

	if err := l.viper.ReadInConfig(); err != nil {
		return errors.Wrap(err, 404, "config file not found")
	}

	if err := l.viper.Unmarshal(target); err != nil {
		return errors.Wrap(err, 500, "config parse error")
	}

	if l.validate != nil {
		if err := l.validate.Struct(target); err != nil {
			return errors.Wrap(err, 400, "config validation failed")
		}
	}

	return nil
}

// Used returns the file viper actually read.
func (l *FileLoader) Used() string {
	return l.viper.ConfigFileUsed()
}

func (l *FileLoader) Watch(callback func()) error {
	l.viper.OnConfigChange(func(e fsnotify.Event) {
		if callback != nil && e.Has(fsnotify.Write|fsnotify.Create) {
			callback()
		}
	})
	l.viper.WatchConfig()
	return nil
}
