package http

import (
	"time"

	"github.com/kochabx/crawlerweb/core/tag"
)

type Options struct {
	Swag    SwagOption
	Metrics MetricsOption
	Health  HealthOption
}

type SwagOption struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path" default:"/swagger/*any"`
}

func (s *SwagOption) init() error {
	return tag.ApplyDefaults(s)
}

type MetricsOption struct {
	Enabled                   bool   `json:"enabled" mapstructure:"enabled"`
	Path                      string `json:"path" mapstructure:"path" default:"/metrics"`
	EnabledGoCollector        bool   `json:"enabled_go_collector" mapstructure:"enabled_go_collector"`
	EnabledBuildInfoCollector bool   `json:"enabled_build_info_collector" mapstructure:"enabled_build_info_collector"`
}

func (m *MetricsOption) init() error {
	return tag.ApplyDefaults(m)
}

type HealthOption struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path" default:"/health"`
}

func (h *HealthOption) init() error {
	return tag.ApplyDefaults(h)
}

// TimeoutOption bounds the underlying http.Server.
type TimeoutOption struct {
	ReadHeader time.Duration `json:"read_header" mapstructure:"read_header" default:"5s"`
	Read       time.Duration `json:"read" mapstructure:"read" default:"30s"`
	Write      time.Duration `json:"write" mapstructure:"write" default:"60s"`
	Idle       time.Duration `json:"idle" mapstructure:"idle" default:"120s"`
}
