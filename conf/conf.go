// Package conf is the application configuration of crawlerweb.
package conf

import (
	"time"

	"github.com/kochabx/crawlerweb/config"
	"github.com/kochabx/crawlerweb/core/tag"
	"github.com/kochabx/crawlerweb/log"
	thttp "github.com/kochabx/crawlerweb/transport/http"
	"github.com/kochabx/crawlerweb/transport/http/middleware"
)

// EnvPrefix scopes environment overrides, e.g. CRAWLERWEB_BACKEND_BASE_URL.
const EnvPrefix = "crawlerweb"

type App struct {
	Name     string                    `json:"name" mapstructure:"name" default:"crawlerweb"`
	Server   Server                    `json:"server" mapstructure:"server"`
	Backend  Backend                   `json:"backend" mapstructure:"backend"`
	Log      log.Config                `json:"log" mapstructure:"log"`
	Metrics  thttp.MetricsOption       `json:"metrics" mapstructure:"metrics"`
	Health   thttp.HealthOption        `json:"health" mapstructure:"health"`
	Swagger  thttp.SwagOption          `json:"swagger" mapstructure:"swagger"`
	Timeouts thttp.TimeoutOption       `json:"timeouts" mapstructure:"timeouts"`
	Cors     middleware.CorsConfig     `json:"cors" mapstructure:"cors"`
	Secure   middleware.SecureConfig   `json:"secure" mapstructure:"secure"`
	Proxy    middleware.ProxyConfig    `json:"proxy" mapstructure:"proxy"`
	Recovery middleware.RecoveryConfig `json:"recovery" mapstructure:"recovery"`
}

type Server struct {
	Addr string `json:"addr" mapstructure:"addr" default:":3000" validate:"hostname_port"`
	Mode string `json:"mode" mapstructure:"mode" default:"release" validate:"oneof=debug release test"`
	// BasePath prefixes links rendered into pages.
	BasePath string `json:"base_path" mapstructure:"base_path"`
}

// Backend is the crawler-agent API the pages and the proxy talk to.
type Backend struct {
	BaseURL string        `json:"base_url" mapstructure:"base_url" default:"http://127.0.0.1:8080" validate:"required,url"`
	Timeout time.Duration `json:"timeout" mapstructure:"timeout" default:"30s" validate:"gt=0"`
	Trace   bool          `json:"trace" mapstructure:"trace"`
}

// Load reads file into a new App. An empty file searches for config.yaml in
// the working directory and ./conf.
func Load(file string, opts ...config.Option) (*App, *config.Config, error) {
	app := new(App)

	opts = append([]config.Option{config.WithEnvPrefix(EnvPrefix)}, opts...)
	if file != "" {
		opts = append(opts, config.WithFile(file))
	} else {
		opts = append(opts, config.WithPaths(".", "conf"))
	}

	c := config.New(app, opts...)
	if err := c.Load(); err != nil {
		return nil, nil, err
	}
	return app, c, nil
}

// Default is the configuration used when no file is present.
func Default() *App {
	app := new(App)
	if err := tag.ApplyDefaults(app); err != nil {
		panic(err)
	}
	return app
}
