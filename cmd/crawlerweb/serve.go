package main

import (
	"context"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kochabx/crawlerweb/api"
	"github.com/kochabx/crawlerweb/app"
	"github.com/kochabx/crawlerweb/conf"
	"github.com/kochabx/crawlerweb/config"
	_ "github.com/kochabx/crawlerweb/docs"
	"github.com/kochabx/crawlerweb/errors"
	"github.com/kochabx/crawlerweb/log"
	"github.com/kochabx/crawlerweb/request"
	"github.com/kochabx/crawlerweb/router"
	thttp "github.com/kochabx/crawlerweb/transport/http"
	"github.com/kochabx/crawlerweb/transport/http/metrics"
	"github.com/kochabx/crawlerweb/transport/http/middleware"
	"github.com/kochabx/crawlerweb/view"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pages and proxy /api to the backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg *conf.App
			cfg, c, err := opts.load(config.WithOnChange(func() {
				if cfg != nil {
					applyLogLevel(cfg.Log.Level)
				}
			}))
			if err != nil {
				return err
			}
			if watch && c != nil {
				if err := c.Watch(); err != nil {
					return err
				}
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "reload the log level when the config file changes")
	return cmd
}

func serve(ctx context.Context, cfg *conf.App) error {
	logger, err := log.NewFromConfig(cfg.Log)
	if err != nil {
		return err
	}
	log.SetGlobalLogger(logger)
	middleware.SetLogger(logger)

	gin.SetMode(cfg.Server.Mode)

	req := newRequester(cfg)
	request.SetDefault(req)

	engine, err := newEngine(cfg, api.New("", req))
	if err != nil {
		return err
	}

	server := thttp.NewServer(cfg.Server.Addr, engine,
		thttp.WithMeta(thttp.Meta{Name: cfg.Name}),
		thttp.WithMetricsOptions(cfg.Metrics),
		thttp.WithHealthOptions(cfg.Health),
		thttp.WithSwagOptions(cfg.Swagger),
		thttp.WithTimeouts(cfg.Timeouts),
	)

	application := app.New(
		app.WithName(cfg.Name),
		app.WithContext(ctx),
		app.WithServers(server),
		app.WithClose("logger", func(context.Context) error {
			return logger.Close()
		}, 0),
	)
	return application.Start()
}

// newEngine builds the gin engine with middleware, the backend proxy and the
// route table. The metrics, health and swagger endpoints are added by the
// transport server.
func newEngine(cfg *conf.App, client *api.Client) (*gin.Engine, error) {
	if err := router.Routes.Validate(); err != nil {
		return nil, err
	}

	views, err := view.Default(router.Routes.Views(),
		view.WithBasePath(cfg.Server.BasePath),
		view.WithLoader("home.html", view.HomeLoader(client.Documents())),
	)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(cfg.Recovery),
		middleware.RequestID(),
		middleware.Logger(),
		metrics.Prom.Middleware(),
	)
	if cfg.Secure.Enabled {
		r.Use(middleware.Secure(cfg.Secure))
	}
	if cfg.Cors.Enabled {
		r.Use(middleware.CorsWithConfig(cfg.Cors))
	}

	if cfg.Proxy.Enabled {
		target, err := url.Parse(cfg.Backend.BaseURL)
		if err != nil {
			return nil, errors.Wrap(err, 400, "invalid backend base url")
		}
		middleware.MountProxy(r, cfg.Proxy.Prefix, target)
	}

	router.Mount(r, router.Routes, views)
	return r, nil
}

func applyLogLevel(level string) {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		log.Warn().Err(err).Str("level", level).Msg("ignoring invalid log level")
		return
	}
	log.SetGlobalLevel(l)
	log.Info().Str("level", l.String()).Msg("log level updated")
}
