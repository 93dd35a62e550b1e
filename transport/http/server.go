// Package http runs the gin engine behind an http.Server and adds the
// operational endpoints: metrics, health and swagger.
package http

import (
	"context"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/kochabx/crawlerweb/log"
	"github.com/kochabx/crawlerweb/transport"
	"github.com/kochabx/crawlerweb/transport/http/metrics"
	"github.com/kochabx/crawlerweb/transport/http/response"
)

var _ transport.Server = (*Server)(nil)

const (
	defaultName = "http"
	defaultAddr = ":3000"
)

type Meta struct {
	Name string
}

type Server struct {
	meta     Meta
	options  Options
	server   *http.Server
	listener net.Listener
}

type Option func(*Server)

func WithMeta(meta Meta) Option {
	return func(s *Server) {
		s.meta = meta
	}
}

func WithMetricsOptions(metrics MetricsOption) Option {
	return func(s *Server) {
		if err := metrics.init(); err != nil {
			log.Error().Err(err).Send()
			return
		}
		s.options.Metrics = metrics
	}
}

func WithSwagOptions(swag SwagOption) Option {
	return func(s *Server) {
		if err := swag.init(); err != nil {
			log.Error().Err(err).Send()
			return
		}
		s.options.Swag = swag
	}
}

func WithHealthOptions(health HealthOption) Option {
	return func(s *Server) {
		if err := health.init(); err != nil {
			log.Error().Err(err).Send()
			return
		}
		s.options.Health = health
	}
}

func WithTimeouts(t TimeoutOption) Option {
	return func(s *Server) {
		s.server.ReadHeaderTimeout = t.ReadHeader
		s.server.ReadTimeout = t.Read
		s.server.WriteTimeout = t.Write
		s.server.IdleTimeout = t.Idle
	}
}

// WithListener serves on l instead of listening on the configured address.
func WithListener(l net.Listener) Option {
	return func(s *Server) {
		s.listener = l
	}
}

func NewServer(addr string, handler http.Handler, opts ...Option) *Server {
	s := &Server{
		server: &http.Server{
			Addr:    addr,
			Handler: handler,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	if r, ok := handler.(*gin.Engine); ok {
		handleMetrics(s, r)
		handleSwag(s, r)
		handleHealth(s, r)
	}

	return s
}

// Run blocks serving requests. After Shutdown it returns http.ErrServerClosed.
func (s *Server) Run() error {
	if s.meta.Name == "" {
		s.meta.Name = defaultName
	}

	if s.listener != nil {
		log.Info().Msgf("%s server listening on %s", s.meta.Name, s.listener.Addr())
		return s.server.Serve(s.listener)
	}

	if !transport.ValidateAddress(s.server.Addr) {
		log.Warn().Msgf("invalid address %q, using default address: %s", s.server.Addr, defaultAddr)
		s.server.Addr = defaultAddr
	}
	log.Info().Msgf("%s server listening on %s", s.meta.Name, s.server.Addr)

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func handleMetrics(s *Server, r *gin.Engine) {
	if !s.options.Metrics.Enabled {
		return
	}
	if s.options.Metrics.EnabledGoCollector {
		metrics.Prom.WithGoCollectorRuntimeMetrics()
	}
	if s.options.Metrics.EnabledBuildInfoCollector {
		metrics.Prom.WithBuildInfoCollector()
	}
	r.GET(s.options.Metrics.Path, gin.WrapH(promhttp.HandlerFor(metrics.Prom.Registry(), promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})))
}

func handleSwag(s *Server, r *gin.Engine) {
	if s.options.Swag.Enabled {
		r.GET(s.options.Swag.Path, ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

func handleHealth(s *Server, r *gin.Engine) {
	if s.options.Health.Enabled {
		r.GET(s.options.Health.Path, func(c *gin.Context) {
			response.JSON(c, gin.H{"status": "ok", "name": s.meta.Name})
		})
	}
}
