// Package metrics holds the Prometheus registry and the collectors the
// front-end records into.
package metrics

import (
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "crawlerweb"

// Prom is the process registry exposed at the metrics path.
var Prom = New()

type Prometheus struct {
	registry  *prometheus.Registry
	goOnce    sync.Once
	buildOnce sync.Once

	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	pageViews *prometheus.CounterVec
	outbound  *prometheus.HistogramVec
}

func New() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Served HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of served HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		pageViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_views_total",
			Help:      "Rendered page views by route name.",
		}, []string{"name"}),
		outbound: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Latency of calls to the backend by method and status; status 0 means no response.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}

	p.registry.MustRegister(p.requests, p.latency, p.pageViews, p.outbound)
	return p
}

// WithGoCollectorRuntimeMetrics registers the Go runtime collector once.
func (p *Prometheus) WithGoCollectorRuntimeMetrics() {
	p.goOnce.Do(func() {
		p.registry.MustRegister(collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(collectors.GoRuntimeMetricsRule{Matcher: regexp.MustCompile("/.*")}),
		))
	})
}

// WithBuildInfoCollector registers the build info collector once.
func (p *Prometheus) WithBuildInfoCollector() {
	p.buildOnce.Do(func() {
		p.registry.MustRegister(collectors.NewBuildInfoCollector())
	})
}

func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// PageView counts one rendered view.
func (p *Prometheus) PageView(name string) {
	p.pageViews.WithLabelValues(name).Inc()
}

// PageViews returns the counter behind PageView for name.
func (p *Prometheus) PageViews(name string) prometheus.Counter {
	return p.pageViews.WithLabelValues(name)
}

// ObserveBackend matches the khttp.Observer signature.
func (p *Prometheus) ObserveBackend(method string, status int, elapsed time.Duration) {
	p.outbound.WithLabelValues(method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Middleware records every served request. Unmatched paths share the route
// label "<no route>" to keep cardinality bounded.
func (p *Prometheus) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "<no route>"
		}
		p.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		p.latency.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
