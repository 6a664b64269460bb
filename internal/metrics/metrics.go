package metrics

import (
	"net/http"
	"strconv"
	"time"

	"libreader/internal/scraper"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	ScrapesTotal   *prometheus.CounterVec
	ScrapeDuration *prometheus.HistogramVec
}

// New creates a metrics set on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "libreader_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "libreader_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: []float64{.05, .1, .5, 1, 5, 10, 30, 60, 120},
			},
			[]string{"method", "path"},
		),
		ScrapesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "libreader_scrapes_total",
				Help: "List fetches by region, list and outcome",
			},
			[]string{"region", "list", "outcome"},
		),
		ScrapeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "libreader_scrape_duration_seconds",
				Help:    "Time to log in and read one list",
				Buckets: []float64{1, 2, 5, 10, 20, 30, 60, 90},
			},
			[]string{"region", "list"},
		),
	}
}

// ObserveScrape implements scraper.Observer.
func (m *Metrics) ObserveScrape(region string, list scraper.List, outcome string, elapsed time.Duration) {
	m.ScrapesTotal.WithLabelValues(region, string(list), outcome).Inc()
	m.ScrapeDuration.WithLabelValues(region, string(list)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware creates a Gin middleware for HTTP metrics.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
