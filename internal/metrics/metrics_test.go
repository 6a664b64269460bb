package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"libreader/internal/scraper"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveScrape(t *testing.T) {
	m := New()
	m.ObserveScrape("nakano", scraper.ListLoans, "ok", 3*time.Second)
	m.ObserveScrape("nakano", scraper.ListLoans, "ok", time.Second)
	m.ObserveScrape("nakano", scraper.ListReservations, "layout", time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ScrapesTotal.WithLabelValues("nakano", "loans", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ScrapesTotal.WithLabelValues("nakano", "reservations", "layout")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/ping", "200")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "libreader_http_requests_total")
}
