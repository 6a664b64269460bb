package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"libreader/internal/config"
	"libreader/internal/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server exposes the library reader over HTTP.
type Server struct {
	cfg           *config.Config
	router        *gin.Engine
	fetcher       Fetcher
	metrics       *metrics.Metrics
	log           *zap.Logger
	version       string
	scrapeTimeout time.Duration
}

// New creates a server and registers its routes.
func New(cfg *config.Config, fetcher Fetcher, m *metrics.Metrics, log *zap.Logger, version string) *Server {
	if cfg.Logging.Development {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:           cfg,
		router:        gin.New(),
		fetcher:       fetcher,
		metrics:       m,
		log:           log,
		version:       version,
		scrapeTimeout: cfg.Browser.ScrapeTimeout,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := s.router
	r.Use(Recovery(s.log))
	r.Use(RequestID())
	r.Use(RequestLogger(s.log))
	r.Use(CORS(s.cfg.Server.CORSOrigins))
	if s.metrics != nil {
		r.Use(s.metrics.Middleware())
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	r.GET("/healthz", s.Health)
	r.GET("/regions", s.Regions)

	library := []gin.HandlerFunc{s.Library}
	if s.cfg.RateLimit.Enabled {
		library = append([]gin.HandlerFunc{RateLimit(s.cfg.RateLimit.RequestsPerSecond, s.cfg.RateLimit.Burst)}, library...)
	}
	r.GET("/library", library...)
	r.POST("/library", library...)
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.scrapeTimeout + 10*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.scrapeTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
