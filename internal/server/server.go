// Package server exposes the plan calculator over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/theirongolddev/debtburn/internal/store"
)

// Config configures a Server. Zero values fall back to defaults.
type Config struct {
	Addr       string
	RateLimit  int           // requests per client per window
	RateWindow time.Duration // refill period

	// Plan defaults applied when a request leaves them out.
	Years      int
	Strategy   string
	MaxPeriods int

	// History receives one record per successful plan. Optional.
	History store.History
	Logger  *zap.Logger
}

// Server serves the plan API.
type Server struct {
	cfg     Config
	log     *zap.Logger
	limiter *RateLimiter
}

// New returns a Server with defaults filled in.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8080"
	}
	if cfg.RateLimit < 1 {
		cfg.RateLimit = 60
	}
	if cfg.RateWindow <= 0 {
		cfg.RateWindow = time.Minute
	}
	if cfg.Years < 1 {
		cfg.Years = 5
	}
	if cfg.Strategy == "" {
		cfg.Strategy = "avalanche"
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Server{
		cfg:     cfg,
		log:     log,
		limiter: NewRateLimiter(cfg.RateLimit, cfg.RateWindow),
	}
}

// Handler returns the routed, rate limited and logged handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("POST /v1/plan", s.limiter.Middleware(http.HandlerFunc(s.handlePlan)))
	mux.Handle("POST /v1/compare", s.limiter.Middleware(http.HandlerFunc(s.handleCompare)))
	return logRequests(s.log, mux)
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	defer s.limiter.Stop()

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info("listening", zap.String("addr", s.cfg.Addr))

	select {
	case <-ctx.Done():
		s.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}
