// Package server exposes the tracker over a JSON HTTP API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourusername/prop-tracker/internal/config"
	"github.com/yourusername/prop-tracker/internal/logger"
	"github.com/yourusername/prop-tracker/internal/metrics"
	"github.com/yourusername/prop-tracker/internal/session"
	"github.com/yourusername/prop-tracker/internal/store"
)

// Server is the JSON API server for the tracker
type Server struct {
	cfg     *config.Config
	logger  *logrus.Logger
	journal *logger.JournalLogger
	state   *session.State
	store   store.Store
	limiter *rate.Limiter
	server  *http.Server
}

// New creates a server around the shared session state and persistence
func New(cfg *config.Config, log *logrus.Logger, state *session.State, st store.Store) *Server {
	rps := cfg.Server.RateLimitRPS
	if rps <= 0 {
		rps = 50
	}
	burst := cfg.Server.RateLimitBurst
	if burst <= 0 {
		burst = 100
	}

	s := &Server{
		cfg:     cfg,
		logger:  log,
		journal: logger.NewJournalLogger(log),
		state:   state,
		store:   st,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/accounts", s.handleAccounts)
	mux.HandleFunc("/api/metrics", s.handleMetrics)
	mux.HandleFunc("/api/drawdown", s.handleDrawdown)
	mux.HandleFunc("/api/drawdown/stats", s.handleDrawdownStats)
	mux.HandleFunc("/api/equity-curve", s.handleEquityCurve)
	mux.HandleFunc("/api/correlation", s.handleCorrelation)
	mux.HandleFunc("/api/analytics/breakdowns", s.handleBreakdowns)
	mux.HandleFunc("/api/risk/position-size", s.handlePositionSize)
	mux.HandleFunc("/api/trades", s.handleTrades)
	mux.HandleFunc("/api/daily", s.handleDaily)
	if cfg.Metrics.Enabled {
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		mux.Handle(path, metrics.Handler())
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.withMiddleware(mux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// persist writes the full session snapshot through the store
func (s *Server) persist(ctx context.Context) error {
	start := time.Now()
	err := session.Snapshot(ctx, s.state, s.store)
	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.RecordSnapshot(status, time.Since(start).Seconds())
	if err == nil {
		s.journal.LogSnapshotSaved(s.cfg.Storage.Backend,
			len(s.state.AllTrades()), len(s.state.AllDaily()), len(s.state.Accounts()))
	}
	return err
}

// Start runs the server until the context is cancelled, then shuts down
// gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.server.Addr).Info("API server starting")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("api server failed: %w", err)
	case <-ctx.Done():
		s.logger.Info("API server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	}
}
