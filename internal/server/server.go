package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bobmcallan/betafolio/internal/app"
	"github.com/bobmcallan/betafolio/internal/common"
)

// Server wraps the HTTP server and application reference.
type Server struct {
	app    *app.App
	server *http.Server
	logger *common.Logger
}

// NewServer creates a new HTTP REST API server.
func NewServer(a *app.App) *Server {
	s := &Server{
		app:    a,
		logger: a.Logger,
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	handler := applyMiddleware(mux, a.Logger)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", a.Config.Server.Host, a.Config.Server.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server (blocking).
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Portfolio
	mux.HandleFunc("/api/portfolio", s.handlePortfolio)
	mux.HandleFunc("/api/portfolio/holdings", s.handleHoldingAdd)
	mux.HandleFunc("/api/portfolio/holdings/", s.handleHoldingRemove)
	mux.HandleFunc("/api/portfolio/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/portfolio/report", s.handleReport)
	mux.HandleFunc("/api/portfolio/chart", s.handleChart)

	// Watchlist
	mux.HandleFunc("/api/watchlist", s.handleWatchlist)
	mux.HandleFunc("/api/watchlist/", s.handleWatchlistRemove)
	mux.HandleFunc("/api/watchlist/stocks", s.handleWatchlistStocks)
	mux.HandleFunc("/api/watchlist/sectors", s.handleWatchlistSectors)
	mux.HandleFunc("/api/watchlist/diversification", s.handleWatchlistDiversification)

	// Recommendations
	mux.HandleFunc("/api/recommendations", s.handleRecommendations)
}
