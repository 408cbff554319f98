package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/bobmcallan/betafolio/internal/app"
	"github.com/bobmcallan/betafolio/internal/common"
	"github.com/bobmcallan/betafolio/internal/models"
)

// portfolioName resolves the portfolio name from the query string.
func portfolioName(r *http.Request) string {
	if name := r.URL.Query().Get("portfolio"); name != "" {
		return name
	}
	return app.DefaultPortfolioName
}

// writeServiceError maps service errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrEmptyPortfolio):
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), "empty_portfolio")
	case errors.Is(err, models.ErrZeroPortfolioValue):
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), "zero_portfolio_value")
	case errors.Is(err, models.ErrHoldingNotFound), errors.Is(err, models.ErrTickerNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

// handleHealth responds to GET/HEAD /api/health with {"status":"ok"}.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVersion responds to GET /api/version with version info.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// handlePortfolio handles GET /api/portfolio.
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	p, err := s.app.PortfolioService.GetPortfolio(r.Context(), portfolioName(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

type addHoldingRequest struct {
	Ticker string  `json:"ticker"`
	Shares float64 `json:"shares"`
	Price  float64 `json:"price,omitempty"` // zero fetches the current price
}

// handleHoldingAdd handles POST /api/portfolio/holdings.
func (s *Server) handleHoldingAdd(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req addHoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Ticker == "" || req.Shares <= 0 {
		WriteError(w, http.StatusBadRequest, "Invalid ticker or shares")
		return
	}

	p, err := s.app.PortfolioService.AddHolding(r.Context(), portfolioName(r), req.Ticker, req.Shares, req.Price)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

// handleHoldingRemove handles DELETE /api/portfolio/holdings/{ticker}.
func (s *Server) handleHoldingRemove(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	ticker := strings.TrimPrefix(r.URL.Path, "/api/portfolio/holdings/")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "Ticker required")
		return
	}

	p, err := s.app.PortfolioService.RemoveHolding(r.Context(), portfolioName(r), ticker)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

// handleAnalyze handles POST /api/portfolio/analyze.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	analysis, err := s.app.PortfolioService.Analyze(r.Context(), portfolioName(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, analysis)
}

// handleReport handles GET /api/portfolio/report.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	rpt, err := s.app.ReportService.GenerateReport(r.Context(), portfolioName(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, rpt)
}

// handleChart handles GET /api/portfolio/chart, returning a PNG.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	png, err := s.app.PortfolioService.RenderBetaChart(r.Context(), portfolioName(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

type addTickerRequest struct {
	Ticker string `json:"ticker"`
}

// handleWatchlist handles GET (list tickers) and POST (add ticker) on
// /api/watchlist.
func (s *Server) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		tickers, err := s.app.WatchlistService.GetTickers(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"tickers": tickers})

	case http.MethodPost:
		var req addTickerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Ticker == "" {
			WriteError(w, http.StatusBadRequest, "Ticker required")
			return
		}
		if err := s.app.WatchlistService.AddTicker(r.Context(), req.Ticker); err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "added", "ticker": models.NormalizeTicker(req.Ticker)})

	default:
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleWatchlistRemove handles DELETE /api/watchlist/{ticker}.
func (s *Server) handleWatchlistRemove(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	ticker := strings.TrimPrefix(r.URL.Path, "/api/watchlist/")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "Ticker required")
		return
	}

	if err := s.app.WatchlistService.RemoveTicker(r.Context(), ticker); err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "removed", "ticker": models.NormalizeTicker(ticker)})
}

// handleWatchlistStocks handles GET /api/watchlist/stocks (enriched).
func (s *Server) handleWatchlistStocks(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	stocks, err := s.app.WatchlistService.GetWatchlistWithBetas(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"stocks": stocks})
}

// handleWatchlistSectors handles GET /api/watchlist/sectors.
func (s *Server) handleWatchlistSectors(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	sectors, err := s.app.WatchlistService.SectorAnalysis(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"sectors": sectors})
}

// handleWatchlistDiversification handles GET /api/watchlist/diversification.
func (s *Server) handleWatchlistDiversification(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	report, err := s.app.WatchlistService.Diversification(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

type recommendationsRequest struct {
	TargetBeta float64 `json:"target_beta,omitempty"` // zero selects the configured default
}

// handleRecommendations handles POST /api/recommendations.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req recommendationsRequest
	if r.Body != nil {
		// Body is optional; ignore decode errors for an empty body.
		json.NewDecoder(r.Body).Decode(&req)
	}

	result, err := s.app.WatchlistService.Recommend(r.Context(), portfolioName(r), req.TargetBeta)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}
