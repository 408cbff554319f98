// Package interfaces defines service contracts for Betafolio
package interfaces

import (
	"context"

	"github.com/bobmcallan/betafolio/internal/models"
)

// BetaService estimates betas against the configured benchmark over the
// configured lookback window.
type BetaService interface {
	// Benchmark returns the benchmark ticker betas are measured against.
	Benchmark() string

	// EstimateTickerBeta computes the beta for a single ticker. Provider
	// failures are converted to an undefined estimate, never an error.
	EstimateTickerBeta(ctx context.Context, ticker string) models.BetaEstimate

	// EstimateBetas computes betas for multiple tickers concurrently and
	// returns once every ticker has an estimate (defined or not).
	EstimateBetas(ctx context.Context, tickers []string) map[string]models.BetaEstimate
}

// PortfolioService manages holdings and runs the beta analysis.
type PortfolioService interface {
	// GetPortfolio retrieves the saved portfolio (empty if none yet).
	GetPortfolio(ctx context.Context, name string) (*models.Portfolio, error)

	// AddHolding adds or replaces a position. When price is zero the current
	// market price is fetched, which also validates the ticker exists.
	AddHolding(ctx context.Context, name, ticker string, shares, price float64) (*models.Portfolio, error)

	// RemoveHolding deletes a position.
	RemoveHolding(ctx context.Context, name, ticker string) (*models.Portfolio, error)

	// Analyze estimates per-holding betas, aggregates the value-weighted
	// portfolio beta, and classifies the result.
	Analyze(ctx context.Context, name string) (*models.RiskAnalysis, error)

	// RenderBetaChart renders the beta analysis PNG (per-ticker betas and
	// weight distribution) for the last analysis of the named portfolio.
	RenderBetaChart(ctx context.Context, name string) ([]byte, error)
}

// WatchlistService manages the watchlist and produces beta-balancing
// recommendations.
type WatchlistService interface {
	// GetTickers returns the persisted watchlist tickers.
	GetTickers(ctx context.Context) ([]string, error)

	// AddTicker validates a ticker against the price provider and adds it.
	AddTicker(ctx context.Context, ticker string) error

	// RemoveTicker removes a ticker from the watchlist.
	RemoveTicker(ctx context.Context, ticker string) error

	// GetWatchlistWithBetas enriches the watchlist with prices, betas,
	// fundamentals, and risk tiers. Tickers the provider cannot resolve are
	// skipped with a warning.
	GetWatchlistWithBetas(ctx context.Context) ([]models.WatchlistStock, error)

	// Recommend ranks watchlist candidates by how well they move the
	// portfolio beta toward the target.
	Recommend(ctx context.Context, portfolioName string, targetBeta float64) (*models.RecommendationResult, error)

	// SectorAnalysis groups the enriched watchlist by sector with average betas.
	SectorAnalysis(ctx context.Context) ([]models.SectorStats, error)

	// Diversification reports risk-tier coverage across the watchlist.
	Diversification(ctx context.Context) (*models.DiversificationReport, error)
}

// ReportService generates portfolio analysis reports.
type ReportService interface {
	// GenerateReport runs the analysis and formats the full text report.
	GenerateReport(ctx context.Context, portfolioName string) (*models.Report, error)
}
