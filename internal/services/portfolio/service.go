package portfolio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bobmcallan/betafolio/internal/common"
	"github.com/bobmcallan/betafolio/internal/interfaces"
	"github.com/bobmcallan/betafolio/internal/models"
	"github.com/bobmcallan/betafolio/internal/services/beta"
)

// Compile-time interface check
var _ interfaces.PortfolioService = (*Service)(nil)

// Service implements PortfolioService
type Service struct {
	storage interfaces.StorageManager
	client  interfaces.PriceClient
	betas   interfaces.BetaService
	logger  *common.Logger

	// Last analysis per portfolio, kept so chart rendering doesn't re-fetch
	// two years of prices. Invalidated whenever holdings change.
	mu       sync.Mutex
	analyses map[string]*models.RiskAnalysis
}

// NewService creates a new portfolio service
func NewService(storage interfaces.StorageManager, client interfaces.PriceClient, betas interfaces.BetaService, logger *common.Logger) *Service {
	return &Service{
		storage:  storage,
		client:   client,
		betas:    betas,
		logger:   logger,
		analyses: map[string]*models.RiskAnalysis{},
	}
}

// GetPortfolio retrieves the saved portfolio (empty if none yet).
func (s *Service) GetPortfolio(ctx context.Context, name string) (*models.Portfolio, error) {
	p, err := s.storage.PortfolioStore().GetPortfolio(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}
	if p.Benchmark == "" {
		p.Benchmark = s.betas.Benchmark()
	}
	return p, nil
}

// AddHolding adds or replaces a position. When price is zero the latest
// close is fetched from the provider, which doubles as ticker validation —
// unknown tickers are rejected before they ever reach the portfolio.
func (s *Service) AddHolding(ctx context.Context, name, ticker string, shares, price float64) (*models.Portfolio, error) {
	ticker = models.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, fmt.Errorf("ticker must not be empty")
	}
	if shares <= 0 {
		return nil, fmt.Errorf("shares must be positive, got %g", shares)
	}
	if price < 0 {
		return nil, fmt.Errorf("price must not be negative, got %g", price)
	}

	if price == 0 {
		fetched, err := s.client.GetLastClose(ctx, ticker)
		if err != nil {
			return nil, fmt.Errorf("could not fetch current price for %s: %w", ticker, err)
		}
		price = fetched
	}

	p, err := s.GetPortfolio(ctx, name)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	holding := models.Holding{
		Ticker:        ticker,
		Shares:        shares,
		PricePerShare: price,
		AddedAt:       now,
		UpdatedAt:     now,
	}
	if existing, ok := p.Holdings[ticker]; ok {
		holding.AddedAt = existing.AddedAt
	}
	p.Holdings[ticker] = holding

	if err := s.storage.PortfolioStore().SavePortfolio(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save portfolio: %w", err)
	}
	s.invalidate(name)

	s.logger.Info().
		Str("portfolio", name).
		Str("ticker", ticker).
		Float64("shares", shares).
		Float64("price", price).
		Msg("Holding upserted")
	return p, nil
}

// RemoveHolding deletes a position.
func (s *Service) RemoveHolding(ctx context.Context, name, ticker string) (*models.Portfolio, error) {
	ticker = models.NormalizeTicker(ticker)

	p, err := s.GetPortfolio(ctx, name)
	if err != nil {
		return nil, err
	}

	if _, ok := p.Holdings[ticker]; !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrHoldingNotFound, ticker)
	}
	delete(p.Holdings, ticker)

	if err := s.storage.PortfolioStore().SavePortfolio(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save portfolio: %w", err)
	}
	s.invalidate(name)

	s.logger.Info().Str("portfolio", name).Str("ticker", ticker).Msg("Holding removed")
	return p, nil
}

// Analyze estimates per-holding betas concurrently, aggregates the
// value-weighted portfolio beta, and classifies the result.
func (s *Service) Analyze(ctx context.Context, name string) (*models.RiskAnalysis, error) {
	p, err := s.GetPortfolio(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(p.Holdings) == 0 {
		return nil, models.ErrEmptyPortfolio
	}

	estimates := s.betas.EstimateBetas(ctx, p.Tickers())

	result, err := Aggregate(p.Holdings, estimates)
	if err != nil {
		return nil, err
	}

	for _, ticker := range result.Unpriced {
		s.logger.Warn().
			Str("portfolio", name).
			Str("ticker", ticker).
			Msg("Holding excluded from portfolio beta (undefined beta)")
	}

	analysis := &models.RiskAnalysis{
		PortfolioBeta:     result.PortfolioBeta,
		Profile:           beta.ClassifyRisk(result.PortfolioBeta),
		MarketSensitivity: beta.MarketSensitivity(result.PortfolioBeta),
		BetaAnalysis:      result,
	}

	s.mu.Lock()
	s.analyses[name] = analysis
	s.mu.Unlock()

	s.logger.Info().
		Str("portfolio", name).
		Float64("portfolio_beta", result.PortfolioBeta).
		Str("risk_level", string(analysis.Profile.Tier)).
		Int("priced", result.StockCount).
		Int("unpriced", len(result.Unpriced)).
		Msg("Portfolio analyzed")

	return analysis, nil
}

// RenderBetaChart renders the beta bar chart PNG for the named portfolio,
// running the analysis first if none is cached. Both the bar chart and the
// weight pie chart are also written to the data directory.
func (s *Service) RenderBetaChart(ctx context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	analysis := s.analyses[name]
	s.mu.Unlock()

	if analysis == nil {
		var err error
		analysis, err = s.Analyze(ctx, name)
		if err != nil {
			return nil, err
		}
	}

	barPNG, err := RenderBetaBarChart(analysis.BetaAnalysis)
	if err != nil {
		return nil, err
	}

	if err := s.storage.WriteRaw("charts", name+"-betas.png", barPNG); err != nil {
		s.logger.Warn().Err(err).Str("portfolio", name).Msg("Failed to store beta chart")
	}
	if piePNG, err := RenderWeightPieChart(analysis.BetaAnalysis); err == nil {
		if err := s.storage.WriteRaw("charts", name+"-weights.png", piePNG); err != nil {
			s.logger.Warn().Err(err).Str("portfolio", name).Msg("Failed to store weight chart")
		}
	}

	return barPNG, nil
}

// invalidate drops the cached analysis for a portfolio after its holdings
// change.
func (s *Service) invalidate(name string) {
	s.mu.Lock()
	delete(s.analyses, name)
	s.mu.Unlock()
}
