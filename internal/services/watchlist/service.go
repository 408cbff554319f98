package watchlist

import (
	"context"
	"fmt"

	"github.com/bobmcallan/betafolio/internal/common"
	"github.com/bobmcallan/betafolio/internal/interfaces"
	"github.com/bobmcallan/betafolio/internal/models"
	"github.com/bobmcallan/betafolio/internal/services/beta"
)

// Compile-time interface check
var _ interfaces.WatchlistService = (*Service)(nil)

// Service implements WatchlistService
type Service struct {
	storage    interfaces.StorageManager
	client     interfaces.PriceClient
	betas      interfaces.BetaService
	portfolios interfaces.PortfolioService
	target     float64 // default target beta when the caller passes zero
	logger     *common.Logger
}

// NewService creates a new watchlist service
func NewService(
	storage interfaces.StorageManager,
	client interfaces.PriceClient,
	betas interfaces.BetaService,
	portfolios interfaces.PortfolioService,
	defaultTarget float64,
	logger *common.Logger,
) *Service {
	if defaultTarget == 0 {
		defaultTarget = 1.0
	}
	return &Service{
		storage:    storage,
		client:     client,
		betas:      betas,
		portfolios: portfolios,
		target:     defaultTarget,
		logger:     logger,
	}
}

// GetTickers returns the persisted watchlist tickers.
func (s *Service) GetTickers(ctx context.Context) ([]string, error) {
	tickers, err := s.storage.WatchlistStore().GetWatchlist(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get watchlist: %w", err)
	}
	return tickers, nil
}

// AddTicker validates a ticker against the price provider and adds it to
// the watchlist. Adding an already-listed ticker is a no-op.
func (s *Service) AddTicker(ctx context.Context, ticker string) error {
	ticker = models.NormalizeTicker(ticker)
	if ticker == "" {
		return fmt.Errorf("ticker must not be empty")
	}

	tickers, err := s.GetTickers(ctx)
	if err != nil {
		return err
	}
	for _, t := range tickers {
		if t == ticker {
			return nil // already listed
		}
	}

	if _, err := s.client.GetLastClose(ctx, ticker); err != nil {
		return fmt.Errorf("could not validate ticker %s: %w", ticker, err)
	}

	tickers = append(tickers, ticker)
	if err := s.storage.WatchlistStore().SaveWatchlist(ctx, tickers); err != nil {
		return fmt.Errorf("failed to save watchlist: %w", err)
	}

	s.logger.Info().Str("ticker", ticker).Msg("Watchlist ticker added")
	return nil
}

// RemoveTicker removes a ticker from the watchlist.
func (s *Service) RemoveTicker(ctx context.Context, ticker string) error {
	ticker = models.NormalizeTicker(ticker)

	tickers, err := s.GetTickers(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i, t := range tickers {
		if t == ticker {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s not in watchlist", models.ErrTickerNotFound, ticker)
	}

	tickers = append(tickers[:idx], tickers[idx+1:]...)
	if err := s.storage.WatchlistStore().SaveWatchlist(ctx, tickers); err != nil {
		return fmt.Errorf("failed to save watchlist: %w", err)
	}

	s.logger.Info().Str("ticker", ticker).Msg("Watchlist ticker removed")
	return nil
}

// GetWatchlistWithBetas enriches the watchlist with current prices, betas,
// fundamentals, and risk tiers. Tickers the provider cannot price are
// skipped with a warning; tickers with undefined betas are kept but marked,
// so callers never mistake a missing beta for zero.
func (s *Service) GetWatchlistWithBetas(ctx context.Context) ([]models.WatchlistStock, error) {
	tickers, err := s.GetTickers(ctx)
	if err != nil {
		return nil, err
	}

	estimates := s.betas.EstimateBetas(ctx, tickers)

	stocks := make([]models.WatchlistStock, 0, len(tickers))
	for _, ticker := range tickers {
		price, err := s.client.GetLastClose(ctx, ticker)
		if err != nil {
			s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Skipping watchlist ticker without price")
			continue
		}

		stock := models.WatchlistStock{
			Ticker:       ticker,
			CurrentPrice: price,
			Sector:       "Unknown",
			Industry:     "Unknown",
		}

		if f, err := s.client.GetFundamentals(ctx, ticker); err == nil {
			stock.Sector = f.Sector
			stock.Industry = f.Industry
			stock.MarketCap = f.MarketCap
			stock.PERatio = f.PERatio
			stock.DividendYield = f.DividendYield
		} else {
			s.logger.Debug().Err(err).Str("ticker", ticker).Msg("Fundamentals unavailable")
		}

		if estimate := estimates[ticker]; estimate.Defined {
			stock.Beta = estimate.Beta
			stock.BetaDefined = true
			stock.RiskTier = beta.ClassifyRisk(estimate.Beta).Tier
		}

		stocks = append(stocks, stock)
	}

	return stocks, nil
}

// Recommend ranks watchlist candidates by how well they move the named
// portfolio's beta toward the target. A zero targetBeta selects the
// configured default. Candidates with undefined betas are excluded — an
// unknown beta cannot be ranked.
func (s *Service) Recommend(ctx context.Context, portfolioName string, targetBeta float64) (*models.RecommendationResult, error) {
	if targetBeta == 0 {
		targetBeta = s.target
	}

	analysis, err := s.portfolios.Analyze(ctx, portfolioName)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze portfolio: %w", err)
	}

	stocks, err := s.GetWatchlistWithBetas(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]models.WatchlistStock, 0, len(stocks))
	for _, stock := range stocks {
		if !stock.BetaDefined {
			s.logger.Warn().Str("ticker", stock.Ticker).Msg("Excluding candidate with undefined beta")
			continue
		}
		candidates = append(candidates, stock)
	}

	p, err := s.portfolios.GetPortfolio(ctx, portfolioName)
	if err != nil {
		return nil, err
	}
	exclude := make(map[string]bool, len(p.Holdings))
	for ticker := range p.Holdings {
		exclude[ticker] = true
	}

	result := Recommend(analysis.PortfolioBeta, targetBeta, candidates, exclude)

	s.logger.Info().
		Str("portfolio", portfolioName).
		Str("status", string(result.Status)).
		Int("recommendations", len(result.Recommendations)).
		Msg("Recommendations generated")

	return result, nil
}
