package beta

import (
	"context"
	"sync"
	"time"

	"github.com/bobmcallan/betafolio/internal/common"
	"github.com/bobmcallan/betafolio/internal/interfaces"
	"github.com/bobmcallan/betafolio/internal/models"
)

// Compile-time interface check
var _ interfaces.BetaService = (*Service)(nil)

// Service implements BetaService. It is constructed per application (or per
// test) with its own client and parameters — there is no process-wide state,
// so two services with different benchmarks never contaminate each other.
type Service struct {
	client interfaces.PriceClient
	config common.AnalysisConfig
	logger *common.Logger
}

// NewService creates a new beta estimation service.
func NewService(client interfaces.PriceClient, config common.AnalysisConfig, logger *common.Logger) *Service {
	if config.MinOverlapDays <= 0 {
		config.MinOverlapDays = DefaultMinOverlapDays
	}
	return &Service{
		client: client,
		config: config,
		logger: logger,
	}
}

// Benchmark returns the benchmark ticker betas are measured against.
func (s *Service) Benchmark() string {
	return s.config.Benchmark
}

// fetchSeries retrieves the lookback window of daily closes for a ticker.
func (s *Service) fetchSeries(ctx context.Context, ticker string) ([]models.PricePoint, error) {
	from := time.Now().AddDate(0, 0, -s.config.LookbackDays)
	return s.client.GetEOD(ctx, ticker, interfaces.WithDateRange(from, time.Now()))
}

// EstimateTickerBeta computes the beta for a single ticker. Any provider
// failure — network, unknown ticker — is converted to an undefined estimate
// so one bad ticker never aborts processing of the rest of the portfolio.
func (s *Service) EstimateTickerBeta(ctx context.Context, ticker string) models.BetaEstimate {
	benchmark, err := s.fetchSeries(ctx, s.config.Benchmark)
	if err != nil {
		s.logger.Warn().Err(err).Str("benchmark", s.config.Benchmark).Msg("Benchmark series unavailable")
		return models.UndefinedBeta(ticker, models.BetaReasonNoData)
	}
	return s.estimateAgainst(ctx, ticker, benchmark)
}

// estimateAgainst computes one ticker's beta against an already-fetched
// benchmark series.
func (s *Service) estimateAgainst(ctx context.Context, ticker string, benchmark []models.PricePoint) models.BetaEstimate {
	asset, err := s.fetchSeries(ctx, ticker)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("No price data for ticker")
		return models.UndefinedBeta(ticker, models.BetaReasonNoData)
	}

	estimate := EstimateBeta(ticker, asset, benchmark, s.config.MinOverlapDays)
	if !estimate.Defined {
		s.logger.Warn().
			Str("ticker", ticker).
			Str("reason", string(estimate.Reason)).
			Msg("Beta undefined")
	} else {
		s.logger.Debug().
			Str("ticker", ticker).
			Float64("beta", estimate.Beta).
			Int("sample_size", estimate.SampleSize).
			Msg("Beta estimated")
	}
	return estimate
}

// EstimateBetas computes betas for multiple tickers. The benchmark series is
// fetched once; per-ticker estimation fans out across goroutines, each
// writing only its own slot, and the call returns after all workers join —
// partial results are never exposed.
func (s *Service) EstimateBetas(ctx context.Context, tickers []string) map[string]models.BetaEstimate {
	estimates := make(map[string]models.BetaEstimate, len(tickers))
	if len(tickers) == 0 {
		return estimates
	}

	benchmark, err := s.fetchSeries(ctx, s.config.Benchmark)
	if err != nil {
		s.logger.Warn().Err(err).Str("benchmark", s.config.Benchmark).Msg("Benchmark series unavailable")
		for _, t := range tickers {
			estimates[t] = models.UndefinedBeta(t, models.BetaReasonNoData)
		}
		return estimates
	}

	results := make([]models.BetaEstimate, len(tickers))
	var wg sync.WaitGroup
	for i, ticker := range tickers {
		wg.Add(1)
		go func(i int, ticker string) {
			defer wg.Done()
			results[i] = s.estimateAgainst(ctx, ticker, benchmark)
		}(i, ticker)
	}
	wg.Wait()

	for i, ticker := range tickers {
		estimates[ticker] = results[i]
	}
	return estimates
}
