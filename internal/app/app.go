// Package app wires configuration, storage, clients, and services into a
// single application object shared by the server and CLI entry points.
package app

import (
	"fmt"
	"os"
	"time"

	"github.com/bobmcallan/betafolio/internal/clients/eodhd"
	"github.com/bobmcallan/betafolio/internal/common"
	"github.com/bobmcallan/betafolio/internal/interfaces"
	"github.com/bobmcallan/betafolio/internal/services/beta"
	"github.com/bobmcallan/betafolio/internal/services/portfolio"
	"github.com/bobmcallan/betafolio/internal/services/report"
	"github.com/bobmcallan/betafolio/internal/services/watchlist"
	"github.com/bobmcallan/betafolio/internal/storage/portfoliofs"
)

// DefaultPortfolioName is used when a request doesn't name a portfolio.
const DefaultPortfolioName = "default"

// App holds all initialized services, clients, and storage.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	PriceClient      interfaces.PriceClient
	BetaService      interfaces.BetaService
	PortfolioService interfaces.PortfolioService
	WatchlistService interfaces.WatchlistService
	ReportService    interfaces.ReportService
	StartupTime      time.Time
}

// NewApp initializes configuration, logging, storage, the price client, and
// all services. configPath may be empty, in which case BETAFOLIO_CONFIG and
// then betafolio.toml in the working directory are tried.
func NewApp(configPath string) (*App, error) {
	if configPath == "" {
		configPath = os.Getenv("BETAFOLIO_CONFIG")
	}
	if configPath == "" {
		configPath = "betafolio.toml"
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storage, err := portfoliofs.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if config.Clients.EODHD.APIKey == "" {
		logger.Warn().Msg("EODHD API key not configured - price fetching will fail")
	}

	client := eodhd.NewClient(config.Clients.EODHD.APIKey,
		eodhd.WithBaseURL(config.Clients.EODHD.BaseURL),
		eodhd.WithLogger(logger),
		eodhd.WithRateLimit(config.Clients.EODHD.RateLimit),
		eodhd.WithTimeout(config.Clients.EODHD.GetTimeout()),
	)

	betaService := beta.NewService(client, config.Analysis, logger)
	portfolioService := portfolio.NewService(storage, client, betaService, logger)
	watchlistService := watchlist.NewService(storage, client, betaService, portfolioService, config.Analysis.TargetBeta, logger)
	reportService := report.NewService(portfolioService, storage, logger)

	return &App{
		Config:           config,
		Logger:           logger,
		Storage:          storage,
		PriceClient:      client,
		BetaService:      betaService,
		PortfolioService: portfolioService,
		WatchlistService: watchlistService,
		ReportService:    reportService,
		StartupTime:      time.Now(),
	}, nil
}

// Close releases all resources.
func (a *App) Close() {
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("Failed to close storage")
		}
	}
}
