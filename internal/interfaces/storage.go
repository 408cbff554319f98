// Package interfaces defines service contracts for Betafolio
package interfaces

import (
	"context"

	"github.com/bobmcallan/betafolio/internal/models"
)

// StorageManager coordinates the file-backed stores.
type StorageManager interface {
	PortfolioStore() PortfolioStore
	WatchlistStore() WatchlistStore

	// DataPath returns the base data directory path.
	DataPath() string

	// WriteRaw writes arbitrary binary data to a subdirectory atomically.
	// Key is sanitized for safe filenames (e.g. "beta-analysis.png").
	WriteRaw(subdir, key string, data []byte) error

	Close() error
}

// PortfolioStore round-trips portfolio holdings as JSON.
type PortfolioStore interface {
	// GetPortfolio retrieves a portfolio by name. When none has been saved
	// yet an empty portfolio is returned, not an error.
	GetPortfolio(ctx context.Context, name string) (*models.Portfolio, error)

	// SavePortfolio persists a portfolio.
	SavePortfolio(ctx context.Context, portfolio *models.Portfolio) error

	// DeletePortfolio removes a saved portfolio.
	DeletePortfolio(ctx context.Context, name string) error
}

// WatchlistStore round-trips the watchlist ticker list as JSON.
// Enriched watchlist data (prices, betas, fundamentals) is ephemeral and
// never persisted.
type WatchlistStore interface {
	GetWatchlist(ctx context.Context) ([]string, error)
	SaveWatchlist(ctx context.Context, tickers []string) error
}
