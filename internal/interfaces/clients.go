// Package interfaces defines service contracts for Betafolio
package interfaces

import (
	"context"
	"time"

	"github.com/bobmcallan/betafolio/internal/models"
)

// PriceClient supplies historical and current prices from the market data
// provider. It is the only component that performs network I/O — the beta
// engine consumes its output and never fetches anything itself.
type PriceClient interface {
	// GetEOD retrieves end-of-day closing prices in chronological order.
	GetEOD(ctx context.Context, ticker string, opts ...EODOption) ([]models.PricePoint, error)

	// GetLastClose retrieves the most recent closing price for a ticker.
	// Used for ticker validation and watchlist pricing.
	GetLastClose(ctx context.Context, ticker string) (float64, error)

	// GetFundamentals retrieves descriptive data (sector, industry, P/E, yield).
	GetFundamentals(ctx context.Context, ticker string) (*models.Fundamentals, error)
}

// EODOption configures EOD data requests
type EODOption func(*EODParams)

// EODParams holds EOD query parameters
type EODParams struct {
	From   time.Time
	To     time.Time
	Period string // d=daily, w=weekly, m=monthly
}

// WithDateRange sets the date range for EOD query
func WithDateRange(from, to time.Time) EODOption {
	return func(p *EODParams) {
		p.From = from
		p.To = to
	}
}

// WithPeriod sets the period for EOD query
func WithPeriod(period string) EODOption {
	return func(p *EODParams) {
		p.Period = period
	}
}
