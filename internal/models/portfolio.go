package models

import (
	"errors"
	"strings"
	"time"
)

// Aggregation and lookup failures. Informational outcomes (no eligible
// candidates, target already met) are structured results, not errors.
var (
	ErrEmptyPortfolio     = errors.New("portfolio has no holdings")
	ErrZeroPortfolioValue = errors.New("total portfolio value is zero")
	ErrTickerNotFound     = errors.New("ticker not found")
	ErrHoldingNotFound    = errors.New("holding not found in portfolio")
)

// Holding represents a portfolio position.
type Holding struct {
	Ticker        string    `json:"ticker"`
	Shares        float64   `json:"shares"`
	PricePerShare float64   `json:"price_per_share"`
	AddedAt       time.Time `json:"added_at,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

// MarketValue returns shares × price per share.
func (h Holding) MarketValue() float64 {
	return h.Shares * h.PricePerShare
}

// Portfolio is a named set of holdings keyed by ticker, measured against a
// fixed benchmark over a fixed lookback. Cached betas are only valid for
// that (benchmark, lookback) pair.
type Portfolio struct {
	Name      string             `json:"name"`
	Benchmark string             `json:"benchmark"`
	Holdings  map[string]Holding `json:"holdings"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// NewPortfolio creates an empty portfolio for the given benchmark.
func NewPortfolio(name, benchmark string) *Portfolio {
	return &Portfolio{
		Name:      name,
		Benchmark: benchmark,
		Holdings:  map[string]Holding{},
		UpdatedAt: time.Now(),
	}
}

// TotalValue sums market value over all holdings.
func (p *Portfolio) TotalValue() float64 {
	total := 0.0
	for _, h := range p.Holdings {
		total += h.MarketValue()
	}
	return total
}

// Tickers returns the held ticker symbols.
func (p *Portfolio) Tickers() []string {
	tickers := make([]string, 0, len(p.Holdings))
	for t := range p.Holdings {
		tickers = append(tickers, t)
	}
	return tickers
}

// NormalizeTicker uppercases and trims a ticker symbol.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
