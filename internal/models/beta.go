// Package models defines the core data structures for Betafolio
package models

import "time"

// PricePoint is a single daily close observation for one ticker.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// ReturnPoint is a simple daily return, dated by the later of the two closes
// it was computed from.
type ReturnPoint struct {
	Date   time.Time `json:"date"`
	Return float64   `json:"return"`
}

// BetaReason explains why a beta estimate is undefined.
type BetaReason string

const (
	// BetaReasonInsufficientData means the aligned return sample was smaller
	// than the configured minimum overlap.
	BetaReasonInsufficientData BetaReason = "insufficient_data"

	// BetaReasonDegenerateBenchmark means the benchmark variance over the
	// aligned sample was exactly zero, so the ratio is undefined.
	BetaReasonDegenerateBenchmark BetaReason = "degenerate_benchmark"

	// BetaReasonNoData means the price provider returned no usable series.
	BetaReasonNoData BetaReason = "no_data"
)

// BetaEstimate is the outcome of one beta computation. Undefined estimates
// carry a Reason instead of a fabricated placeholder value — Beta is only
// meaningful when Defined is true.
type BetaEstimate struct {
	Ticker     string     `json:"ticker"`
	Beta       float64    `json:"beta"`
	Defined    bool       `json:"defined"`
	Reason     BetaReason `json:"reason,omitempty"`
	SampleSize int        `json:"sample_size,omitempty"`
}

// UndefinedBeta builds an undefined estimate for a ticker.
func UndefinedBeta(ticker string, reason BetaReason) BetaEstimate {
	return BetaEstimate{
		Ticker:  ticker,
		Defined: false,
		Reason:  reason,
	}
}

// StockBeta is one holding's contribution to the portfolio beta.
type StockBeta struct {
	Beta        float64 `json:"beta"`
	Weight      float64 `json:"weight"`
	MarketValue float64 `json:"market_value"`
	Shares      float64 `json:"shares"`
}

// PortfolioBetaResult is the value-weighted aggregation across a portfolio.
// TotalValue covers every holding, including those listed in Unpriced, so
// the weights in StockBetas sum to less than 1 whenever betas are missing.
type PortfolioBetaResult struct {
	PortfolioBeta float64              `json:"portfolio_beta"`
	TotalValue    float64              `json:"total_value"`
	StockBetas    map[string]StockBeta `json:"stock_betas"`
	Unpriced      []string             `json:"unpriced,omitempty"`
	StockCount    int                  `json:"stock_count"`
}

// RiskTier is a qualitative volatility classification.
type RiskTier string

const (
	RiskTierConservative RiskTier = "Conservative"
	RiskTierModerate     RiskTier = "Moderate"
	RiskTierAggressive   RiskTier = "Aggressive"
)

// RiskProfile pairs a tier with its plain-language description.
type RiskProfile struct {
	Tier        RiskTier `json:"risk_level"`
	Description string   `json:"description"`
}

// RiskAnalysis is the full portfolio analysis: the aggregated beta, its risk
// classification, and the per-holding breakdown.
type RiskAnalysis struct {
	PortfolioBeta     float64              `json:"portfolio_beta"`
	Profile           RiskProfile          `json:"profile"`
	MarketSensitivity string               `json:"market_sensitivity"`
	BetaAnalysis      *PortfolioBetaResult `json:"beta_analysis"`
}
