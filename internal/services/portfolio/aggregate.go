// Package portfolio provides portfolio management and value-weighted beta
// aggregation services.
package portfolio

import (
	"sort"

	"github.com/bobmcallan/betafolio/internal/models"
)

// Aggregate combines holdings with per-ticker beta estimates into a
// value-weighted portfolio beta.
//
// Total value always covers every holding, including those whose beta is
// undefined. Weights therefore use the full-portfolio denominator, so when
// some betas are missing the included weights sum to less than 1: a
// missing-data ticker shrinks its contribution instead of being renormalized
// onto the rest. Undefined-beta tickers are reported in Unpriced so callers
// can warn the user.
func Aggregate(holdings map[string]models.Holding, betas map[string]models.BetaEstimate) (*models.PortfolioBetaResult, error) {
	if len(holdings) == 0 {
		return nil, models.ErrEmptyPortfolio
	}

	totalValue := 0.0
	for _, h := range holdings {
		totalValue += h.MarketValue()
	}
	if totalValue == 0 {
		return nil, models.ErrZeroPortfolioValue
	}

	result := &models.PortfolioBetaResult{
		TotalValue: totalValue,
		StockBetas: make(map[string]models.StockBeta, len(holdings)),
	}

	for ticker, h := range holdings {
		estimate, ok := betas[ticker]
		if !ok || !estimate.Defined {
			result.Unpriced = append(result.Unpriced, ticker)
			continue
		}

		weight := h.MarketValue() / totalValue
		result.StockBetas[ticker] = models.StockBeta{
			Beta:        estimate.Beta,
			Weight:      weight,
			MarketValue: h.MarketValue(),
			Shares:      h.Shares,
		}
		result.PortfolioBeta += estimate.Beta * weight
	}

	sort.Strings(result.Unpriced)
	result.StockCount = len(result.StockBetas)

	return result, nil
}
