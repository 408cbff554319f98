// Package beta implements return computation, beta estimation, and risk
// classification against a market benchmark.
package beta

import "github.com/bobmcallan/betafolio/internal/models"

// ComputeReturns converts a price series into period-over-period simple
// returns: return[i] = price[i]/price[i-1] − 1. The first date carries no
// return and is dropped, so the output is one shorter than the input.
// Fewer than 2 points yields an empty series, not an error — callers check
// length downstream.
func ComputeReturns(prices []models.PricePoint) []models.ReturnPoint {
	if len(prices) < 2 {
		return []models.ReturnPoint{}
	}

	returns := make([]models.ReturnPoint, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		prev := prices[i-1].Close
		if prev == 0 {
			// Zero closes are a provider defect; skip rather than divide by zero.
			continue
		}
		returns = append(returns, models.ReturnPoint{
			Date:   prices[i].Date,
			Return: prices[i].Close/prev - 1,
		})
	}

	return returns
}
