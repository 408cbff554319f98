// Package watchlist provides watchlist management and beta-balancing
// recommendation services.
package watchlist

import (
	"fmt"
	"math"
	"sort"

	"github.com/bobmcallan/betafolio/internal/models"
)

const (
	// TargetDeadBand is the beta difference below which no rebalancing is
	// recommended, to avoid churn from negligible signals.
	TargetDeadBand = 0.05

	// MaxRecommendations caps the ranked list.
	MaxRecommendations = 5
)

// Recommend ranks candidate stocks by how well they move the portfolio beta
// from currentBeta toward targetBeta. Candidates whose tickers appear in
// exclude (already held) are dropped first. Ties on beta preserve input
// order, so results are deterministic. The two empty outcomes — no eligible
// candidates, target already met — are informational statuses, not errors.
func Recommend(currentBeta, targetBeta float64, candidates []models.WatchlistStock, exclude map[string]bool) *models.RecommendationResult {
	eligible := make([]models.WatchlistStock, 0, len(candidates))
	for _, c := range candidates {
		if exclude[c.Ticker] {
			continue
		}
		eligible = append(eligible, c)
	}

	result := &models.RecommendationResult{
		CurrentBeta:     currentBeta,
		TargetBeta:      targetBeta,
		BetaDifference:  targetBeta - currentBeta,
		Recommendations: []models.Recommendation{},
	}

	if len(eligible) == 0 {
		result.Status = models.RecommendationStatusNoCandidates
		result.Message = "No stocks available in watchlist that are not already in portfolio"
		return result
	}

	diff := result.BetaDifference
	if math.Abs(diff) < TargetDeadBand {
		result.Status = models.RecommendationStatusTargetMet
		result.Message = fmt.Sprintf("Portfolio beta (%.3f) is already close to target (%.3f)", currentBeta, targetBeta)
		return result
	}

	if diff > 0 {
		result.Action = "increase"
		sort.SliceStable(eligible, func(i, j int) bool { return eligible[i].Beta > eligible[j].Beta })
	} else {
		result.Action = "decrease"
		sort.SliceStable(eligible, func(i, j int) bool { return eligible[i].Beta < eligible[j].Beta })
	}

	limit := len(eligible)
	if limit > MaxRecommendations {
		limit = MaxRecommendations
	}

	for _, stock := range eligible[:limit] {
		result.Recommendations = append(result.Recommendations, models.Recommendation{
			WatchlistStock: stock,
			Impact:         betaImpact(stock.Beta, currentBeta),
			Reason:         recommendationReason(stock, result.Action),
		})
	}

	result.Status = models.RecommendationStatusOK
	result.Message = fmt.Sprintf("To %s portfolio beta from %.3f to %.3f", result.Action, currentBeta, targetBeta)
	return result
}

// betaImpact labels the directional effect of a candidate relative to the
// current portfolio beta (not the target).
func betaImpact(stockBeta, currentBeta float64) models.BetaImpact {
	switch {
	case stockBeta > currentBeta:
		return models.BetaImpactIncrease
	case stockBeta < currentBeta:
		return models.BetaImpactDecrease
	default:
		return models.BetaImpactMaintain
	}
}

// recommendationReason buckets the rationale by beta magnitude: {1.5, 1.2}
// when increasing, {0.8, 1.0} when decreasing.
func recommendationReason(stock models.WatchlistStock, action string) string {
	b := stock.Beta
	t := stock.Ticker

	if action == "increase" {
		switch {
		case b > 1.5:
			return fmt.Sprintf("%s has high beta (%.2f) - excellent for increasing portfolio volatility", t, b)
		case b > 1.2:
			return fmt.Sprintf("%s has moderate-high beta (%.2f) - good for increasing portfolio volatility", t, b)
		default:
			return fmt.Sprintf("%s has moderate beta (%.2f) - will help increase portfolio volatility", t, b)
		}
	}

	switch {
	case b < 0.8:
		return fmt.Sprintf("%s has low beta (%.2f) - excellent for reducing portfolio volatility", t, b)
	case b < 1.0:
		return fmt.Sprintf("%s has moderate-low beta (%.2f) - good for reducing portfolio volatility", t, b)
	default:
		return fmt.Sprintf("%s has moderate beta (%.2f) - will help reduce portfolio volatility", t, b)
	}
}
