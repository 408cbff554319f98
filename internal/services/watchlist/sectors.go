package watchlist

import (
	"context"
	"sort"

	"github.com/bobmcallan/betafolio/internal/models"
	"github.com/bobmcallan/betafolio/internal/services/beta"
)

// SectorAnalysis groups the enriched watchlist by sector and reports each
// sector's average beta and risk tier. Stocks with undefined betas count
// toward the sector but not its average.
func (s *Service) SectorAnalysis(ctx context.Context) ([]models.SectorStats, error) {
	stocks, err := s.GetWatchlistWithBetas(ctx)
	if err != nil {
		return nil, err
	}

	bySector := map[string]*models.SectorStats{}
	betaCounts := map[string]int{}
	for _, stock := range stocks {
		stats, ok := bySector[stock.Sector]
		if !ok {
			stats = &models.SectorStats{Sector: stock.Sector}
			bySector[stock.Sector] = stats
		}
		stats.Stocks = append(stats.Stocks, stock)
		stats.Count++
		if stock.BetaDefined {
			stats.AvgBeta += stock.Beta
			betaCounts[stock.Sector]++
		}
	}

	result := make([]models.SectorStats, 0, len(bySector))
	for sector, stats := range bySector {
		if n := betaCounts[sector]; n > 0 {
			stats.AvgBeta /= float64(n)
			stats.RiskTier = beta.ClassifyRisk(stats.AvgBeta).Tier
		}
		result = append(result, *stats)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Sector < result[j].Sector })

	return result, nil
}

// Diversification reports how the watchlist spreads across risk tiers and
// flags missing tiers, suggesting the nearest candidates to fill each gap.
func (s *Service) Diversification(ctx context.Context) (*models.DiversificationReport, error) {
	stocks, err := s.GetWatchlistWithBetas(ctx)
	if err != nil {
		return nil, err
	}

	report := &models.DiversificationReport{
		TotalStocks: len(stocks),
		Suggestions: []models.DiversificationSuggestion{},
	}

	var priced []models.WatchlistStock
	for _, stock := range stocks {
		if !stock.BetaDefined {
			continue
		}
		priced = append(priced, stock)
		switch stock.RiskTier {
		case models.RiskTierConservative:
			report.ConservativeCount++
		case models.RiskTierModerate:
			report.ModerateCount++
		case models.RiskTierAggressive:
			report.AggressiveCount++
		}
	}

	if report.ConservativeCount == 0 && len(priced) > 0 {
		lowest := make([]models.WatchlistStock, len(priced))
		copy(lowest, priced)
		sort.SliceStable(lowest, func(i, j int) bool { return lowest[i].Beta < lowest[j].Beta })
		report.Suggestions = append(report.Suggestions, models.DiversificationSuggestion{
			Type:        "Add Conservative Stocks",
			Message:     "Consider adding low-beta stocks for stability",
			Suggestions: topN(lowest, 3),
		})
	}

	if report.AggressiveCount == 0 && len(priced) > 0 {
		highest := make([]models.WatchlistStock, len(priced))
		copy(highest, priced)
		sort.SliceStable(highest, func(i, j int) bool { return highest[i].Beta > highest[j].Beta })
		report.Suggestions = append(report.Suggestions, models.DiversificationSuggestion{
			Type:        "Add Growth Stocks",
			Message:     "Consider adding high-beta stocks for growth potential",
			Suggestions: topN(highest, 3),
		})
	}

	return report, nil
}

func topN(stocks []models.WatchlistStock, n int) []models.WatchlistStock {
	if len(stocks) < n {
		n = len(stocks)
	}
	return stocks[:n]
}
