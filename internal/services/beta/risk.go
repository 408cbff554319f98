package beta

import (
	"fmt"

	"github.com/bobmcallan/betafolio/internal/models"
)

// Risk tier boundaries. Both bounds are inclusive of the Moderate band.
const (
	conservativeBelow = 0.8
	aggressiveAbove   = 1.2
)

// ClassifyRisk maps a beta value to a qualitative risk tier. Total — every
// beta gets a tier, including negative and extreme values.
func ClassifyRisk(beta float64) models.RiskProfile {
	switch {
	case beta < conservativeBelow:
		return models.RiskProfile{
			Tier:        models.RiskTierConservative,
			Description: "Lower volatility than market",
		}
	case beta <= aggressiveAbove:
		return models.RiskProfile{
			Tier:        models.RiskTierModerate,
			Description: "Similar volatility to market",
		}
	default:
		return models.RiskProfile{
			Tier:        models.RiskTierAggressive,
			Description: "Higher volatility than market",
		}
	}
}

// MarketSensitivity describes how the portfolio amplifies benchmark moves.
func MarketSensitivity(beta float64) string {
	return fmt.Sprintf("For every 1%% market move, portfolio moves %.2f%%", beta)
}
