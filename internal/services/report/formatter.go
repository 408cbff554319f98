// Package report provides portfolio analysis report generation
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bobmcallan/betafolio/internal/models"
)

// formatReport renders the full text report for a portfolio risk analysis.
func formatReport(portfolioName string, analysis *models.RiskAnalysis) string {
	ba := analysis.BetaAnalysis

	var sb strings.Builder
	rule := strings.Repeat("=", 60)

	sb.WriteString(rule + "\n")
	sb.WriteString("PORTFOLIO BETA ANALYSIS REPORT\n")
	sb.WriteString(rule + "\n\n")

	sb.WriteString("PORTFOLIO SUMMARY:\n")
	sb.WriteString(fmt.Sprintf("- Portfolio: %s\n", portfolioName))
	sb.WriteString(fmt.Sprintf("- Total Portfolio Value: $%s\n", formatMoney(ba.TotalValue)))
	sb.WriteString(fmt.Sprintf("- Number of Holdings: %d\n", ba.StockCount))
	sb.WriteString(fmt.Sprintf("- Portfolio Beta: %.3f\n", analysis.PortfolioBeta))
	sb.WriteString(fmt.Sprintf("- Risk Level: %s\n", analysis.Profile.Tier))
	sb.WriteString(fmt.Sprintf("- Risk Description: %s\n\n", analysis.Profile.Description))

	sb.WriteString("MARKET SENSITIVITY:\n")
	sb.WriteString(fmt.Sprintf("- %s\n\n", analysis.MarketSensitivity))

	sb.WriteString("INDIVIDUAL STOCK ANALYSIS:\n")
	tickers := make([]string, 0, len(ba.StockBetas))
	for t := range ba.StockBetas {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	for _, t := range tickers {
		stock := ba.StockBetas[t]
		sb.WriteString(fmt.Sprintf("\n%s:\n", t))
		sb.WriteString(fmt.Sprintf("  - Beta: %.3f\n", stock.Beta))
		sb.WriteString(fmt.Sprintf("  - Portfolio Weight: %.2f%%\n", stock.Weight*100))
		sb.WriteString(fmt.Sprintf("  - Market Value: $%s\n", formatMoney(stock.MarketValue)))
		sb.WriteString(fmt.Sprintf("  - Shares Held: %.0f\n", stock.Shares))
	}

	if len(ba.Unpriced) > 0 {
		sb.WriteString(fmt.Sprintf("\nEXCLUDED (no reliable beta): %s\n", strings.Join(ba.Unpriced, ", ")))
		sb.WriteString("  These holdings count toward total value but not the portfolio beta.\n")
	}

	sb.WriteString("\n" + rule + "\n")
	sb.WriteString("RECOMMENDATIONS:\n")
	sb.WriteString(rule + "\n")
	sb.WriteString(tierAdvice(analysis.Profile.Tier))

	if high := highBetaTickers(ba, 1.5); len(high) > 0 {
		sb.WriteString(fmt.Sprintf("\n- HIGH BETA WARNING: %s have betas > 1.5\n", strings.Join(high, ", ")))
		sb.WriteString("  These stocks will amplify market movements significantly\n")
	}

	if ticker, weight := largestWeight(ba); weight > 0.3 {
		sb.WriteString(fmt.Sprintf("\n- CONCENTRATION WARNING: %s represents %.1f%% of portfolio\n", ticker, weight*100))
		sb.WriteString("  Consider diversifying to reduce concentration risk\n")
	}

	return sb.String()
}

func tierAdvice(tier models.RiskTier) string {
	switch tier {
	case models.RiskTierConservative:
		return `
- Your portfolio is CONSERVATIVE with lower volatility than the market
- Consider adding some growth stocks if you want higher returns
- Good for risk-averse investors or those nearing retirement
`
	case models.RiskTierModerate:
		return `
- Your portfolio has MODERATE risk with market-like volatility
- Well-balanced for most investors
- Consider rebalancing if individual stock weights become too concentrated
`
	default:
		return `
- Your portfolio is AGGRESSIVE with higher volatility than the market
- Higher potential returns but also higher risk
- Consider adding defensive stocks or bonds to reduce volatility
`
	}
}

func highBetaTickers(ba *models.PortfolioBetaResult, threshold float64) []string {
	var high []string
	for t, stock := range ba.StockBetas {
		if stock.Beta > threshold {
			high = append(high, t)
		}
	}
	sort.Strings(high)
	return high
}

func largestWeight(ba *models.PortfolioBetaResult) (string, float64) {
	ticker, weight := "", 0.0
	for t, stock := range ba.StockBetas {
		if stock.Weight > weight || (stock.Weight == weight && t < ticker) {
			ticker, weight = t, stock.Weight
		}
	}
	return ticker, weight
}

// formatMoney renders a value with thousands separators and two decimals.
func formatMoney(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.2f", v)
	parts := strings.SplitN(s, ".", 2)
	intPart := parts[0]

	var out strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(r)
	}
	result := out.String() + "." + parts[1]
	if neg {
		return "-" + result
	}
	return result
}
