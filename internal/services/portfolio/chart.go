package portfolio

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/betafolio/internal/models"
)

// RenderBetaBarChart renders a PNG bar chart of per-ticker betas, colored by
// position relative to the market beta of 1.0. Returns raw PNG bytes.
func RenderBetaBarChart(result *models.PortfolioBetaResult) ([]byte, error) {
	if len(result.StockBetas) == 0 {
		return nil, fmt.Errorf("no priced holdings to chart")
	}

	tickers := make([]string, 0, len(result.StockBetas))
	for t := range result.StockBetas {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	bars := make([]chart.Value, 0, len(tickers))
	for _, t := range tickers {
		sb := result.StockBetas[t]
		color := drawing.ColorFromHex("60a5fa") // blue-400
		if sb.Beta > 1.0 {
			color = drawing.ColorFromHex("f87171") // red-400
		}
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s (%.0f%%)", t, sb.Weight*100),
			Value: sb.Beta,
			Style: chart.Style{FillColor: color, StrokeColor: color},
		})
	}

	graph := chart.BarChart{
		Title:    fmt.Sprintf("Stock Betas — Portfolio Beta %.3f", result.PortfolioBeta),
		Width:    900,
		Height:   400,
		BarWidth: 50,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.2f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}

// RenderWeightPieChart renders a PNG pie chart of portfolio weight
// distribution across priced holdings. Returns raw PNG bytes.
func RenderWeightPieChart(result *models.PortfolioBetaResult) ([]byte, error) {
	if len(result.StockBetas) == 0 {
		return nil, fmt.Errorf("no priced holdings to chart")
	}

	tickers := make([]string, 0, len(result.StockBetas))
	for t := range result.StockBetas {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	values := make([]chart.Value, 0, len(tickers))
	for _, t := range tickers {
		sb := result.StockBetas[t]
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", t, sb.Weight*100),
			Value: sb.Weight,
		})
	}

	graph := chart.PieChart{
		Title:  "Portfolio Weight Distribution",
		Width:  600,
		Height: 600,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
