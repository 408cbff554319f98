package portfolio

import (
	"errors"
	"math"
	"testing"

	"github.com/bobmcallan/betafolio/internal/models"
)

func defined(ticker string, beta float64) models.BetaEstimate {
	return models.BetaEstimate{Ticker: ticker, Beta: beta, Defined: true, SampleSize: 100}
}

func TestAggregate_EmptyPortfolio(t *testing.T) {
	_, err := Aggregate(map[string]models.Holding{}, nil)
	if !errors.Is(err, models.ErrEmptyPortfolio) {
		t.Fatalf("expected ErrEmptyPortfolio, got %v", err)
	}
}

func TestAggregate_ZeroValue(t *testing.T) {
	holdings := map[string]models.Holding{
		"AAPL.US": {Ticker: "AAPL.US", Shares: 10, PricePerShare: 0},
	}
	_, err := Aggregate(holdings, map[string]models.BetaEstimate{"AAPL.US": defined("AAPL.US", 1.2)})
	if !errors.Is(err, models.ErrZeroPortfolioValue) {
		t.Fatalf("expected ErrZeroPortfolioValue, got %v", err)
	}
}

func TestAggregate_ValueWeighted(t *testing.T) {
	// A: $6,000 at beta 0.5; B: $4,000 at beta 2.0.
	// Portfolio beta = 0.6*0.5 + 0.4*2.0 = 1.1
	holdings := map[string]models.Holding{
		"A.US": {Ticker: "A.US", Shares: 60, PricePerShare: 100},
		"B.US": {Ticker: "B.US", Shares: 40, PricePerShare: 100},
	}
	betas := map[string]models.BetaEstimate{
		"A.US": defined("A.US", 0.5),
		"B.US": defined("B.US", 2.0),
	}

	result, err := Aggregate(holdings, betas)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(result.PortfolioBeta-1.1) > 1e-12 {
		t.Errorf("portfolio beta: expected 1.1, got %g", result.PortfolioBeta)
	}
	if result.TotalValue != 10000 {
		t.Errorf("total value: expected 10000, got %g", result.TotalValue)
	}
	if result.StockCount != 2 {
		t.Errorf("stock count: expected 2, got %d", result.StockCount)
	}
	if w := result.StockBetas["A.US"].Weight; math.Abs(w-0.6) > 1e-12 {
		t.Errorf("A.US weight: expected 0.6, got %g", w)
	}
	if w := result.StockBetas["B.US"].Weight; math.Abs(w-0.4) > 1e-12 {
		t.Errorf("B.US weight: expected 0.4, got %g", w)
	}
}

func TestAggregate_EqualWeightsBetaOne(t *testing.T) {
	holdings := map[string]models.Holding{
		"A.US": {Ticker: "A.US", Shares: 10, PricePerShare: 100},
		"B.US": {Ticker: "B.US", Shares: 10, PricePerShare: 100},
	}
	betas := map[string]models.BetaEstimate{
		"A.US": defined("A.US", 0.5),
		"B.US": defined("B.US", 1.5),
	}

	result, err := Aggregate(holdings, betas)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(result.PortfolioBeta-1.0) > 1e-12 {
		t.Errorf("portfolio beta: expected 1.0, got %g", result.PortfolioBeta)
	}
}

func TestAggregate_UndefinedBetaShrinksContribution(t *testing.T) {
	// The undefined holding still counts toward total value, so the priced
	// holding's weight uses the full denominator and the included weights sum
	// to less than 1.
	holdings := map[string]models.Holding{
		"A.US": {Ticker: "A.US", Shares: 10, PricePerShare: 100}, // $1,000
		"B.US": {Ticker: "B.US", Shares: 30, PricePerShare: 100}, // $3,000, no beta
	}
	betas := map[string]models.BetaEstimate{
		"A.US": defined("A.US", 2.0),
		"B.US": models.UndefinedBeta("B.US", models.BetaReasonInsufficientData),
	}

	result, err := Aggregate(holdings, betas)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TotalValue != 4000 {
		t.Errorf("total value: expected 4000, got %g", result.TotalValue)
	}
	if math.Abs(result.PortfolioBeta-0.5) > 1e-12 {
		t.Errorf("portfolio beta: expected 0.5 (2.0 × 0.25), got %g", result.PortfolioBeta)
	}
	if result.StockCount != 1 {
		t.Errorf("stock count: expected 1, got %d", result.StockCount)
	}
	if len(result.Unpriced) != 1 || result.Unpriced[0] != "B.US" {
		t.Errorf("unpriced: expected [B.US], got %v", result.Unpriced)
	}
}

func TestAggregate_MissingEstimateTreatedAsUndefined(t *testing.T) {
	holdings := map[string]models.Holding{
		"A.US": {Ticker: "A.US", Shares: 10, PricePerShare: 100},
	}

	result, err := Aggregate(holdings, map[string]models.BetaEstimate{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PortfolioBeta != 0 {
		t.Errorf("portfolio beta: expected 0, got %g", result.PortfolioBeta)
	}
	if len(result.Unpriced) != 1 || result.Unpriced[0] != "A.US" {
		t.Errorf("unpriced: expected [A.US], got %v", result.Unpriced)
	}
}

func TestAggregate_UnpricedSorted(t *testing.T) {
	holdings := map[string]models.Holding{
		"Z.US": {Ticker: "Z.US", Shares: 1, PricePerShare: 100},
		"A.US": {Ticker: "A.US", Shares: 1, PricePerShare: 100},
		"M.US": {Ticker: "M.US", Shares: 1, PricePerShare: 100},
	}

	result, err := Aggregate(holdings, map[string]models.BetaEstimate{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"A.US", "M.US", "Z.US"}
	if len(result.Unpriced) != len(want) {
		t.Fatalf("unpriced: expected %v, got %v", want, result.Unpriced)
	}
	for i, ticker := range want {
		if result.Unpriced[i] != ticker {
			t.Errorf("unpriced[%d]: expected %s, got %s", i, ticker, result.Unpriced[i])
		}
	}
}
