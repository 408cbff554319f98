package beta

import (
	"math"
	"testing"
	"time"

	"github.com/bobmcallan/betafolio/internal/models"
)

var seriesStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// seriesFromReturns builds a daily price series whose simple returns match
// the given sequence.
func seriesFromReturns(start time.Time, initial float64, returns []float64) []models.PricePoint {
	points := make([]models.PricePoint, 0, len(returns)+1)
	points = append(points, models.PricePoint{Date: start, Close: initial})
	price := initial
	for i, r := range returns {
		price *= 1 + r
		points = append(points, models.PricePoint{Date: start.AddDate(0, 0, i+1), Close: price})
	}
	return points
}

// alternatingReturns produces n returns oscillating around zero with nonzero
// variance.
func alternatingReturns(n int) []float64 {
	returns := make([]float64, n)
	for i := range returns {
		if i%2 == 0 {
			returns[i] = 0.01
		} else {
			returns[i] = -0.005
		}
	}
	return returns
}

func TestEstimateBeta_SelfRegressionIsOne(t *testing.T) {
	series := seriesFromReturns(seriesStart, 100, alternatingReturns(40))

	est := EstimateBeta("SPY.US", series, series, 30)
	if !est.Defined {
		t.Fatalf("expected defined beta, got reason %q", est.Reason)
	}
	if math.Abs(est.Beta-1.0) > 1e-9 {
		t.Errorf("self-regression beta: expected 1.0, got %g", est.Beta)
	}
	if est.SampleSize != 40 {
		t.Errorf("sample size: expected 40, got %d", est.SampleSize)
	}
}

func TestEstimateBeta_ScaledReturns(t *testing.T) {
	benchReturns := alternatingReturns(50)
	assetReturns := make([]float64, len(benchReturns))
	for i, r := range benchReturns {
		assetReturns[i] = 2 * r
	}

	bench := seriesFromReturns(seriesStart, 100, benchReturns)
	asset := seriesFromReturns(seriesStart, 50, assetReturns)

	est := EstimateBeta("TQQQ.US", asset, bench, 30)
	if !est.Defined {
		t.Fatalf("expected defined beta, got reason %q", est.Reason)
	}
	if math.Abs(est.Beta-2.0) > 1e-9 {
		t.Errorf("scaled beta: expected 2.0, got %g", est.Beta)
	}
}

func TestEstimateBeta_InverseReturnsAreNegative(t *testing.T) {
	benchReturns := alternatingReturns(40)
	assetReturns := make([]float64, len(benchReturns))
	for i, r := range benchReturns {
		assetReturns[i] = -r
	}

	bench := seriesFromReturns(seriesStart, 100, benchReturns)
	asset := seriesFromReturns(seriesStart, 80, assetReturns)

	est := EstimateBeta("SH.US", asset, bench, 30)
	if !est.Defined {
		t.Fatalf("expected defined beta, got reason %q", est.Reason)
	}
	if math.Abs(est.Beta-(-1.0)) > 1e-9 {
		t.Errorf("inverse beta: expected -1.0, got %g", est.Beta)
	}
}

func TestEstimateBeta_OverlapBoundary(t *testing.T) {
	// 30 prices yield 29 aligned returns: one short of the minimum.
	short := seriesFromReturns(seriesStart, 100, alternatingReturns(29))
	est := EstimateBeta("AAPL.US", short, short, 30)
	if est.Defined {
		t.Fatalf("expected undefined beta at 29 overlapping days, got %g", est.Beta)
	}
	if est.Reason != models.BetaReasonInsufficientData {
		t.Errorf("reason: expected %q, got %q", models.BetaReasonInsufficientData, est.Reason)
	}

	// One more day crosses the threshold.
	enough := seriesFromReturns(seriesStart, 100, alternatingReturns(30))
	est = EstimateBeta("AAPL.US", enough, enough, 30)
	if !est.Defined {
		t.Fatalf("expected defined beta at 30 overlapping days, got reason %q", est.Reason)
	}
	if est.SampleSize != 30 {
		t.Errorf("sample size: expected 30, got %d", est.SampleSize)
	}
}

func TestEstimateBeta_DisjointDates(t *testing.T) {
	asset := seriesFromReturns(seriesStart, 100, alternatingReturns(40))
	bench := seriesFromReturns(seriesStart.AddDate(1, 0, 0), 100, alternatingReturns(40))

	est := EstimateBeta("AAPL.US", asset, bench, 30)
	if est.Defined {
		t.Fatalf("expected undefined beta for disjoint dates, got %g", est.Beta)
	}
	if est.Reason != models.BetaReasonInsufficientData {
		t.Errorf("reason: expected %q, got %q", models.BetaReasonInsufficientData, est.Reason)
	}
}

func TestEstimateBeta_DegenerateBenchmark(t *testing.T) {
	asset := seriesFromReturns(seriesStart, 100, alternatingReturns(10))
	flat := make([]float64, 10)
	bench := seriesFromReturns(seriesStart, 100, flat)

	est := EstimateBeta("AAPL.US", asset, bench, 5)
	if est.Defined {
		t.Fatalf("expected undefined beta for flat benchmark, got %g", est.Beta)
	}
	if est.Reason != models.BetaReasonDegenerateBenchmark {
		t.Errorf("reason: expected %q, got %q", models.BetaReasonDegenerateBenchmark, est.Reason)
	}
}

func TestEstimateBeta_EmptySeries(t *testing.T) {
	bench := seriesFromReturns(seriesStart, 100, alternatingReturns(40))

	est := EstimateBeta("AAPL.US", nil, bench, 30)
	if est.Defined {
		t.Fatal("expected undefined beta for empty asset series")
	}
	if est.Reason != models.BetaReasonInsufficientData {
		t.Errorf("reason: expected %q, got %q", models.BetaReasonInsufficientData, est.Reason)
	}
}

func TestEstimateBeta_DefaultMinOverlap(t *testing.T) {
	// minOverlap <= 0 falls back to the default of 30.
	series := seriesFromReturns(seriesStart, 100, alternatingReturns(29))
	est := EstimateBeta("AAPL.US", series, series, 0)
	if est.Defined {
		t.Fatal("expected default minimum overlap to apply when zero is passed")
	}
}
