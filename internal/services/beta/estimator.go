package beta

import (
	"gonum.org/v1/gonum/stat"

	"github.com/bobmcallan/betafolio/internal/models"
)

// DefaultMinOverlapDays is the minimum number of aligned observations for a
// statistically usable covariance/variance estimate.
const DefaultMinOverlapDays = 30

const dateKeyFormat = "2006-01-02"

// EstimateBeta computes the beta of an asset against a benchmark from their
// price series. Returns are computed independently for each series, then
// intersected by date in chronological order. The estimate is undefined when
// the aligned sample is smaller than minOverlap or the benchmark variance is
// exactly zero. Covariance and variance both use the unbiased (N−1)
// estimator so the ratio is consistent. Beta is never clamped — it may be
// negative or arbitrarily large.
func EstimateBeta(ticker string, asset, benchmark []models.PricePoint, minOverlap int) models.BetaEstimate {
	if minOverlap <= 0 {
		minOverlap = DefaultMinOverlapDays
	}

	assetReturns := ComputeReturns(asset)
	benchReturns := ComputeReturns(benchmark)

	benchByDate := make(map[string]float64, len(benchReturns))
	for _, r := range benchReturns {
		benchByDate[r.Date.Format(dateKeyFormat)] = r.Return
	}

	// Asset returns are chronological, so the aligned sample stays ordered.
	alignedAsset := make([]float64, 0, len(assetReturns))
	alignedBench := make([]float64, 0, len(assetReturns))
	for _, r := range assetReturns {
		if b, ok := benchByDate[r.Date.Format(dateKeyFormat)]; ok {
			alignedAsset = append(alignedAsset, r.Return)
			alignedBench = append(alignedBench, b)
		}
	}

	if len(alignedAsset) < minOverlap {
		return models.UndefinedBeta(ticker, models.BetaReasonInsufficientData)
	}

	covariance := stat.Covariance(alignedAsset, alignedBench, nil)
	variance := stat.Variance(alignedBench, nil)

	if variance == 0 {
		return models.UndefinedBeta(ticker, models.BetaReasonDegenerateBenchmark)
	}

	return models.BetaEstimate{
		Ticker:     ticker,
		Beta:       covariance / variance,
		Defined:    true,
		SampleSize: len(alignedAsset),
	}
}
