package models

import "time"

// WatchlistStock is a watchlist candidate enriched with market data and a
// freshly computed beta. Recomputed on demand — only the ticker list is
// persisted.
type WatchlistStock struct {
	Ticker        string   `json:"ticker"`
	CurrentPrice  float64  `json:"current_price"`
	Beta          float64  `json:"beta"`
	BetaDefined   bool     `json:"beta_defined"`
	MarketCap     float64  `json:"market_cap,omitempty"`
	Sector        string   `json:"sector"`
	Industry      string   `json:"industry"`
	PERatio       float64  `json:"pe_ratio,omitempty"`
	DividendYield float64  `json:"dividend_yield,omitempty"`
	RiskTier      RiskTier `json:"risk_level"`
}

// BetaImpact labels the directional effect of adding a candidate, compared
// against the current portfolio beta (not the target).
type BetaImpact string

const (
	BetaImpactIncrease BetaImpact = "increase"
	BetaImpactDecrease BetaImpact = "decrease"
	BetaImpactMaintain BetaImpact = "maintain"
)

// Recommendation is a single ranked watchlist candidate with its expected
// impact and a human-readable rationale.
type Recommendation struct {
	WatchlistStock
	Impact BetaImpact `json:"beta_impact"`
	Reason string     `json:"reason"`
}

// RecommendationStatus distinguishes actionable results from the two
// informational outcomes. None of them are errors.
type RecommendationStatus string

const (
	RecommendationStatusOK           RecommendationStatus = "ok"
	RecommendationStatusNoCandidates RecommendationStatus = "no_eligible_candidates"
	RecommendationStatusTargetMet    RecommendationStatus = "target_met"
)

// RecommendationResult ranks watchlist candidates by how well they move the
// portfolio beta toward the target.
type RecommendationResult struct {
	Status          RecommendationStatus `json:"status"`
	CurrentBeta     float64              `json:"current_beta"`
	TargetBeta      float64              `json:"target_beta"`
	BetaDifference  float64              `json:"beta_difference"`
	Action          string               `json:"action_needed,omitempty"` // "increase" or "decrease"
	Message         string               `json:"message"`
	Recommendations []Recommendation     `json:"recommendations"`
}

// SectorStats aggregates watchlist stocks within one sector.
type SectorStats struct {
	Sector   string           `json:"sector"`
	Stocks   []WatchlistStock `json:"stocks"`
	Count    int              `json:"count"`
	AvgBeta  float64          `json:"avg_beta"`
	RiskTier RiskTier         `json:"risk_level"`
}

// DiversificationSuggestion flags a risk-tier gap in the watchlist.
type DiversificationSuggestion struct {
	Type        string           `json:"type"`
	Message     string           `json:"message"`
	Suggestions []WatchlistStock `json:"suggestions"`
}

// DiversificationReport summarizes watchlist spread across risk tiers.
type DiversificationReport struct {
	ConservativeCount int                         `json:"conservative_count"`
	ModerateCount     int                         `json:"moderate_count"`
	AggressiveCount   int                         `json:"aggressive_count"`
	TotalStocks       int                         `json:"total_stocks"`
	Suggestions       []DiversificationSuggestion `json:"recommendations"`
}

// Report is a generated portfolio analysis report.
type Report struct {
	ID            string        `json:"id"`
	PortfolioName string        `json:"portfolio_name"`
	GeneratedAt   time.Time     `json:"generated_at"`
	Content       string        `json:"content"`
	Analysis      *RiskAnalysis `json:"analysis,omitempty"`
}
