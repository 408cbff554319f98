package models

// Fundamentals carries the descriptive data used to enrich watchlist
// candidates. Missing fields default to zero values; the engine treats
// them as display-only.
type Fundamentals struct {
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name,omitempty"`
	Sector        string  `json:"sector"`
	Industry      string  `json:"industry"`
	MarketCap     float64 `json:"market_cap,omitempty"`
	PERatio       float64 `json:"pe_ratio,omitempty"`
	DividendYield float64 `json:"dividend_yield,omitempty"`
}
