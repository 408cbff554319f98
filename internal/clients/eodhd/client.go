// Package eodhd provides a client for the EODHD API
package eodhd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/betafolio/internal/common"
	"github.com/bobmcallan/betafolio/internal/interfaces"
	"github.com/bobmcallan/betafolio/internal/models"
)

// flexFloat64 handles JSON values that may be either a number or a string.
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" || s == "N/A" {
			*f = 0
			return nil
		}
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

const (
	DefaultBaseURL   = "https://eodhd.com/api"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// Compile-time interface check
var _ interfaces.PriceClient = (*Client)(nil)

// Client implements the PriceClient interface
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new EODHD client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("EODHD API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_token", c.apiKey)
	params.Set("fmt", "json")

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", c.baseURL+path).Msg("EODHD API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// eodBarResponse is the wire format of one EOD bar.
type eodBarResponse struct {
	Date          string      `json:"date"`
	Close         flexFloat64 `json:"close"`
	AdjustedClose flexFloat64 `json:"adjusted_close"`
}

// GetEOD retrieves end-of-day closing prices in chronological order.
// Adjusted close is preferred when present so splits and dividends do not
// show up as spurious returns.
func (c *Client) GetEOD(ctx context.Context, ticker string, opts ...interfaces.EODOption) ([]models.PricePoint, error) {
	params := &interfaces.EODParams{
		Period: "d",
	}

	for _, opt := range opts {
		opt(params)
	}

	urlParams := url.Values{}
	urlParams.Set("period", params.Period)
	urlParams.Set("order", "a") // ascending, oldest first

	if !params.From.IsZero() {
		urlParams.Set("from", params.From.Format("2006-01-02"))
	}
	if !params.To.IsZero() {
		urlParams.Set("to", params.To.Format("2006-01-02"))
	}

	path := fmt.Sprintf("/eod/%s", ticker)

	var bars []eodBarResponse
	if err := c.get(ctx, path, urlParams, &bars); err != nil {
		return nil, err
	}

	points := make([]models.PricePoint, 0, len(bars))
	for _, bar := range bars {
		date, err := time.Parse("2006-01-02", bar.Date)
		if err != nil {
			c.logger.Warn().Str("ticker", ticker).Str("date", bar.Date).Msg("Skipping bar with unparseable date")
			continue
		}
		closePrice := float64(bar.AdjustedClose)
		if closePrice == 0 {
			closePrice = float64(bar.Close)
		}
		if closePrice <= 0 {
			continue
		}
		points = append(points, models.PricePoint{Date: date, Close: closePrice})
	}

	// The API promises ascending order; don't rely on it.
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	return points, nil
}

// GetLastClose retrieves the most recent closing price for a ticker.
// Returns models.ErrTickerNotFound when the provider has no data for it.
func (c *Client) GetLastClose(ctx context.Context, ticker string) (float64, error) {
	from := time.Now().AddDate(0, 0, -7)
	points, err := c.GetEOD(ctx, ticker, interfaces.WithDateRange(from, time.Now()))
	if err != nil {
		if apiErr, ok := err.(*APIError); ok && apiErr.StatusCode == http.StatusNotFound {
			return 0, fmt.Errorf("%w: %s", models.ErrTickerNotFound, ticker)
		}
		return 0, err
	}
	if len(points) == 0 {
		return 0, fmt.Errorf("%w: %s", models.ErrTickerNotFound, ticker)
	}
	return points[len(points)-1].Close, nil
}

// fundamentalsResponse is the subset of the EODHD fundamentals payload we use.
type fundamentalsResponse struct {
	General struct {
		Code     string `json:"Code"`
		Name     string `json:"Name"`
		Sector   string `json:"Sector"`
		Industry string `json:"Industry"`
	} `json:"General"`
	Highlights struct {
		MarketCapitalization flexFloat64 `json:"MarketCapitalization"`
		PERatio              flexFloat64 `json:"PERatio"`
		DividendYield        flexFloat64 `json:"DividendYield"`
	} `json:"Highlights"`
}

// GetFundamentals retrieves descriptive data for watchlist enrichment.
func (c *Client) GetFundamentals(ctx context.Context, ticker string) (*models.Fundamentals, error) {
	path := fmt.Sprintf("/fundamentals/%s", ticker)

	var resp fundamentalsResponse
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}

	f := &models.Fundamentals{
		Ticker:        ticker,
		Name:          resp.General.Name,
		Sector:        resp.General.Sector,
		Industry:      resp.General.Industry,
		MarketCap:     float64(resp.Highlights.MarketCapitalization),
		PERatio:       float64(resp.Highlights.PERatio),
		DividendYield: float64(resp.Highlights.DividendYield),
	}
	if f.Sector == "" {
		f.Sector = "Unknown"
	}
	if f.Industry == "" {
		f.Industry = "Unknown"
	}

	return f, nil
}
