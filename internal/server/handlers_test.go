package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/betafolio/internal/app"
	"github.com/bobmcallan/betafolio/internal/common"
	"github.com/bobmcallan/betafolio/internal/interfaces"
	"github.com/bobmcallan/betafolio/internal/models"
)

// --- fakes ---

type fakePortfolioService struct {
	portfolio  *models.Portfolio
	analysis   *models.RiskAnalysis
	chart      []byte
	err        error
	lastTicker string
	lastName   string
}

var _ interfaces.PortfolioService = (*fakePortfolioService)(nil)

func (f *fakePortfolioService) GetPortfolio(ctx context.Context, name string) (*models.Portfolio, error) {
	f.lastName = name
	return f.portfolio, f.err
}
func (f *fakePortfolioService) AddHolding(ctx context.Context, name, ticker string, shares, price float64) (*models.Portfolio, error) {
	f.lastName, f.lastTicker = name, ticker
	return f.portfolio, f.err
}
func (f *fakePortfolioService) RemoveHolding(ctx context.Context, name, ticker string) (*models.Portfolio, error) {
	f.lastName, f.lastTicker = name, ticker
	return f.portfolio, f.err
}
func (f *fakePortfolioService) Analyze(ctx context.Context, name string) (*models.RiskAnalysis, error) {
	f.lastName = name
	return f.analysis, f.err
}
func (f *fakePortfolioService) RenderBetaChart(ctx context.Context, name string) ([]byte, error) {
	return f.chart, f.err
}

type fakeWatchlistService struct {
	tickers    []string
	stocks     []models.WatchlistStock
	result     *models.RecommendationResult
	sectors    []models.SectorStats
	report     *models.DiversificationReport
	err        error
	lastTicker string
	lastTarget float64
}

var _ interfaces.WatchlistService = (*fakeWatchlistService)(nil)

func (f *fakeWatchlistService) GetTickers(ctx context.Context) ([]string, error) {
	return f.tickers, f.err
}
func (f *fakeWatchlistService) AddTicker(ctx context.Context, ticker string) error {
	f.lastTicker = ticker
	return f.err
}
func (f *fakeWatchlistService) RemoveTicker(ctx context.Context, ticker string) error {
	f.lastTicker = ticker
	return f.err
}
func (f *fakeWatchlistService) GetWatchlistWithBetas(ctx context.Context) ([]models.WatchlistStock, error) {
	return f.stocks, f.err
}
func (f *fakeWatchlistService) Recommend(ctx context.Context, portfolioName string, targetBeta float64) (*models.RecommendationResult, error) {
	f.lastTarget = targetBeta
	return f.result, f.err
}
func (f *fakeWatchlistService) SectorAnalysis(ctx context.Context) ([]models.SectorStats, error) {
	return f.sectors, f.err
}
func (f *fakeWatchlistService) Diversification(ctx context.Context) (*models.DiversificationReport, error) {
	return f.report, f.err
}

type fakeReportService struct {
	report *models.Report
	err    error
}

var _ interfaces.ReportService = (*fakeReportService)(nil)

func (f *fakeReportService) GenerateReport(ctx context.Context, portfolioName string) (*models.Report, error) {
	return f.report, f.err
}

func newTestServer(portfolios *fakePortfolioService, watchlists *fakeWatchlistService, reports *fakeReportService) *Server {
	a := &app.App{
		Config:           common.NewDefaultConfig(),
		Logger:           common.NewSilentLogger(),
		PortfolioService: portfolios,
		WatchlistService: watchlists,
		ReportService:    reports,
	}
	return NewServer(a)
}

func doRequest(t *testing.T, s *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

// --- tests ---

func TestHandleHealth(t *testing.T) {
	s := newTestServer(&fakePortfolioService{}, &fakeWatchlistService{}, &fakeReportService{})

	rec := doRequest(t, s, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])

	rec = doRequest(t, s, http.MethodPost, "/api/health", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandlePortfolio(t *testing.T) {
	portfolios := &fakePortfolioService{portfolio: &models.Portfolio{
		Name:      "default",
		Benchmark: "GSPC.INDX",
		Holdings: map[string]models.Holding{
			"AAPL.US": {Ticker: "AAPL.US", Shares: 10, PricePerShare: 150},
		},
	}}
	s := newTestServer(portfolios, &fakeWatchlistService{}, &fakeReportService{})

	rec := doRequest(t, s, http.MethodGet, "/api/portfolio", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var p models.Portfolio
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "default", p.Name)
	assert.Len(t, p.Holdings, 1)
	assert.Equal(t, "default", portfolios.lastName)
}

func TestHandlePortfolio_NamedViaQuery(t *testing.T) {
	portfolios := &fakePortfolioService{portfolio: models.NewPortfolio("ira", "GSPC.INDX")}
	s := newTestServer(portfolios, &fakeWatchlistService{}, &fakeReportService{})

	rec := doRequest(t, s, http.MethodGet, "/api/portfolio?portfolio=ira", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ira", portfolios.lastName)
}

func TestHandleHoldingAdd(t *testing.T) {
	portfolios := &fakePortfolioService{portfolio: models.NewPortfolio("default", "GSPC.INDX")}
	s := newTestServer(portfolios, &fakeWatchlistService{}, &fakeReportService{})

	body := []byte(`{"ticker":"AAPL.US","shares":10,"price":150}`)
	rec := doRequest(t, s, http.MethodPost, "/api/portfolio/holdings", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "AAPL.US", portfolios.lastTicker)
}

func TestHandleHoldingAdd_BadInput(t *testing.T) {
	s := newTestServer(&fakePortfolioService{}, &fakeWatchlistService{}, &fakeReportService{})

	rec := doRequest(t, s, http.MethodPost, "/api/portfolio/holdings", []byte(`not json`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/api/portfolio/holdings", []byte(`{"ticker":"","shares":10}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/api/portfolio/holdings", []byte(`{"ticker":"AAPL.US","shares":0}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHoldingRemove(t *testing.T) {
	portfolios := &fakePortfolioService{portfolio: models.NewPortfolio("default", "GSPC.INDX")}
	s := newTestServer(portfolios, &fakeWatchlistService{}, &fakeReportService{})

	rec := doRequest(t, s, http.MethodDelete, "/api/portfolio/holdings/AAPL.US", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "AAPL.US", portfolios.lastTicker)
}

func TestHandleHoldingRemove_NotFound(t *testing.T) {
	portfolios := &fakePortfolioService{err: models.ErrHoldingNotFound}
	s := newTestServer(portfolios, &fakeWatchlistService{}, &fakeReportService{})

	rec := doRequest(t, s, http.MethodDelete, "/api/portfolio/holdings/GONE.US", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleAnalyze(t *testing.T) {
	portfolios := &fakePortfolioService{analysis: &models.RiskAnalysis{
		PortfolioBeta: 1.1,
		Profile:       models.RiskProfile{Tier: models.RiskTierModerate},
	}}
	s := newTestServer(portfolios, &fakeWatchlistService{}, &fakeReportService{})

	rec := doRequest(t, s, http.MethodPost, "/api/portfolio/analyze", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var analysis models.RiskAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	assert.InDelta(t, 1.1, analysis.PortfolioBeta, 1e-12)
}

func TestHandleAnalyze_EmptyPortfolio(t *testing.T) {
	portfolios := &fakePortfolioService{err: models.ErrEmptyPortfolio}
	s := newTestServer(portfolios, &fakeWatchlistService{}, &fakeReportService{})

	rec := doRequest(t, s, http.MethodPost, "/api/portfolio/analyze", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "empty_portfolio", resp.Code)
}

func TestHandleChart(t *testing.T) {
	portfolios := &fakePortfolioService{chart: []byte{0x89, 'P', 'N', 'G'}}
	s := newTestServer(portfolios, &fakeWatchlistService{}, &fakeReportService{})

	rec := doRequest(t, s, http.MethodGet, "/api/portfolio/chart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, rec.Body.Bytes())
}

func TestHandleReport(t *testing.T) {
	reports := &fakeReportService{report: &models.Report{ID: "r1", PortfolioName: "default", Content: "body"}}
	s := newTestServer(&fakePortfolioService{}, &fakeWatchlistService{}, reports)

	rec := doRequest(t, s, http.MethodGet, "/api/portfolio/report", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rpt models.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rpt))
	assert.Equal(t, "r1", rpt.ID)
}

func TestHandleWatchlist_GetAndPost(t *testing.T) {
	watchlists := &fakeWatchlistService{tickers: []string{"AAPL.US", "MSFT.US"}}
	s := newTestServer(&fakePortfolioService{}, watchlists, &fakeReportService{})

	rec := doRequest(t, s, http.MethodGet, "/api/watchlist", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Tickers []string `json:"tickers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"AAPL.US", "MSFT.US"}, body.Tickers)

	rec = doRequest(t, s, http.MethodPost, "/api/watchlist", []byte(`{"ticker":"goog.us"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "goog.us", watchlists.lastTicker)

	rec = doRequest(t, s, http.MethodPost, "/api/watchlist", []byte(`{"ticker":""}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleWatchlistRemove(t *testing.T) {
	watchlists := &fakeWatchlistService{}
	s := newTestServer(&fakePortfolioService{}, watchlists, &fakeReportService{})

	rec := doRequest(t, s, http.MethodDelete, "/api/watchlist/AAPL.US", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "AAPL.US", watchlists.lastTicker)
}

func TestHandleWatchlistRemove_NotFound(t *testing.T) {
	watchlists := &fakeWatchlistService{err: models.ErrTickerNotFound}
	s := newTestServer(&fakePortfolioService{}, watchlists, &fakeReportService{})

	rec := doRequest(t, s, http.MethodDelete, "/api/watchlist/GONE.US", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleWatchlistStocks(t *testing.T) {
	watchlists := &fakeWatchlistService{stocks: []models.WatchlistStock{
		{Ticker: "AAPL.US", Beta: 1.25, BetaDefined: true, RiskTier: models.RiskTierAggressive},
	}}
	s := newTestServer(&fakePortfolioService{}, watchlists, &fakeReportService{})

	rec := doRequest(t, s, http.MethodGet, "/api/watchlist/stocks", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Stocks []models.WatchlistStock `json:"stocks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Stocks, 1)
	assert.Equal(t, "AAPL.US", body.Stocks[0].Ticker)
}

func TestHandleRecommendations(t *testing.T) {
	watchlists := &fakeWatchlistService{result: &models.RecommendationResult{
		Status:      models.RecommendationStatusOK,
		CurrentBeta: 0.9,
		TargetBeta:  1.3,
	}}
	s := newTestServer(&fakePortfolioService{}, watchlists, &fakeReportService{})

	rec := doRequest(t, s, http.MethodPost, "/api/recommendations", []byte(`{"target_beta":1.3}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.3, watchlists.lastTarget)

	var result models.RecommendationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, models.RecommendationStatusOK, result.Status)
}

func TestHandleRecommendations_EmptyBodyUsesDefault(t *testing.T) {
	watchlists := &fakeWatchlistService{result: &models.RecommendationResult{Status: models.RecommendationStatusOK}}
	s := newTestServer(&fakePortfolioService{}, watchlists, &fakeReportService{})

	rec := doRequest(t, s, http.MethodPost, "/api/recommendations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0.0, watchlists.lastTarget)
}

func TestHandleWatchlistDiversification(t *testing.T) {
	watchlists := &fakeWatchlistService{report: &models.DiversificationReport{
		ModerateCount: 2,
		TotalStocks:   2,
	}}
	s := newTestServer(&fakePortfolioService{}, watchlists, &fakeReportService{})

	rec := doRequest(t, s, http.MethodGet, "/api/watchlist/diversification", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var report models.DiversificationReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 2, report.ModerateCount)
}
