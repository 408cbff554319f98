package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/betafolio/internal/common"
	"github.com/bobmcallan/betafolio/internal/interfaces"
	"github.com/bobmcallan/betafolio/internal/models"
)

// Compile-time interface check
var _ interfaces.ReportService = (*Service)(nil)

// Service implements ReportService
type Service struct {
	portfolios interfaces.PortfolioService
	storage    interfaces.StorageManager
	logger     *common.Logger
}

// NewService creates a new report service
func NewService(portfolios interfaces.PortfolioService, storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		portfolios: portfolios,
		storage:    storage,
		logger:     logger,
	}
}

// GenerateReport runs the portfolio analysis and formats the full text
// report. The report is also written to the data directory for later
// retrieval.
func (s *Service) GenerateReport(ctx context.Context, portfolioName string) (*models.Report, error) {
	analysis, err := s.portfolios.Analyze(ctx, portfolioName)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze portfolio: %w", err)
	}

	rpt := &models.Report{
		ID:            uuid.NewString(),
		PortfolioName: portfolioName,
		GeneratedAt:   time.Now(),
		Content:       formatReport(portfolioName, analysis),
		Analysis:      analysis,
	}

	if err := s.storage.WriteRaw("reports", portfolioName+".txt", []byte(rpt.Content)); err != nil {
		s.logger.Warn().Err(err).Str("portfolio", portfolioName).Msg("Failed to store report")
	}

	s.logger.Info().
		Str("portfolio", portfolioName).
		Str("report_id", rpt.ID).
		Float64("portfolio_beta", analysis.PortfolioBeta).
		Msg("Report generated")

	return rpt, nil
}
