// Package portfoliofs implements file-based JSON storage for portfolios
// and the watchlist.
package portfoliofs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bobmcallan/betafolio/internal/common"
	"github.com/bobmcallan/betafolio/internal/interfaces"
	"github.com/bobmcallan/betafolio/internal/models"
)

// Compile-time interface check
var _ interfaces.StorageManager = (*Store)(nil)

// Store provides file-based JSON storage under a single data directory.
// Writes are atomic (temp file + rename) so a crash never leaves a
// half-written portfolio behind.
type Store struct {
	basePath      string
	portfolioDir  string
	watchlistPath string
	logger        *common.Logger
}

// NewStore creates a new file store rooted at path.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store path %s: %w", path, err)
	}
	portfolioDir := filepath.Join(path, "portfolios")
	if err := os.MkdirAll(portfolioDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create portfolio dir: %w", err)
	}

	logger.Info().Str("path", path).Msg("Portfolio store opened")
	return &Store{
		basePath:      path,
		portfolioDir:  portfolioDir,
		watchlistPath: filepath.Join(path, "watchlist.json"),
		logger:        logger,
	}, nil
}

// DataPath returns the base data path.
func (s *Store) DataPath() string {
	return s.basePath
}

// PortfolioStore returns the portfolio storage interface.
func (s *Store) PortfolioStore() interfaces.PortfolioStore {
	return &portfolioStore{store: s}
}

// WatchlistStore returns the watchlist storage interface.
func (s *Store) WatchlistStore() interfaces.WatchlistStore {
	return &watchlistStore{store: s}
}

// WriteRaw writes arbitrary binary data to a subdirectory atomically.
func (s *Store) WriteRaw(subdir, key string, data []byte) error {
	dir := filepath.Join(s.basePath, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return atomicWrite(filepath.Join(dir, sanitizeKey(key)), data)
}

// Close is a no-op for file-based storage.
func (s *Store) Close() error {
	return nil
}

// --- portfolio store ---

type portfolioStore struct {
	store *Store
}

func (p *portfolioStore) GetPortfolio(ctx context.Context, name string) (*models.Portfolio, error) {
	path := filepath.Join(p.store.portfolioDir, sanitizeKey(name)+".json")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return models.NewPortfolio(name, ""), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read portfolio %s: %w", name, err)
	}

	var portfolio models.Portfolio
	if err := json.Unmarshal(data, &portfolio); err != nil {
		return nil, fmt.Errorf("failed to parse portfolio %s: %w", name, err)
	}
	if portfolio.Holdings == nil {
		portfolio.Holdings = map[string]models.Holding{}
	}

	return &portfolio, nil
}

func (p *portfolioStore) SavePortfolio(ctx context.Context, portfolio *models.Portfolio) error {
	portfolio.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(portfolio, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal portfolio %s: %w", portfolio.Name, err)
	}

	path := filepath.Join(p.store.portfolioDir, sanitizeKey(portfolio.Name)+".json")
	if err := atomicWrite(path, data); err != nil {
		return fmt.Errorf("failed to write portfolio %s: %w", portfolio.Name, err)
	}

	p.store.logger.Debug().Str("portfolio", portfolio.Name).Int("holdings", len(portfolio.Holdings)).Msg("Portfolio saved")
	return nil
}

func (p *portfolioStore) DeletePortfolio(ctx context.Context, name string) error {
	path := filepath.Join(p.store.portfolioDir, sanitizeKey(name)+".json")
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete portfolio %s: %w", name, err)
	}
	return nil
}

// --- watchlist store ---

type watchlistStore struct {
	store *Store
}

func (w *watchlistStore) GetWatchlist(ctx context.Context) ([]string, error) {
	data, err := os.ReadFile(w.store.watchlistPath)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read watchlist: %w", err)
	}

	var tickers []string
	if err := json.Unmarshal(data, &tickers); err != nil {
		return nil, fmt.Errorf("failed to parse watchlist: %w", err)
	}

	return tickers, nil
}

func (w *watchlistStore) SaveWatchlist(ctx context.Context, tickers []string) error {
	if tickers == nil {
		tickers = []string{}
	}

	data, err := json.MarshalIndent(tickers, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal watchlist: %w", err)
	}

	if err := atomicWrite(w.store.watchlistPath, data); err != nil {
		return fmt.Errorf("failed to write watchlist: %w", err)
	}

	w.store.logger.Debug().Int("tickers", len(tickers)).Msg("Watchlist saved")
	return nil
}

// --- helpers ---

func sanitizeKey(key string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")
	return r.Replace(key)
}

func atomicWrite(target string, data []byte) error {
	dir := filepath.Dir(target)

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
