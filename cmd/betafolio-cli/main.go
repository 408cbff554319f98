// Command betafolio-cli is an interactive terminal client for managing a
// portfolio and watchlist and running beta analysis without the HTTP server.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/bobmcallan/betafolio/internal/app"
	"github.com/bobmcallan/betafolio/internal/common"
	"github.com/bobmcallan/betafolio/internal/models"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file (default: $BETAFOLIO_CONFIG, then betafolio.toml)")
	portfolioName := flag.String("portfolio", app.DefaultPortfolioName, "portfolio name to operate on")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(common.GetFullVersion())
		return
	}

	a, err := app.NewApp(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	cli := &cli{
		app:       a,
		portfolio: *portfolioName,
		scanner:   bufio.NewScanner(os.Stdin),
	}
	cli.run(context.Background())
}

type cli struct {
	app       *app.App
	portfolio string
	scanner   *bufio.Scanner
}

func (c *cli) run(ctx context.Context) {
	fmt.Println("Betafolio — Portfolio Beta Analysis")
	fmt.Printf("Portfolio: %s | Benchmark: %s\n", c.portfolio, c.app.BetaService.Benchmark())

	for {
		fmt.Println()
		fmt.Println("1. View portfolio")
		fmt.Println("2. Add holding")
		fmt.Println("3. Remove holding")
		fmt.Println("4. Analyze portfolio beta")
		fmt.Println("5. Generate report")
		fmt.Println("6. View watchlist")
		fmt.Println("7. Add to watchlist")
		fmt.Println("8. Remove from watchlist")
		fmt.Println("9. Get recommendations")
		fmt.Println("10. Sector analysis")
		fmt.Println("11. Diversification check")
		fmt.Println("12. Exit")

		choice := c.prompt("Choice: ")
		switch choice {
		case "1":
			c.viewPortfolio(ctx)
		case "2":
			c.addHolding(ctx)
		case "3":
			c.removeHolding(ctx)
		case "4":
			c.analyze(ctx)
		case "5":
			c.report(ctx)
		case "6":
			c.viewWatchlist(ctx)
		case "7":
			c.addToWatchlist(ctx)
		case "8":
			c.removeFromWatchlist(ctx)
		case "9":
			c.recommendations(ctx)
		case "10":
			c.sectors(ctx)
		case "11":
			c.diversification(ctx)
		case "12", "q", "quit", "exit":
			fmt.Println("Goodbye.")
			return
		default:
			fmt.Println("Invalid choice.")
		}
	}
}

// prompt prints a message and reads one trimmed line. EOF returns "".
func (c *cli) prompt(msg string) string {
	fmt.Print(msg)
	if !c.scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(c.scanner.Text())
}

func (c *cli) viewPortfolio(ctx context.Context) {
	p, err := c.app.PortfolioService.GetPortfolio(ctx, c.portfolio)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(p.Holdings) == 0 {
		fmt.Println("Portfolio is empty.")
		return
	}

	tickers := p.Tickers()
	sort.Strings(tickers)

	fmt.Printf("\n%-12s %12s %14s %16s\n", "TICKER", "SHARES", "PRICE", "MARKET VALUE")
	for _, t := range tickers {
		h := p.Holdings[t]
		fmt.Printf("%-12s %12.2f %14.2f %16.2f\n", h.Ticker, h.Shares, h.PricePerShare, h.MarketValue())
	}
	fmt.Printf("\nTotal value: $%.2f\n", p.TotalValue())
}

func (c *cli) addHolding(ctx context.Context) {
	ticker := c.prompt("Ticker (e.g. AAPL.US): ")
	if ticker == "" {
		fmt.Println("Ticker required.")
		return
	}

	shares, err := strconv.ParseFloat(c.prompt("Shares: "), 64)
	if err != nil || shares <= 0 {
		fmt.Println("Shares must be a positive number.")
		return
	}

	price := 0.0
	if raw := c.prompt("Price per share (blank = current market price): "); raw != "" {
		price, err = strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			fmt.Println("Price must be a non-negative number.")
			return
		}
	}

	p, err := c.app.PortfolioService.AddHolding(ctx, c.portfolio, ticker, shares, price)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	h := p.Holdings[models.NormalizeTicker(ticker)]
	fmt.Printf("Added %s: %.2f shares @ $%.2f\n", h.Ticker, h.Shares, h.PricePerShare)
}

func (c *cli) removeHolding(ctx context.Context) {
	ticker := c.prompt("Ticker to remove: ")
	if ticker == "" {
		fmt.Println("Ticker required.")
		return
	}
	if _, err := c.app.PortfolioService.RemoveHolding(ctx, c.portfolio, ticker); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Removed %s.\n", models.NormalizeTicker(ticker))
}

func (c *cli) analyze(ctx context.Context) {
	fmt.Println("Fetching price history and computing betas...")
	analysis, err := c.app.PortfolioService.Analyze(ctx, c.portfolio)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	ba := analysis.BetaAnalysis
	fmt.Printf("\nPortfolio beta: %.3f\n", analysis.PortfolioBeta)
	fmt.Printf("Risk level:     %s — %s\n", analysis.Profile.Tier, analysis.Profile.Description)
	fmt.Printf("Sensitivity:    %s\n", analysis.MarketSensitivity)
	fmt.Printf("Total value:    $%.2f across %d priced holdings\n", ba.TotalValue, ba.StockCount)

	tickers := make([]string, 0, len(ba.StockBetas))
	for t := range ba.StockBetas {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	fmt.Printf("\n%-12s %10s %10s %16s\n", "TICKER", "BETA", "WEIGHT", "MARKET VALUE")
	for _, t := range tickers {
		sb := ba.StockBetas[t]
		fmt.Printf("%-12s %10.3f %9.1f%% %16.2f\n", t, sb.Beta, sb.Weight*100, sb.MarketValue)
	}
	if len(ba.Unpriced) > 0 {
		fmt.Printf("\nExcluded (no reliable beta): %s\n", strings.Join(ba.Unpriced, ", "))
	}
}

func (c *cli) report(ctx context.Context) {
	fmt.Println("Generating report...")
	rpt, err := c.app.ReportService.GenerateReport(ctx, c.portfolio)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println()
	fmt.Println(rpt.Content)
}

func (c *cli) viewWatchlist(ctx context.Context) {
	fmt.Println("Fetching watchlist data...")
	stocks, err := c.app.WatchlistService.GetWatchlistWithBetas(ctx)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(stocks) == 0 {
		fmt.Println("Watchlist is empty.")
		return
	}

	fmt.Printf("\n%-12s %10s %10s %-14s %-24s\n", "TICKER", "PRICE", "BETA", "RISK", "SECTOR")
	for _, s := range stocks {
		betaStr := "n/a"
		if s.BetaDefined {
			betaStr = fmt.Sprintf("%.3f", s.Beta)
		}
		fmt.Printf("%-12s %10.2f %10s %-14s %-24s\n", s.Ticker, s.CurrentPrice, betaStr, s.RiskTier, s.Sector)
	}
}

func (c *cli) addToWatchlist(ctx context.Context) {
	ticker := c.prompt("Ticker to watch: ")
	if ticker == "" {
		fmt.Println("Ticker required.")
		return
	}
	if err := c.app.WatchlistService.AddTicker(ctx, ticker); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Added %s to watchlist.\n", models.NormalizeTicker(ticker))
}

func (c *cli) removeFromWatchlist(ctx context.Context) {
	ticker := c.prompt("Ticker to remove: ")
	if ticker == "" {
		fmt.Println("Ticker required.")
		return
	}
	if err := c.app.WatchlistService.RemoveTicker(ctx, ticker); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Removed %s from watchlist.\n", models.NormalizeTicker(ticker))
}

func (c *cli) recommendations(ctx context.Context) {
	target := 0.0
	if raw := c.prompt(fmt.Sprintf("Target beta (blank = %.2f): ", c.app.Config.Analysis.TargetBeta)); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fmt.Println("Target beta must be a number.")
			return
		}
		target = parsed
	}

	fmt.Println("Analyzing portfolio and watchlist...")
	result, err := c.app.WatchlistService.Recommend(ctx, c.portfolio, target)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("\nCurrent beta: %.3f | Target: %.3f | Difference: %+.3f\n",
		result.CurrentBeta, result.TargetBeta, result.BetaDifference)
	fmt.Println(result.Message)

	for i, rec := range result.Recommendations {
		fmt.Printf("\n%d. %s (beta %.3f, %s)\n", i+1, rec.Ticker, rec.Beta, rec.Impact)
		fmt.Printf("   %s\n", rec.Reason)
	}
}

func (c *cli) sectors(ctx context.Context) {
	fmt.Println("Fetching watchlist data...")
	stats, err := c.app.WatchlistService.SectorAnalysis(ctx)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(stats) == 0 {
		fmt.Println("Watchlist is empty.")
		return
	}

	fmt.Printf("\n%-24s %8s %10s %-14s\n", "SECTOR", "STOCKS", "AVG BETA", "RISK")
	for _, s := range stats {
		fmt.Printf("%-24s %8d %10.3f %-14s\n", s.Sector, s.Count, s.AvgBeta, s.RiskTier)
	}
}

func (c *cli) diversification(ctx context.Context) {
	fmt.Println("Fetching watchlist data...")
	report, err := c.app.WatchlistService.Diversification(ctx)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("\nWatchlist risk spread (%d stocks):\n", report.TotalStocks)
	fmt.Printf("  Conservative: %d\n", report.ConservativeCount)
	fmt.Printf("  Moderate:     %d\n", report.ModerateCount)
	fmt.Printf("  Aggressive:   %d\n", report.AggressiveCount)

	for _, s := range report.Suggestions {
		fmt.Printf("\n- %s\n", s.Message)
		for _, stock := range s.Suggestions {
			fmt.Printf("    %s (beta %.3f)\n", stock.Ticker, stock.Beta)
		}
	}
}
