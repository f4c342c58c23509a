package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ShawnKyzer/docsearch"
	"github.com/ShawnKyzer/docsearch/crawl"
	"github.com/ShawnKyzer/docsearch/goquery"
	dshttp "github.com/ShawnKyzer/docsearch/http"
	"github.com/ShawnKyzer/docsearch/rod"
	dslog "github.com/ShawnKyzer/docsearch/slog"
	"github.com/ShawnKyzer/docsearch/sqlite"
	"github.com/alecthomas/kong"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database backing the search index.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docsearch"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docsearch --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCSEARCH_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.DB = m.DB
	deps.Index = dslog.NewLoggingIndex(sqlite.NewIndex(m.DB, cli.Index), logger)

	// Wire command-specific dependencies based on command
	if cmd == "crawl" {
		var fetcher docsearch.Fetcher
		if cli.Crawl.NoJS {
			fetcher = dshttp.NewFetcher()
		} else {
			browser, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --no-js for static sites")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = browser
		}
		defer fetcher.Close()

		var sitemaps docsearch.SitemapService
		if cli.Crawl.Sitemap {
			sitemaps = dslog.NewLoggingSitemapService(dshttp.NewSitemapService(nil), logger)
		}

		deps.Crawler = &crawl.Crawler{
			Fetcher:   dslog.NewLoggingFetcher(fetcher, logger),
			Extractor: goquery.NewExtractor(),
			Indexer: &crawl.Indexer{
				Index:     deps.Index,
				Reconnect: m.DB.Reopen,
				Logger:    logger,
			},
			Sitemaps:    sitemaps,
			RateLimiter: crawl.NewDomainLimiter(cli.Crawl.RPS),
			FollowLinks: !cli.Crawl.NoFollow,
			Version:     cli.Crawl.DocVersion,
			MaxPages:    cli.Crawl.MaxPages,
			Logger:      logger,
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("DOCSEARCH_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "docsearch.db"
	}
	dir := filepath.Join(home, ".docsearch")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "docsearch.db")
}
