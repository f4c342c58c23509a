package main

import (
	"context"
	"io"

	"github.com/ShawnKyzer/docsearch"
	"github.com/ShawnKyzer/docsearch/crawl"
	"github.com/ShawnKyzer/docsearch/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	DB      *sqlite.DB
	Index   docsearch.Index
	Crawler *crawl.Crawler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Index   string `default:"strands-agents-docs" help:"Search index name"`
	Verbose bool   `short:"v" help:"Log fetch and index activity to stderr"`

	Crawl    CrawlCmd    `cmd:"" help:"Crawl a documentation site and index its sections"`
	Search   SearchCmd   `cmd:"" help:"Search the index"`
	Sections SectionsCmd `cmd:"" help:"Show indexed document counts by section"`
	Serve    ServeCmd    `cmd:"" help:"Serve the index over MCP"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URLs       []string `arg:"" help:"Seed URLs to crawl"`
	Recreate   bool     `short:"r" help:"Drop and recreate the index first"`
	Sitemap    bool     `help:"Merge sitemap-discovered URLs into the crawl"`
	NoJS       bool     `name:"no-js" help:"Fetch with plain HTTP instead of a browser"`
	NoFollow   bool     `name:"no-follow" help:"Do not follow navigation links"`
	Filter     []string `short:"F" name:"filter" help:"Filter URLs by regex (repeatable)"`
	DocVersion string   `name:"doc-version" default:"latest" help:"Version stamped on indexed documents"`
	MaxPages   int      `default:"1000" help:"Maximum pages to crawl"`
	RPS        float64  `name:"rps" default:"1" help:"Requests per second per domain"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query   string `arg:"" help:"Search query"`
	Limit   int    `short:"n" default:"10" help:"Maximum results"`
	Section string `short:"s" help:"Restrict results to a section"`
}

// SectionsCmd is the "sections" subcommand.
type SectionsCmd struct{}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	HTTP string `help:"HTTP listen address (stdio transport when empty)"`
}
