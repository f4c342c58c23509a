// Package rod fetches rendered HTML from JavaScript-heavy documentation
// sites using Chrome browser automation.
package rod

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ShawnKyzer/docsearch"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements docsearch.Fetcher at compile time.
var _ docsearch.Fetcher = (*Fetcher)(nil)

const (
	// DefaultNavigationTimeout bounds the initial page load.
	DefaultNavigationTimeout = 30 * time.Second

	// DefaultContentTimeout bounds the wait for the main content element
	// to appear after the load event.
	DefaultContentTimeout = 10 * time.Second

	// DefaultSettleDelay is the pause after the content element appears,
	// giving client-side rendering a chance to finish.
	DefaultSettleDelay = 2 * time.Second

	// DefaultMaxPages is the number of pages fetched before the browser is
	// recycled. Chrome accumulates memory over time and the baseline never
	// returns to initial levels even with proper page cleanup.
	DefaultMaxPages = 75
)

// Fetcher retrieves rendered HTML using a headless Chrome browser. The
// browser is recycled after MaxPages fetches to bound memory growth during
// long crawls. Fetcher is safe for concurrent use.
type Fetcher struct {
	navTimeout     time.Duration
	contentTimeout time.Duration
	settleDelay    time.Duration
	maxPages       int64

	mu        sync.Mutex
	browser   *rod.Browser
	launcher  *launcher.Launcher
	pageCount int64
	closed    atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithNavigationTimeout sets the page load timeout.
func WithNavigationTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.navTimeout = d }
}

// WithContentTimeout sets the wait for the main content element.
func WithContentTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.contentTimeout = d }
}

// WithSettleDelay sets the pause after the content element appears.
func WithSettleDelay(d time.Duration) Option {
	return func(f *Fetcher) { f.settleDelay = d }
}

// WithMaxPages sets the number of pages before browser recycling.
func WithMaxPages(n int64) Option {
	return func(f *Fetcher) { f.maxPages = n }
}

// NewFetcher launches a headless Chrome browser. Close must be called when
// the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		navTimeout:     DefaultNavigationTimeout,
		contentTimeout: DefaultContentTimeout,
		settleDelay:    DefaultSettleDelay,
		maxPages:       DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	if err := f.launchBrowser(); err != nil {
		return nil, err
	}

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML. It waits for the
// page's load event and for in-flight requests to quiet down, then for a
// <main> element to appear (falling back to <body> on sites without one),
// and finally pauses briefly to let client-side rendering settle.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.closed.Load() {
		return "", docsearch.Errorf(docsearch.EINTERNAL, "fetcher is closed")
	}

	browser, err := f.currentBrowser()
	if err != nil {
		return "", err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	nav := page.Timeout(f.navTimeout)
	waitIdle := nav.WaitRequestIdle(time.Second, nil, nil, nil)
	if err := nav.Navigate(url); err != nil {
		return "", fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := nav.WaitLoad(); err != nil {
		return "", fmt.Errorf("waiting for load: %w", err)
	}
	waitIdle()

	if _, err := page.Timeout(f.contentTimeout).Element("main"); err != nil {
		if _, err := page.Timeout(f.contentTimeout).Element("body"); err != nil {
			return "", fmt.Errorf("waiting for content: %w", err)
		}
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(f.settleDelay):
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	atomic.AddInt64(&f.pageCount, 1)
	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return f.closeBrowser()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.launcher == nil {
		return 0
	}
	return f.launcher.PID()
}

// currentBrowser returns the active browser, recycling it first if the page
// count has reached maxPages.
func (f *Fetcher) currentBrowser() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if atomic.LoadInt64(&f.pageCount) >= f.maxPages {
		f.recycleBrowser()
	}

	if f.browser == nil {
		return nil, docsearch.Errorf(docsearch.EUNAVAILABLE, "browser not available")
	}
	return f.browser, nil
}

// launchBrowser starts a new browser instance with stability flags.
func (f *Fetcher) launchBrowser() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = lnchr
	return nil
}

// closeBrowser shuts down the current browser and launcher.
// Must be called with mu held.
func (f *Fetcher) closeBrowser() error {
	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	if f.launcher != nil {
		f.launcher.Kill()
		f.launcher = nil
	}
	return err
}

// recycleBrowser starts a fresh browser and closes the old one.
// If launching the new browser fails, the old browser is kept.
// Must be called with mu held.
func (f *Fetcher) recycleBrowser() {
	oldBrowser := f.browser
	oldLauncher := f.launcher
	f.browser = nil
	f.launcher = nil

	if err := f.launchBrowser(); err != nil {
		f.browser = oldBrowser
		f.launcher = oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	atomic.StoreInt64(&f.pageCount, 0)
}
