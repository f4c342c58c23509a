package docsearch

import "context"

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content; a fetch must block until the page reaches a quiescent network
// state and a root content element is present.
type Fetcher interface {
	// Fetch navigates to the URL, waits for rendering to settle, and
	// returns the rendered HTML. The context controls timeout and
	// cancellation; a render exceeding the timeout is a fetch failure.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
