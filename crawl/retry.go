package crawl

import (
	"context"
	"time"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// IndexSetupDelays returns the backoff delays used while waiting for the
// search index to become reachable: 4s, 8s, 10s.
func IndexSetupDelays() []time.Duration {
	return []time.Duration{4 * time.Second, 8 * time.Second, 10 * time.Second}
}

// Retry runs op until it succeeds or the delays are exhausted. The operation
// runs len(delays)+1 times at most, sleeping delays[i] after the i-th
// failure. A canceled context cuts the retry loop short.
func Retry(ctx context.Context, delays []time.Duration, op func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 0; ; attempt++ {
		if err := op(ctx); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if attempt >= len(delays) {
			return lastErr
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
}

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// FetchWithRetry fetches a URL with backoff, using the given delays between
// attempts. Nil delays means DefaultRetryDelays.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, delays []time.Duration) (string, error) {
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	var html string
	err := Retry(ctx, delays, func(ctx context.Context) error {
		var err error
		html, err = fetch(ctx, url)
		return err
	})
	if err != nil {
		return "", err
	}
	return html, nil
}
