// Package bloom provides probabilistic seen-URL tracking for crawl
// deduplication.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// SeenSet records URLs a crawl has already queued. Membership answers can be
// false positives at the configured rate, never false negatives: a crawl may
// skip a fresh URL, but it cannot fetch the same URL twice.
type SeenSet struct {
	f *bloom.BloomFilter
}

// NewSeenSet sizes the set for n expected URLs at the given false positive
// rate.
func NewSeenSet(n uint, fpRate float64) *SeenSet {
	return &SeenSet{f: bloom.NewWithEstimates(n, fpRate)}
}

// Seen reports whether the URL may already be recorded.
func (s *SeenSet) Seen(url string) bool {
	return s.f.TestString(url)
}

// Record adds the URL and reports whether it was already present, so a
// check-then-add is a single operation.
func (s *SeenSet) Record(url string) bool {
	return s.f.TestAndAddString(url)
}
