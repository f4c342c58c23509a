package docsearch

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

const (
	// MinSectionContent is the content-quality floor: candidates whose
	// trimmed content is not longer than this are discarded.
	MinSectionContent = 100

	// fingerprintLen is the content prefix length used for deduplication.
	// This is a prefix heuristic, not a semantic one: near-duplicates with
	// different leading text are not caught, which keeps the check O(n).
	fingerprintLen = 100
)

// FingerprintSet tracks content prefixes already accepted during a crawl
// run. The zero value is not usable; construct with NewFingerprintSet.
type FingerprintSet struct {
	seen map[uint64]struct{}
}

// NewFingerprintSet returns an empty fingerprint set.
func NewFingerprintSet() *FingerprintSet {
	return &FingerprintSet{seen: make(map[uint64]struct{})}
}

// Add records the content's fingerprint. Returns false if an identical
// fingerprint was already present.
func (s *FingerprintSet) Add(content string) bool {
	fp := Fingerprint(content)
	if _, ok := s.seen[fp]; ok {
		return false
	}
	s.seen[fp] = struct{}{}
	return true
}

// Contains reports whether the content's fingerprint has been recorded.
func (s *FingerprintSet) Contains(content string) bool {
	_, ok := s.seen[Fingerprint(content)]
	return ok
}

// Len returns the number of recorded fingerprints.
func (s *FingerprintSet) Len() int {
	return len(s.seen)
}

// Fingerprint hashes the first 100 characters of content.
func Fingerprint(content string) uint64 {
	if len(content) > fingerprintLen {
		content = content[:fingerprintLen]
	}
	return xxhash.Sum64String(content)
}

// FilterCandidates applies the content floor and prefix deduplication to the
// unioned candidate stream, in order. A later candidate whose fingerprint
// already appears among accepted candidates is dropped. The fingerprint set
// carries across calls so deduplication spans a whole crawl run.
func FilterCandidates(candidates []SectionCandidate, seen *FingerprintSet) []SectionCandidate {
	kept := make([]SectionCandidate, 0, len(candidates))
	for _, c := range candidates {
		if len(strings.TrimSpace(c.Content)) <= MinSectionContent {
			continue
		}
		if !seen.Add(c.Content) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}
