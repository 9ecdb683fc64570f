// Package bloom provides probabilistic URL deduplication for link discovery.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Seen tracks which URLs have been encountered during a discovery crawl.
// False positives are possible (a new URL reported as seen), false negatives
// are not, so it must only guard best-effort discovery, never the exact
// asset worklist.
type Seen struct {
	f *bloom.BloomFilter
}

// NewSeen creates a tracker sized for n expected URLs with the given false
// positive rate.
func NewSeen(n uint, fpRate float64) *Seen {
	return &Seen{f: bloom.NewWithEstimates(n, fpRate)}
}

// Visit records the URL and reports whether this is its first visit.
func (s *Seen) Visit(url string) bool {
	if s.f.TestString(url) {
		return false
	}
	s.f.AddString(url)
	return true
}

// Test reports whether the URL might have been visited.
func (s *Seen) Test(url string) bool {
	return s.f.TestString(url)
}

// EstimatedCount returns the approximate number of visited URLs.
func (s *Seen) EstimatedCount() uint {
	return uint(s.f.ApproximatedSize())
}
