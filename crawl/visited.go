package crawl

import "github.com/fwojciec/webpdf/bloom"

// Visited set sizing for the Bloom pre-filter.
const (
	visitedExpectedURLs      = 10000
	visitedFalsePositiveRate = 0.01
)

var _ Visited = (*VisitedSet)(nil)

// VisitedSet records the normalized URLs a crawl has visited.
// A Bloom filter answers most negative lookups; the exact set resolves
// the filter's false positives so no page is ever skipped by mistake.
type VisitedSet struct {
	filter *bloom.Filter
	urls   map[string]struct{}
}

// NewVisitedSet creates an empty VisitedSet.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{
		filter: bloom.NewFilter(visitedExpectedURLs, visitedFalsePositiveRate),
		urls:   make(map[string]struct{}),
	}
}

// Add marks url as visited. It returns false if url was already present.
func (s *VisitedSet) Add(url string) bool {
	if s.Contains(url) {
		return false
	}
	s.filter.Add(url)
	s.urls[url] = struct{}{}
	return true
}

// Contains reports whether url was visited.
func (s *VisitedSet) Contains(url string) bool {
	if !s.filter.Test(url) {
		return false
	}
	_, ok := s.urls[url]
	return ok
}

// Len returns the number of visited URLs.
func (s *VisitedSet) Len() int {
	return len(s.urls)
}
