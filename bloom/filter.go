// Package bloom provides a probabilistic pre-filter for visited URLs.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter answers "definitely not seen" for URLs without touching the
// exact visited set. Positive answers may be false and must be confirmed.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a URL.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test returns true if the URL might have been added.
// False positives are possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}
