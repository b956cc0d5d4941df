package crawl

// Link is a unit of crawl work: a normalized URL and its distance in
// links from the seed.
type Link struct {
	URL   string
	Depth int
}

// Frontier is the explicit work stack of a depth-first crawl.
// It replaces call-stack recursion so deep sites cannot exhaust the stack.
// Frontier does not deduplicate; the crawler re-checks the visited set
// when a link is popped. It is not safe for concurrent use.
type Frontier struct {
	stack []Link
}

// NewFrontier creates a Frontier holding the seed link.
func NewFrontier(seed Link) *Frontier {
	return &Frontier{stack: []Link{seed}}
}

// PushChildren adds the links found on one page so that they are popped
// in the order they appear in the page.
func (f *Frontier) PushChildren(links []Link) {
	for i := len(links) - 1; i >= 0; i-- {
		f.stack = append(f.stack, links[i])
	}
}

// Pop returns the next link to visit.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (Link, bool) {
	n := len(f.stack)
	if n == 0 {
		return Link{}, false
	}
	link := f.stack[n-1]
	f.stack = f.stack[:n-1]
	return link, true
}

// Len returns the number of pending links.
func (f *Frontier) Len() int {
	return len(f.stack)
}
