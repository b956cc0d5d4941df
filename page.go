package webpdf

// Outcome describes what happened to a single URL during a crawl.
type Outcome int

// Possible page outcomes.
const (
	OutcomeRendered Outcome = iota
	OutcomeFetchFailed
	OutcomeRenderFailed
	OutcomeSkippedDepth
	OutcomeSkippedExcluded
	OutcomeSkippedVisited
	OutcomeSkippedExternal
	OutcomeSkippedSuffix
)

var outcomeNames = map[Outcome]string{
	OutcomeRendered:        "rendered",
	OutcomeFetchFailed:     "fetch failed",
	OutcomeRenderFailed:    "render failed",
	OutcomeSkippedDepth:    "skipped (depth)",
	OutcomeSkippedExcluded: "skipped (excluded)",
	OutcomeSkippedVisited:  "skipped (visited)",
	OutcomeSkippedExternal: "skipped (external)",
	OutcomeSkippedSuffix:   "skipped (suffix)",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return "unknown"
}

// Skipped reports whether the URL was never fetched.
func (o Outcome) Skipped() bool {
	return o >= OutcomeSkippedDepth
}

// Decision is the verdict of the URL filter for a candidate link.
type Decision int

// Filter decisions, in the order the policy evaluates them.
const (
	Accept Decision = iota
	RejectVisited
	RejectDepth
	RejectExcluded
	RejectExternal
	RejectSuffix
)

var decisionNames = map[Decision]string{
	Accept:         "accept",
	RejectVisited:  "visited",
	RejectDepth:    "depth",
	RejectExcluded: "excluded",
	RejectExternal: "external",
	RejectSuffix:   "suffix",
}

func (d Decision) String() string {
	if name, ok := decisionNames[d]; ok {
		return name
	}
	return "unknown"
}

// Outcome maps a rejection to the outcome recorded for the skipped URL.
// Accept has no skip outcome and maps to OutcomeRendered.
func (d Decision) Outcome() Outcome {
	switch d {
	case RejectVisited:
		return OutcomeSkippedVisited
	case RejectDepth:
		return OutcomeSkippedDepth
	case RejectExcluded:
		return OutcomeSkippedExcluded
	case RejectExternal:
		return OutcomeSkippedExternal
	case RejectSuffix:
		return OutcomeSkippedSuffix
	}
	return OutcomeRendered
}

// PageResult is the transient record of one crawl step.
type PageResult struct {
	URL     string
	Depth   int
	PDFPath string
	Outcome Outcome
	Err     error
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(result PageResult)

// CrawlReport summarises a finished crawl.
type CrawlReport struct {
	RenderedCount int
	FailedCount   int
	SkippedCount  int

	// PDFPaths lists rendered files in discovery order.
	PDFPaths []string
}

// MergeResult describes the outcome of the merge stage.
type MergeResult int

// Merge stage results.
const (
	Merged MergeResult = iota
	NothingToMerge
	MergeSkipped
	MergeFailed
)

func (r MergeResult) String() string {
	switch r {
	case Merged:
		return "merged"
	case NothingToMerge:
		return "nothing to merge"
	case MergeSkipped:
		return "merge skipped"
	case MergeFailed:
		return "merge failed"
	}
	return "unknown"
}
