package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webpdf"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return RetryDelays(3)
}

// RetryDelays returns n exponential backoff delays starting at one second.
func RetryDelays(n int) []time.Duration {
	if n <= 0 {
		return nil
	}
	delays := make([]time.Duration, n)
	d := time.Second
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}

// Retryable reports whether a failed fetch is worth repeating.
// Only network-level failures are; a server answering with an error
// status or non-HTML content will answer the same way again.
func Retryable(err error) bool {
	return webpdf.ErrorCode(err) == webpdf.EFETCH
}

// FetchWithRetryDelays calls fetch once and then once more after each delay
// for as long as the error is retryable. The logger, if provided, receives
// one line per retry.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || !Retryable(err) {
			break
		}

		if logger != nil {
			logger.Debug("retry fetch", "url", url, "attempt", attempt+2, "err", err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
