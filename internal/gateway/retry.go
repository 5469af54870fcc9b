// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST client.
package gateway

import "time"

// RetryPolicy bounds the wait for code-frequency statistics that GitHub is
// still computing (HTTP 202). MaxRetries counts retries after the initial
// request, so the gateway issues at most MaxRetries+1 requests before
// giving up.
type RetryPolicy struct {
	MaxRetries int
	Delay      time.Duration
}

// DefaultRetryPolicy matches the scheduled job's budget: five retries with
// a fixed eight-second delay between attempts.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 5,
		Delay:      8 * time.Second,
	}
}

// ShouldRetry reports whether another attempt is allowed after attempt
// consecutive 202 responses.
func (p RetryPolicy) ShouldRetry(attempt int) bool {
	return attempt <= p.MaxRetries
}
