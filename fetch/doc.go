// Package fetch provides a small convenience layer over net/http that
// standardizes request construction (":name" URL templating, query-string
// serialization, JSON bodies), applies a per-attempt timeout through
// context cancellation, and retries failed attempts under a bounded policy.
//
// Outcomes
//   - Every call returns (value, error) where the error, when non-nil, is
//     always a *Failure. No panic or raw transport error escapes Client.Do.
//   - A Failure always carries the URL, method and timestamp of the attempt,
//     even when no response was received.
//
// Retries
//   - Controlled via RequestOptions.Retry or Builder.WithRetry.
//   - A 429 response stops the loop immediately, regardless of the
//     remaining budget.
//   - All other failures (transport, timeout, non-2xx) retry until the
//     budget is exhausted.
//   - The delay before attempt N+1 comes from the configured Backoff, or
//     the default policy of N * 2s when none is set.
//
// Notes
//   - Query parameters are only appended on GET requests; on other methods
//     they are silently dropped.
//   - Request URL and body are rebuilt from the immutable RequestSpec on
//     each attempt.
package fetch
