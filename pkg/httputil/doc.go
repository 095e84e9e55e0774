// Package httputil provides retry helpers for HTTP clients.
//
// Transient failures (network errors, 5xx responses) are marked by wrapping
// them in [RetryableError]; [Retry] and [RetryWithBackoff] then re-attempt
// the operation with exponential backoff. Non-retryable errors abort
// immediately.
package httputil
