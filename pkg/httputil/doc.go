// Package httputil provides the HTTP client plumbing used by remote content
// sources.
//
// # Overview
//
//   - [Client]: JSON GET/POST with default headers, status mapping and hooks
//   - [Client.Cached]: read-through caching on top of any [cache.Cache]
//   - [Retry]: automatic retry with exponential backoff
//
// # Status Mapping
//
// Responses are mapped to errors so callers can branch on them:
//
//   - 2xx: success
//   - 404: [ErrNotFound]
//   - 429 and 5xx: [ErrNetwork] wrapped in a [RetryableError]
//   - other 4xx: [ErrNetwork]
//
// Transport failures (DNS, connection reset, timeouts) are retryable too.
//
// # Retry
//
// [Retry] only retries errors wrapped in [RetryableError]. The delay doubles
// after each attempt and the wait is abandoned as soon as the context is
// cancelled:
//
//	err := httputil.Retry(ctx, 3, 500*time.Millisecond, func() error {
//	    return client.Get(ctx, url, &out)
//	})
package httputil
