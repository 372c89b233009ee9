// Package middleware provides HTTP middleware for the diagnostic API server.
//
// Each concern lives in its own file:
//
//   - recovery.go: panic recovery
//   - request_id.go: request ID generation and propagation
//   - logging.go: structured request logging
//   - metrics.go: HTTP metrics collection
//
// All middleware follows the standard pattern func(http.Handler) http.Handler
// so handlers compose by plain nesting.
package middleware
