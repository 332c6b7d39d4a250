// Package middleware provides the gin middleware stack of the render API:
// CORS, per-client rate limiting, request IDs, gzip request bodies and a
// request body size limit.
package middleware
