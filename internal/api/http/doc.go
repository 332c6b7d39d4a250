// Package http implements the gin handlers of the render API.
//
// Endpoints:
//   - GET  /health
//   - POST /normalize, /discover, /render, /render/batch, /generate
//   - GET  /catalog, /catalog/categories, /catalog/categories/:category,
//     /catalog/components/:name
//   - GET  /metrics/json
//
// Malformed requests answer 400 with {"error": ...}. A spec that cannot be
// normalized is not a request error for the render endpoints: they render
// the fallback alert instead.
package http
