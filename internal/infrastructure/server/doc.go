// Package server assembles the render service: it seeds and freezes the
// component catalog, builds the normalize/render pipeline, and serves the
// HTTP and WebSocket API with gin.
package server
