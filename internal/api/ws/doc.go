// Package ws serves the /stream WebSocket endpoint.
//
// Message Types (Client → Server):
//   - render: render the spec carried in "spec"
//   - generate: ask the agent for a UI described by "prompt"
//   - ping: keep-alive ping
//
// Message Types (Server → Client):
//   - system: connection greeting
//   - status: a request was accepted and is being processed
//   - result: the rendered spec, in "result"
//   - error: the request failed, reason in "message"
//   - pong: reply to ping
//
// Replies echo the "id" of the request they answer.
//
// Example Usage:
//
//	handler := ws.NewHandler(pipeline, metrics, logger)
//	router.GET("/stream", handler.HandleConnection)
package ws
