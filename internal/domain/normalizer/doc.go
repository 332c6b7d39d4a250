// Package normalizer converts loosely structured UI descriptions produced by
// an AI agent into canonical Spec trees.
//
// Agents emit several historical encodings of the same component tree. The
// normalizer reconciles them with a fixed set of rules:
//
//   - identifier: "type", else "name"
//   - properties: "props" overlaid with "templateProps" (later keys win)
//   - children, first match wins: top-level "children", "children" inside
//     props, top-level "sections", "sections" inside props
//   - a spec-shaped "content" prop is appended as one more child
//   - metadata is kept when present and synthesized otherwise
//
// Children that cannot be resolved are dropped without failing their parent.
// A root that cannot be resolved yields ErrUnresolvableSpec; callers render
// the Fallback spec in its place.
//
// The Discover helper searches arbitrary wrapper JSON (parsed, response,
// result, data, payload, JSON-encoded strings, arrays) for embedded specs up
// to a bounded depth.
//
// Example Usage:
//
//	n := normalizer.New(normalizer.WithLogger(logger))
//	spec := n.NormalizeOrFallback(raw)
//	found := n.Discover(agentPayload)
package normalizer
