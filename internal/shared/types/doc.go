// Package types provides shared data structures for the UI renderer.
//
// This package defines the core types passed between the normalizer, the
// component registry, the renderer, and the HTTP layer, so that none of
// those packages need to import each other for data shapes.
//
// Core Types:
//   - Spec: Canonical description of one UI node
//   - Metadata: Identity and provenance of a Spec
//   - Entry: Registry catalog entry binding an identifier to a Capability
//   - Capability: Implementation that turns props and children into HTML
//   - Output: Rendered form of one Spec node
//   - Diagnostic: Details attached to fallback and error placeholders
//
// Request Types:
//   - RenderRequest, GenerateRequest: HTTP bodies
//   - WSMessage: WebSocket communication
//
// Example Usage:
//
//	spec := &types.Spec{
//	    Identifier: "alert",
//	    Properties: map[string]any{"message": "x"},
//	    Children:   []*types.Spec{},
//	}
package types
