// Package renderer walks canonical Spec trees and produces HTML output,
// dispatching every node to the capability registered for its identifier.
//
// Rendering never fails as a whole. Unknown identifiers become fallback
// placeholders that describe the catalog, failing capabilities become error
// placeholders carrying the message and trace, and trees deeper than the
// configured limit are cut with a depth placeholder. Sibling nodes are
// unaffected in every case.
//
// The renderer only reads from its Catalog; a Registry must be frozen before
// renders run concurrently.
package renderer
