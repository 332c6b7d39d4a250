// Package utils provides validation and hashing helpers shared across the
// renderer: payload size limits, identifier checks, and deterministic
// content hashes used as HTTP ETags.
package utils
