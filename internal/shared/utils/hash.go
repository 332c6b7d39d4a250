package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/bytedance/sonic"
)

// Hasher computes deterministic content hashes
type Hasher struct {
	api sonic.API
}

// DefaultHasher returns a SHA-256 hasher with sorted-key JSON encoding
func DefaultHasher() *Hasher {
	return &Hasher{api: sonic.ConfigStd}
}

// Hash computes a hash of the input data
func (h *Hasher) Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON computes a hash of a JSON-serializable value.
// Map keys are sorted, so equal values hash equally.
func (h *Hasher) HashJSON(v any) (string, error) {
	data, err := h.api.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return h.Hash(data), nil
}

// ETag returns a quoted, shortened hash suitable for an HTTP ETag header
func (h *Hasher) ETag(v any) (string, error) {
	sum, err := h.HashJSON(v)
	if err != nil {
		return "", err
	}
	return `"` + sum[:16] + `"`, nil
}
