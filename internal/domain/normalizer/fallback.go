package normalizer

import (
	"fmt"

	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/types"
)

// FallbackIdentifier is the component used to display normalization failures
const FallbackIdentifier = "alert"

// Fallback builds the error-display spec shown when a root spec cannot be
// normalized
func (n *Normalizer) Fallback(err error) *types.Spec {
	reason := "unknown error"
	if err != nil {
		reason = err.Error()
	}
	now := n.now()
	return &types.Spec{
		Identifier: FallbackIdentifier,
		Properties: map[string]any{
			"variant": "error",
			"title":   "Unable to render",
			"message": fmt.Sprintf("Failed to parse UI specification: %s", reason),
		},
		Children: []*types.Spec{},
		Metadata: types.Metadata{
			ID:          n.ids.SpecID(FallbackIdentifier, now).String(),
			GeneratedAt: now,
			Description: "Fallback for an unrenderable specification",
		},
	}
}

// IsFallback reports whether spec was produced by Fallback
func IsFallback(spec *types.Spec) bool {
	if spec == nil || spec.Identifier != FallbackIdentifier {
		return false
	}
	title, _ := spec.Properties["title"].(string)
	variant, _ := spec.Properties["variant"].(string)
	return title == "Unable to render" && variant == "error"
}
