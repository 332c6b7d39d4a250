package types

import "html/template"

// RenderFunc renders one additional Spec on behalf of a capability
type RenderFunc func(spec *Spec) Output

// Capability turns normalized props and already-rendered children into an
// HTML fragment. Implementations should render an empty state for missing
// data instead of returning an error. props is a private copy; changes to it
// do not reach the Spec being rendered.
type Capability func(props map[string]any, children []Output, render RenderFunc) (template.HTML, error)

// Entry is a registry catalog entry
type Entry struct {
	Identifier     string            `json:"identifier"`
	Capability     Capability        `json:"-"`
	Category       string            `json:"category"`
	Tags           []string          `json:"tags,omitempty"`
	Description    string            `json:"description,omitempty"`
	PropertySchema map[string]string `json:"property_schema,omitempty"`
}

// Common capability categories
const (
	CategoryLayout  = "layout"
	CategoryContent = "content"
	CategoryData    = "data"
	CategoryInput   = "input"
)

// CatalogStats contains registry statistics
type CatalogStats struct {
	Total       int            `json:"total"`
	PerCategory map[string]int `json:"per_category"`
}
