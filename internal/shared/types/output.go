package types

import "html/template"

// Status describes how a node was rendered
type Status string

const (
	StatusRendered Status = "rendered"
	StatusFallback Status = "fallback"
	StatusError    Status = "error"
)

// Diagnostic kinds
const (
	KindUnknownCapability = "unknown_capability"
	KindRenderFailure     = "render_failure"
	KindDepthExceeded     = "depth_exceeded"
)

// Output is the rendered form of one Spec node
type Output struct {
	Key        string        `json:"key"`
	Identifier string        `json:"identifier"`
	Status     Status        `json:"status"`
	HTML       template.HTML `json:"html"`
	Diagnostic *Diagnostic   `json:"diagnostic,omitempty"`
}

// Diagnostic describes why a node rendered as a placeholder
type Diagnostic struct {
	Kind       string   `json:"kind"`
	Identifier string   `json:"identifier"`
	Properties string   `json:"properties,omitempty"`
	Message    string   `json:"message,omitempty"`
	Trace      string   `json:"trace,omitempty"`
	Registered int      `json:"registered"`
	Categories []string `json:"categories,omitempty"`
}

// OK reports whether the node rendered through its capability
func (o Output) OK() bool {
	return o.Status == StatusRendered
}
