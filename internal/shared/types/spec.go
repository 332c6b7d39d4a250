package types

import "time"

// Metadata carries identity and provenance for a Spec
type Metadata struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generatedAt"`
	Description string    `json:"description,omitempty"`
}

// Spec is the canonical, normalized description of one UI node
type Spec struct {
	Identifier string         `json:"type"`
	Properties map[string]any `json:"props"`
	Children   []*Spec        `json:"children"`
	Metadata   Metadata       `json:"metadata"`
}

// Prop returns a property value by key
func (s *Spec) Prop(key string) (any, bool) {
	if s == nil || s.Properties == nil {
		return nil, false
	}
	v, ok := s.Properties[key]
	return v, ok
}

// Count returns the number of nodes in the tree rooted at s
func (s *Spec) Count() int {
	if s == nil {
		return 0
	}
	n := 1
	for _, child := range s.Children {
		n += child.Count()
	}
	return n
}

// Depth returns the height of the tree rooted at s (a leaf has depth 1)
func (s *Spec) Depth() int {
	if s == nil {
		return 0
	}
	deepest := 0
	for _, child := range s.Children {
		if d := child.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// Clone returns a deep copy of the tree rooted at s
func (s *Spec) Clone() *Spec {
	if s == nil {
		return nil
	}
	out := &Spec{
		Identifier: s.Identifier,
		Properties: CloneMap(s.Properties),
		Children:   make([]*Spec, 0, len(s.Children)),
		Metadata:   s.Metadata,
	}
	for _, child := range s.Children {
		if child != nil {
			out.Children = append(out.Children, child.Clone())
		}
	}
	return out
}

// CloneMap deep copies a JSON-like map. Nested maps and slices are copied,
// scalar values are shared.
func CloneMap(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return CloneMap(val)
	case []any:
		items := make([]any, len(val))
		for i, item := range val {
			items[i] = cloneValue(item)
		}
		return items
	default:
		return v
	}
}
