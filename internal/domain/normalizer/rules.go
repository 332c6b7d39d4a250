package normalizer

import (
	"go.uber.org/zap"
)

// Raw field names accepted from agent output
const (
	fieldType          = "type"
	fieldName          = "name"
	fieldProps         = "props"
	fieldTemplateProps = "templateProps"
	fieldChildren      = "children"
	fieldSections      = "sections"
	fieldContent       = "content"
	fieldMetadata      = "metadata"
)

// childSource is one place a raw node may keep its children
type childSource struct {
	field  string
	nested bool // inside the merged properties rather than on the node
}

// childSources lists where children are looked for, in precedence order.
// The first source holding an array supplies the children.
var childSources = []childSource{
	{field: fieldChildren},
	{field: fieldChildren, nested: true},
	{field: fieldSections},
	{field: fieldSections, nested: true},
}

// identifier resolves the component name: "type" first, then "name"
func identifier(raw map[string]any) string {
	if t, ok := raw[fieldType].(string); ok && t != "" {
		return t
	}
	if name, ok := raw[fieldName].(string); ok && name != "" {
		return name
	}
	return ""
}

// mergeProperties copies props and overlays templateProps on top
func mergeProperties(raw map[string]any) map[string]any {
	props := make(map[string]any)
	for _, key := range []string{fieldProps, fieldTemplateProps} {
		if src, ok := raw[key].(map[string]any); ok {
			for k, v := range src {
				props[k] = v
			}
		}
	}
	return props
}

// extractChildren collects the raw children of a node and removes every
// children-bearing field from props
func extractChildren(raw, props map[string]any, logger *zap.Logger) []any {
	var (
		children []any
		chosen   string
	)

	for _, source := range childSources {
		container := raw
		if source.nested {
			container = props
		}
		value, present := container[source.field]
		if source.nested {
			delete(props, source.field)
		}
		if !present {
			continue
		}
		items, ok := value.([]any)
		if !ok {
			continue
		}
		if chosen != "" {
			logger.Debug("Ignoring secondary child source",
				zap.String("used", chosen),
				zap.String("ignored", sourceName(source)),
				zap.Int("ignored_count", len(items)),
			)
			continue
		}
		chosen = sourceName(source)
		children = items
	}

	if content, ok := props[fieldContent].(map[string]any); ok && identifier(content) != "" {
		delete(props, fieldContent)
		merged := make([]any, 0, len(children)+1)
		merged = append(merged, children...)
		children = append(merged, content)
	}

	return children
}

func sourceName(source childSource) string {
	if source.nested {
		return "props." + source.field
	}
	return source.field
}
