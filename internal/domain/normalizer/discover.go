package normalizer

import (
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/types"
)

// wrapperKeys are searched first, in this order, when an object is not
// itself a spec
var wrapperKeys = []string{"parsed", "response", "result", "data", "payload"}

// Discover searches an arbitrary JSON value for embedded specs and returns
// every one found, normalized, in search order. Objects that look like a
// spec are collected and not searched further. JSON-encoded strings are
// decoded once. Values nested deeper than the discovery depth are ignored.
func (n *Normalizer) Discover(value any) []*types.Spec {
	found := []*types.Spec{}
	n.discover(value, 0, false, &found)
	return found
}

// DiscoverFirst returns the first spec Discover would find
func (n *Normalizer) DiscoverFirst(value any) (*types.Spec, bool) {
	specs := n.Discover(value)
	if len(specs) == 0 {
		return nil, false
	}
	return specs[0], true
}

func (n *Normalizer) discover(value any, depth int, decoded bool, found *[]*types.Spec) {
	if depth > n.discoveryDepth {
		return
	}

	switch v := value.(type) {
	case map[string]any:
		if looksLikeSpec(v) {
			spec, err := n.Normalize(v)
			if err == nil {
				*found = append(*found, spec)
				return
			}
			n.logger.Debug("Spec-shaped value failed normalization", zap.Error(err))
		}
		for _, key := range searchOrder(v) {
			n.discover(v[key], depth+1, decoded, found)
		}

	case []any:
		for _, item := range v {
			n.discover(item, depth+1, decoded, found)
		}

	case string:
		if decoded {
			return
		}
		inner, ok := decodeEmbedded(v)
		if !ok {
			return
		}
		n.discover(inner, depth+1, true, found)

	case *types.Spec:
		if v != nil {
			if spec, err := n.Normalize(v); err == nil {
				*found = append(*found, spec)
			}
		}
	}
}

// looksLikeSpec reports whether obj carries an identifier together with
// properties or children
func looksLikeSpec(obj map[string]any) bool {
	if identifier(obj) == "" {
		return false
	}
	for _, key := range []string{fieldProps, fieldTemplateProps} {
		if _, ok := obj[key].(map[string]any); ok {
			return true
		}
	}
	_, ok := obj[fieldChildren].([]any)
	return ok
}

// searchOrder lists wrapper keys first, then the remaining keys sorted
func searchOrder(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	seen := make(map[string]struct{}, len(wrapperKeys))
	for _, key := range wrapperKeys {
		if _, ok := obj[key]; ok {
			keys = append(keys, key)
			seen[key] = struct{}{}
		}
	}
	rest := make([]string, 0, len(obj)-len(keys))
	for key := range obj {
		if _, ok := seen[key]; !ok {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// decodeEmbedded decodes a string holding a JSON object or array, with or
// without a surrounding markdown code fence
func decodeEmbedded(s string) (any, bool) {
	s = stripCodeFence(strings.TrimSpace(s))
	if s == "" || (s[0] != '{' && s[0] != '[') {
		return nil, false
	}
	var inner any
	if err := sonic.UnmarshalString(s, &inner); err != nil {
		return nil, false
	}
	return inner, true
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		return ""
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
